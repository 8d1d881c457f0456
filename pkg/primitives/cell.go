package primitives

import (
	"errors"
	"fmt"
)

// Side is the edge of a cell a connection line is drawn from. It has no
// effect on constraint checking.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

var (
	ErrMalformedCode  = errors.New("malformed cell code")
	ErrCodeOutOfRange = errors.New("cell code field out of range")
)

// CellPosition addresses one edge of one cell of one slot.
type CellPosition struct {
	SlotIndex int
	CellIndex int
	Side      Side
}

// Encode returns the 3-digit code "SCs" for a cell position. Every field must
// be a single decimal digit, so levels are limited to 10 slots of at most 10
// cells.
func Encode(slotIndex, cellIndex int, side Side) (string, error) {
	for _, v := range []int{slotIndex, cellIndex, int(side)} {
		if v < 0 || v > 9 {
			return "", fmt.Errorf("encode (%d, %d, %d): %w", slotIndex, cellIndex, side, ErrCodeOutOfRange)
		}
	}
	return string([]byte{
		byte('0' + slotIndex),
		byte('0' + cellIndex),
		byte('0' + int(side)),
	}), nil
}

// Code is Encode for an already constructed position.
func (p CellPosition) Code() (string, error) {
	return Encode(p.SlotIndex, p.CellIndex, p.Side)
}

// Decode extracts the first run of three consecutive digits in s. Anything
// around that run is ignored, so "022-100" decodes as "022". When no such run
// exists the zero position is returned together with ErrMalformedCode.
func Decode(s string) (CellPosition, error) {
	run := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			run = 0
			continue
		}
		run++
		if run == 3 {
			return CellPosition{
				SlotIndex: int(s[i-2] - '0'),
				CellIndex: int(s[i-1] - '0'),
				Side:      Side(s[i] - '0'),
			}, nil
		}
	}
	return CellPosition{}, fmt.Errorf("decode %q: %w", s, ErrMalformedCode)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
