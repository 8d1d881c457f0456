package primitives

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var ErrMalformedConnection = errors.New("malformed connection")

// Connection asserts that the letter at IndexA of slot SlotA equals the letter
// at IndexB of slot SlotB whenever both slots are filled. It is symmetric.
type Connection struct {
	SlotA  int
	IndexA int
	SlotB  int
	IndexB int
}

// Touches reports whether the connection references the given slot.
func (c Connection) Touches(slot int) bool {
	return c.SlotA == slot || c.SlotB == slot
}

// From returns the connection seen from the given slot: the local cell index
// within slot, the other slot and the other slot's cell index. ok is false if
// the connection does not touch slot.
func (c Connection) From(slot int) (local, other, otherIndex int, ok bool) {
	switch slot {
	case c.SlotA:
		return c.IndexA, c.SlotB, c.IndexB, true
	case c.SlotB:
		return c.IndexB, c.SlotA, c.IndexA, true
	}
	return 0, 0, 0, false
}

// Oriented returns the same connection with SlotA <= SlotB.
func (c Connection) Oriented() Connection {
	if c.SlotA <= c.SlotB {
		return c
	}
	return Connection{SlotA: c.SlotB, IndexA: c.IndexB, SlotB: c.SlotA, IndexB: c.IndexA}
}

// Satisfied reports whether both referenced letters are equal in the given
// per-slot words. A connection referencing a missing word or a letter beyond
// the end of its word is not satisfied.
func (c Connection) Satisfied(words []string) bool {
	if c.SlotA < 0 || c.SlotA >= len(words) || c.SlotB < 0 || c.SlotB >= len(words) {
		return false
	}
	a, b := words[c.SlotA], words[c.SlotB]
	if c.IndexA >= len(a) || c.IndexB >= len(b) {
		return false
	}
	return a[c.IndexA] == b[c.IndexB]
}

// InBounds reports whether both cell indices fit the given slot lengths.
func (c Connection) InBounds(slotLengths []int) bool {
	for _, ref := range [][2]int{{c.SlotA, c.IndexA}, {c.SlotB, c.IndexB}} {
		slot, idx := ref[0], ref[1]
		if slot < 0 || slot >= len(slotLengths) || idx < 0 || idx >= slotLengths[slot] {
			return false
		}
	}
	return true
}

func (c Connection) String() string {
	return fmt.Sprintf("(%d,%d)=(%d,%d)", c.SlotA, c.IndexA, c.SlotB, c.IndexB)
}

// SplitConnection splits a raw connection string on either historical
// separator ("-" or ",") into its two cell positions.
func SplitConnection(raw string) (CellPosition, CellPosition, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(raw), func(r rune) bool {
		return r == '-' || r == ','
	})
	if len(parts) != 2 {
		return CellPosition{}, CellPosition{}, fmt.Errorf("connection %q: %w", raw, ErrMalformedConnection)
	}
	from, err := Decode(parts[0])
	if err != nil {
		return CellPosition{}, CellPosition{}, fmt.Errorf("connection %q: %w", raw, err)
	}
	to, err := Decode(parts[1])
	if err != nil {
		return CellPosition{}, CellPosition{}, fmt.Errorf("connection %q: %w", raw, err)
	}
	return from, to, nil
}

// ParseConnection parses a single raw connection string, dropping the cosmetic
// side information. Both ends must reference different slots.
func ParseConnection(raw string) (Connection, error) {
	from, to, err := SplitConnection(raw)
	if err != nil {
		return Connection{}, err
	}
	if from.SlotIndex == to.SlotIndex {
		return Connection{}, fmt.Errorf("connection %q links slot %d to itself: %w", raw, from.SlotIndex, ErrMalformedConnection)
	}
	return Connection{
		SlotA:  from.SlotIndex,
		IndexA: from.CellIndex,
		SlotB:  to.SlotIndex,
		IndexB: to.CellIndex,
	}, nil
}

// ParseConnections parses every raw string it can. Malformed entries are
// logged and skipped; one bad connection never fails the whole list.
//
// Cell indices are not checked against slot lengths here, callers holding the
// level should use FilterInBounds (or level.Level.ParsedConnections) before use.
func ParseConnections(raw []string, logger *zap.Logger) []Connection {
	if logger == nil {
		logger = zap.NewNop()
	}
	conns := make([]Connection, 0, len(raw))
	for _, r := range raw {
		c, err := ParseConnection(r)
		if err != nil {
			logger.Warn("skipping connection", zap.String("connection", r), zap.Error(err))
			continue
		}
		conns = append(conns, c)
	}
	return conns
}

// FilterInBounds drops (and logs) connections whose cell indices exceed the
// given slot lengths.
func FilterInBounds(conns []Connection, slotLengths []int, logger *zap.Logger) []Connection {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]Connection, 0, len(conns))
	for _, c := range conns {
		if !c.InBounds(slotLengths) {
			logger.Warn("skipping out of range connection",
				zap.Stringer("connection", c),
				zap.Ints("slotLengths", slotLengths))
			continue
		}
		out = append(out, c)
	}
	return out
}
