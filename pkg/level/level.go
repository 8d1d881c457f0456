// Package level holds the level data model: slots, the word bank and the raw
// connection strings, together with its JSON form.
package level

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"crosswarped.com/wordlink/pkg/primitives"
)

// MaxSlots and MaxSlotLength follow from the single digit cell codes.
const (
	MaxSlots      = 10
	MaxSlotLength = 10
)

var (
	ErrInvalidSlot          = errors.New("invalid slot")
	ErrSlotOutOfRange       = errors.New("slot index out of range")
	ErrConnectionOutOfRange = errors.New("connection cell out of range")
)

// Slot is a row of letter cells. Legacy levels give a slot as a plain word,
// editor levels as a positioned object; both forms survive a JSON round trip.
// An object without both x and y is not positioned and is laid out like a
// legacy slot.
type Slot struct {
	Length int

	// X and Y are percentages of the play area, locating the slot's center.
	// They are only meaningful when Positioned is set.
	X, Y       float64
	Positioned bool

	// Word is the legacy string form, if that is how the slot was given.
	Word string
}

// WordSlot returns a legacy slot sized to word.
func WordSlot(word string) Slot {
	return Slot{Length: len(word), Word: word}
}

// PositionedSlot returns an editor slot centered at (x, y) percent.
func PositionedSlot(length int, x, y float64) Slot {
	return Slot{Length: length, X: x, Y: y, Positioned: true}
}

// objectSlot is the object form of a slot. X and Y are present only for
// positioned slots.
type objectSlot struct {
	Length int      `json:"length"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
}

func (s Slot) MarshalJSON() ([]byte, error) {
	if s.Positioned {
		return json.Marshal(objectSlot{Length: s.Length, X: &s.X, Y: &s.Y})
	}
	if s.Word != "" {
		return json.Marshal(s.Word)
	}
	return json.Marshal(objectSlot{Length: s.Length})
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var word string
		if err := json.Unmarshal(data, &word); err != nil {
			return err
		}
		if word == "" {
			return fmt.Errorf("%w: empty word", ErrInvalidSlot)
		}
		*s = WordSlot(word)
		return nil
	}

	var p objectSlot
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Length <= 0 {
		return fmt.Errorf("%w: length %d", ErrInvalidSlot, p.Length)
	}
	if p.X == nil || p.Y == nil {
		*s = Slot{Length: p.Length}
		return nil
	}
	*s = PositionedSlot(p.Length, *p.X, *p.Y)
	return nil
}

// Level is one puzzle: its slots, the bank of words offered to the player and
// the raw connection strings between slot cells.
type Level struct {
	Slots       []Slot   `json:"slots"`
	Bank        []string `json:"bank"`
	Connections []string `json:"connections"`
}

// SlotLengths returns the length of every slot in order.
func (l Level) SlotLengths() []int {
	lengths := make([]int, len(l.Slots))
	for i, s := range l.Slots {
		lengths[i] = s.Length
	}
	return lengths
}

// ParsedConnections parses the raw connection strings and drops those that
// are malformed or reference cells outside their slots. Every dropped entry
// is logged.
func (l Level) ParsedConnections(logger *zap.Logger) []primitives.Connection {
	return primitives.FilterInBounds(primitives.ParseConnections(l.Connections, logger), l.SlotLengths(), logger)
}

// HasPositions reports whether every slot carries a layout position.
func (l Level) HasPositions() bool {
	if len(l.Slots) == 0 {
		return false
	}
	for _, s := range l.Slots {
		if !s.Positioned {
			return false
		}
	}
	return true
}

// Validate checks the limits imposed by the cell code format. Bank word
// lengths are not checked; they are enforced when a word is placed.
func (l Level) Validate() error {
	var errs []error
	if len(l.Slots) > MaxSlots {
		errs = append(errs, fmt.Errorf("%w: %d slots, at most %d", ErrInvalidSlot, len(l.Slots), MaxSlots))
	}
	for i, s := range l.Slots {
		if s.Length <= 0 || s.Length > MaxSlotLength {
			errs = append(errs, fmt.Errorf("%w: slot %d has length %d", ErrInvalidSlot, i, s.Length))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	return Level{
		Slots:       append([]Slot(nil), l.Slots...),
		Bank:        append([]string(nil), l.Bank...),
		Connections: append([]string(nil), l.Connections...),
	}
}

// JSON returns the level in the same shape it is loaded from.
func (l Level) JSON() ([]byte, error) {
	out := l.Clone()
	if out.Slots == nil {
		out.Slots = []Slot{}
	}
	if out.Bank == nil {
		out.Bank = []string{}
	}
	if out.Connections == nil {
		out.Connections = []string{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// Parse decodes either a list of levels or a single level object.
func Parse(data []byte) ([]Level, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty level data")
	}

	if data[0] == '{' {
		var l Level
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("parse level: %w", err)
		}
		return []Level{l}, nil
	}

	var levels []Level
	if err := json.Unmarshal(data, &levels); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	return levels, nil
}

// LoadFile reads levels from a JSON file such as levels.json.
func LoadFile(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	levels, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return levels, nil
}
