package play

import (
	"slices"

	"github.com/google/uuid"

	"crosswarped.com/wordlink/pkg/primitives"
)

const (
	// UndoBudget is the number of undos available per level attempt.
	UndoBudget = 10

	undoStackLimit = 10
)

// Session is the mutable state of one attempt at one level. It is owned by a
// single controller and is not safe for concurrent use.
type Session struct {
	ID string

	slotLengths []int
	connections []primitives.Connection

	placements []Placement
	undoStack  []Placement
	undoLeft   int
}

func NewSession(slotLengths []int, connections []primitives.Connection) *Session {
	return &Session{
		ID:          uuid.NewString(),
		slotLengths: slotLengths,
		connections: connections,
		undoLeft:    UndoBudget,
	}
}

// Reset clears every placement and the undo history and restores the undo
// budget. The session gets a fresh ID.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
	s.placements = nil
	s.undoStack = nil
	s.undoLeft = UndoBudget
}

func (s *Session) SlotLengths() []int {
	return s.slotLengths
}

func (s *Session) Connections() []primitives.Connection {
	return s.connections
}

// Placements returns a copy of the current placements in placement order.
func (s *Session) Placements() []Placement {
	return slices.Clone(s.placements)
}

// PlacementAt returns the placement occupying slot, if any.
func (s *Session) PlacementAt(slot int) (Placement, bool) {
	return placedAt(s.placements, slot)
}

// BankInUse reports whether the bank word at bankIndex is currently placed.
func (s *Session) BankInUse(bankIndex int) bool {
	return slices.ContainsFunc(s.placements, func(p Placement) bool {
		return p.BankIndex == bankIndex
	})
}

// Check validates word against slot without changing any state.
func (s *Session) Check(word string, slot int) Verdict {
	return CheckPlacement(word, slot, s.slotLengths, s.connections, s.placements)
}

// Place puts word into slot, replacing whatever was there, and records an
// undo entry while undos remain. The undo stack keeps the most recent
// undoStackLimit entries.
func (s *Session) Place(word string, slot, bankIndex int) {
	p := Placement{Word: word, SlotIndex: slot, BankIndex: bankIndex}

	if s.undoLeft > 0 {
		s.undoStack = append(s.undoStack, p)
		if len(s.undoStack) > undoStackLimit {
			s.undoStack = slices.Delete(s.undoStack, 0, len(s.undoStack)-undoStackLimit)
		}
	}

	s.Remove(slot)
	s.placements = append(s.placements, p)
}

// Drop validates word against slot and places it only if it is accepted.
func (s *Session) Drop(word string, slot, bankIndex int) Verdict {
	v := s.Check(word, slot)
	if v.Valid {
		s.Place(word, slot, bankIndex)
	}
	return v
}

// Remove clears slot. It reports whether a word was removed.
func (s *Session) Remove(slot int) bool {
	n := len(s.placements)
	s.placements = slices.DeleteFunc(s.placements, func(p Placement) bool {
		return p.SlotIndex == slot
	})
	return len(s.placements) != n
}

// Undo pops the most recent undo entry and clears the slot it names. A word
// displaced by that entry's placement is not restored. Undo is a no-op once
// the budget or the history is exhausted.
func (s *Session) Undo() (Placement, bool) {
	if s.undoLeft <= 0 || len(s.undoStack) == 0 {
		return Placement{}, false
	}
	last := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.undoLeft--
	s.Remove(last.SlotIndex)
	return last, true
}

// UndoRemaining returns how many undos are left in this attempt.
func (s *Session) UndoRemaining() int {
	return s.undoLeft
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool {
	return s.undoLeft > 0 && len(s.undoStack) > 0
}

// Complete reports whether the board is filled and every connection holds.
func (s *Session) Complete() bool {
	return IsComplete(s.slotLengths, s.connections, s.placements)
}

// Hints returns the letters implied for empty cells by filled slots.
func (s *Session) Hints() []Hint {
	return Hints(s.connections, s.placements)
}

// NextUnfilledSlot returns the lowest slot without a word, or 0 when every
// slot is filled.
func (s *Session) NextUnfilledSlot() int {
	for i := range s.slotLengths {
		if _, ok := s.PlacementAt(i); !ok {
			return i
		}
	}
	return 0
}
