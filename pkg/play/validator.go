// Package play implements the rules of a play session: whether a word may be
// dropped into a slot, whether a board is complete, which letters to hint, and
// the placement record with its undo history.
package play

import "crosswarped.com/wordlink/pkg/primitives"

// Placement records which bank word occupies which slot.
type Placement struct {
	Word      string `json:"word"`
	SlotIndex int    `json:"slotIndex"`
	BankIndex int    `json:"bankIndex"`
}

// Reason explains a rejected placement.
type Reason string

const (
	ReasonLength Reason = "length"
	ReasonHint   Reason = "hint"
)

// Verdict is the result of CheckPlacement. CellIndex is the cell of the target
// slot whose letter disagrees with a connected slot, set for ReasonHint only.
type Verdict struct {
	Valid     bool   `json:"valid"`
	Reason    Reason `json:"reason,omitempty"`
	CellIndex int    `json:"cellIndex"`
}

func accept() Verdict {
	return Verdict{Valid: true}
}

func reject(reason Reason, cellIndex int) Verdict {
	return Verdict{Valid: false, Reason: reason, CellIndex: cellIndex}
}

// placedAt returns the placement occupying slot, if any.
func placedAt(placements []Placement, slot int) (Placement, bool) {
	for _, p := range placements {
		if p.SlotIndex == slot {
			return p, true
		}
	}
	return Placement{}, false
}

// CheckPlacement reports whether word may be placed into slot target given the
// words already placed. The word must fill the slot exactly, and every
// connection from target to a filled slot must agree. The first disagreeing
// connection, in list order, decides the reported cell. A target outside
// slotLengths is rejected for length.
func CheckPlacement(word string, target int, slotLengths []int, connections []primitives.Connection, placements []Placement) Verdict {
	if target < 0 || target >= len(slotLengths) || len(word) != slotLengths[target] {
		return reject(ReasonLength, 0)
	}

	for _, conn := range connections {
		local, other, otherIndex, ok := conn.From(target)
		if !ok || other == target {
			continue
		}
		placed, filled := placedAt(placements, other)
		if !filled {
			continue
		}
		if local >= len(word) || otherIndex >= len(placed.Word) || word[local] != placed.Word[otherIndex] {
			return reject(ReasonHint, local)
		}
	}
	return accept()
}
