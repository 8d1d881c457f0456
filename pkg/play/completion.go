package play

import "crosswarped.com/wordlink/pkg/primitives"

// IsComplete reports whether every slot holds a word and every connection is
// satisfied. It does not assume the placements were validated on the way in.
func IsComplete(slotLengths []int, connections []primitives.Connection, placements []Placement) bool {
	if len(placements) != len(slotLengths) {
		return false
	}

	words := make([]string, len(slotLengths))
	for _, p := range placements {
		if p.SlotIndex < 0 || p.SlotIndex >= len(words) || words[p.SlotIndex] != "" {
			return false
		}
		words[p.SlotIndex] = p.Word
	}

	for _, conn := range connections {
		if !conn.Satisfied(words) {
			return false
		}
	}
	return true
}
