package play

import "crosswarped.com/wordlink/pkg/primitives"

// Hint is a letter to show in an empty cell, inferred from a filled slot on
// the other side of a connection.
type Hint struct {
	SlotIndex int    `json:"slotIndex"`
	CellIndex int    `json:"cellIndex"`
	Letter    string `json:"letter"`
}

// Hints returns a hint for every connection with exactly one filled side. A
// cell reached by several connections keeps the first hint in list order.
func Hints(connections []primitives.Connection, placements []Placement) []Hint {
	var hints []Hint
	seen := make(map[[2]int]bool)

	add := func(slot, cell int, letter byte) {
		key := [2]int{slot, cell}
		if seen[key] {
			return
		}
		seen[key] = true
		hints = append(hints, Hint{SlotIndex: slot, CellIndex: cell, Letter: string(letter)})
	}

	for _, conn := range connections {
		a, aFilled := placedAt(placements, conn.SlotA)
		b, bFilled := placedAt(placements, conn.SlotB)
		switch {
		case aFilled && !bFilled && conn.IndexA < len(a.Word):
			add(conn.SlotB, conn.IndexB, a.Word[conn.IndexA])
		case bFilled && !aFilled && conn.IndexB < len(b.Word):
			add(conn.SlotA, conn.IndexA, b.Word[conn.IndexB])
		}
	}
	return hints
}
