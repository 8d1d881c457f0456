package wordlink

import (
	"fmt"
	"slices"
	"strings"

	"crosswarped.com/wordlink/pkg/primitives"
)

// Combination is one complete assignment of words to slots, in slot order.
type Combination struct {
	Words []string
}

func NewCombination(words []string) Combination {
	return Combination{
		Words: slices.Clone(words),
	}
}

func (c Combination) NumSlots() int {
	return len(c.Words)
}

// Satisfies reports whether every connection holds and no word repeats.
func (c Combination) Satisfies(connections []primitives.Connection) bool {
	seen := make(map[string]bool, len(c.Words))
	for _, w := range c.Words {
		if seen[w] {
			return false
		}
		seen[w] = true
	}
	for _, conn := range connections {
		if !conn.Satisfied(c.Words) {
			return false
		}
	}
	return true
}

func (c Combination) Repr() string {
	return strings.Join(c.Words, " ")
}

func (c Combination) DebugString() string {
	return fmt.Sprintf("Combination{slots: %d, words: %q}", c.NumSlots(), c.Words)
}
