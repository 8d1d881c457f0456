package primitives

import (
	"maps"
	"slices"
	"strings"
)

// WordBuckets maps a word length to the lowercase words of that length.
//
// It is read-only once built; the solver never mutates it.
type WordBuckets map[int][]string

// Len returns the number of words of the given length.
func (b WordBuckets) Len(length int) int {
	return len(b[length])
}

// Lengths returns the lengths with at least one word, ascending.
func (b WordBuckets) Lengths() []int {
	lengths := slices.Collect(maps.Keys(b))
	lengths = slices.DeleteFunc(lengths, func(l int) bool { return len(b[l]) == 0 })
	slices.Sort(lengths)
	return lengths
}

// Total returns the number of words across all buckets.
func (b WordBuckets) Total() int {
	total := 0
	for _, words := range b {
		total += len(words)
	}
	return total
}

// Match returns the words of the pattern's length that match it, where '_'
// matches any letter. Matching is case-insensitive; results keep bucket order.
func (b WordBuckets) Match(pattern string) []string {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	var matches []string
	for _, word := range b[len(pattern)] {
		if matchesPattern(word, pattern) {
			matches = append(matches, word)
		}
	}
	return matches
}

func matchesPattern(word, pattern string) bool {
	if len(word) != len(pattern) {
		return false
	}
	for i := range len(pattern) {
		if pattern[i] != '_' && pattern[i] != word[i] {
			return false
		}
	}
	return true
}
