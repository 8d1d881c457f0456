package primitives

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Letters is a set of bytes, one bit per possible value. Cells are compared
// byte for byte, so any byte can be a member, not only 'a' through 'z'.
// The zero value is the empty set.
type Letters [4]uint64

// With returns the set with b added.
func (l Letters) With(b byte) Letters {
	l[b>>6] |= 1 << (b & 63)
	return l
}

// Union returns the bytes in either set.
func (l Letters) Union(other Letters) Letters {
	for i := range l {
		l[i] |= other[i]
	}
	return l
}

// Intersect returns the bytes in both sets.
func (l Letters) Intersect(other Letters) Letters {
	for i := range l {
		l[i] &= other[i]
	}
	return l
}

func (l Letters) Contains(b byte) bool {
	return l[b>>6]&(1<<(b&63)) != 0
}

func (l Letters) Len() int {
	n := 0
	for _, w := range l {
		n += bits.OnesCount64(w)
	}
	return n
}

func (l Letters) IsEmpty() bool {
	return l == Letters{}
}

// String lists the members in byte order. Non-printable bytes are quoted.
func (l Letters) String() string {
	out := make([]byte, 0, l.Len())
	for b := range 256 {
		if !l.Contains(byte(b)) {
			continue
		}
		if strconv.IsPrint(rune(b)) && b < 0x80 {
			out = append(out, byte(b))
		} else {
			out = strconv.AppendQuoteRune(out, rune(b))
		}
	}
	return fmt.Sprintf("Letters{%s}", out)
}

// LettersAt returns, for each index in [0, length), the bytes that appear at
// that index in any of the given words. Words of a different length are
// ignored.
func LettersAt(words []string, length int) []Letters {
	sets := make([]Letters, length)
	for _, word := range words {
		if len(word) != length {
			continue
		}
		for i := range length {
			sets[i] = sets[i].With(word[i])
		}
	}
	return sets
}
