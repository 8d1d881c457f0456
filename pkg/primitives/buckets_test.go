package primitives

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWordBuckets(t *testing.T) {
	b := WordBuckets{
		4: {"soft", "tune", "love", "rate"},
		3: {"art", "arm"},
		7: {},
	}

	if got := b.Lengths(); !cmp.Equal(got, []int{3, 4}) {
		t.Errorf("Lengths() = %v, want [3 4]", got)
	}
	if got := b.Total(); got != 6 {
		t.Errorf("Total() = %d, want 6", got)
	}
	if got := b.Len(5); got != 0 {
		t.Errorf("Len(5) = %d, want 0", got)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"__t_", []string{"rate"}},
		{"_o__", []string{"soft", "love"}},
		{"T___", []string{"tune"}},
		{"ar_", []string{"art", "arm"}},
		{"____", []string{"soft", "tune", "love", "rate"}},
		{"_____", nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, b.Match(tt.pattern)); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}
