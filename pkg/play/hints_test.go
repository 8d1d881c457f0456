package play

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"crosswarped.com/wordlink/pkg/primitives"
)

func TestHints(t *testing.T) {
	conns := []primitives.Connection{
		{SlotA: 0, IndexA: 3, SlotB: 1, IndexB: 0},
		{SlotA: 2, IndexA: 1, SlotB: 1, IndexB: 0},
		{SlotA: 0, IndexA: 0, SlotB: 2, IndexB: 2},
	}

	tests := []struct {
		name       string
		placements []Placement
		want       []Hint
	}{
		{"nothing placed", nil, nil},
		{
			name:       "one side filled",
			placements: []Placement{{Word: "SOFT", SlotIndex: 0}},
			want: []Hint{
				{SlotIndex: 1, CellIndex: 0, Letter: "T"},
				{SlotIndex: 2, CellIndex: 2, Letter: "S"},
			},
		},
		{
			name:       "first hint for a cell wins",
			placements: []Placement{{Word: "SOFT", SlotIndex: 0}, {Word: "ART", SlotIndex: 2}},
			want: []Hint{
				{SlotIndex: 1, CellIndex: 0, Letter: "T"},
			},
		},
		{
			name:       "both sides filled",
			placements: []Placement{{Word: "SOFT", SlotIndex: 0}, {Word: "TUNE", SlotIndex: 1}, {Word: "ART", SlotIndex: 2}},
			want:       nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Hints(conns, tt.placements)); diff != "" {
				t.Errorf("Hints() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
