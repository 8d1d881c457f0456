package level

import (
	"errors"
	"testing"

	"crosswarped.com/wordlink/pkg/primitives"
)

func stackedLevel() Level {
	return Level{
		Slots: []Slot{
			PositionedSlot(4, 50, 40),
			PositionedSlot(4, 50, 50),
		},
	}
}

func TestLayout_CellRect(t *testing.T) {
	l := DefaultLayout()
	lvl := stackedLevel()

	got, err := l.CellRect(lvl, CellRef{SlotIndex: 0, CellIndex: 3})
	if err != nil {
		t.Fatalf("CellRect() error = %v", err)
	}
	want := Rect{Left: 246.5, Top: 222.5, Width: 35, Height: 35}
	if got != want {
		t.Errorf("CellRect() = %+v, want %+v", got, want)
	}

	if _, err := l.CellRect(lvl, CellRef{SlotIndex: 0, CellIndex: 4}); !errors.Is(err, ErrConnectionOutOfRange) {
		t.Errorf("CellRect() error = %v, want %v", err, ErrConnectionOutOfRange)
	}
	if _, err := l.CellRect(lvl, CellRef{SlotIndex: 2}); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("CellRect() error = %v, want %v", err, ErrSlotOutOfRange)
	}
}

func TestLayout_SlotCenter_Legacy(t *testing.T) {
	l := DefaultLayout()
	lvl := Level{Slots: []Slot{WordSlot("SOFT"), WordSlot("TUNE")}}

	for i, want := range []Point{{X: 210, Y: 200}, {X: 210, Y: 400}} {
		got, err := l.SlotCenter(lvl, i)
		if err != nil {
			t.Fatalf("SlotCenter(%d) error = %v", i, err)
		}
		if got != want {
			t.Errorf("SlotCenter(%d) = %+v, want %+v", i, got, want)
		}
	}
}

func TestValidSides(t *testing.T) {
	tests := []struct {
		name         string
		cell, length int
		want         [4]bool
	}{
		{"single cell", 0, 1, [4]bool{true, true, true, true}},
		{"first cell", 0, 4, [4]bool{true, false, true, true}},
		{"last cell", 3, 4, [4]bool{true, true, true, false}},
		{"middle cell", 1, 4, [4]bool{true, false, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidSides(tt.cell, tt.length); got != tt.want {
				t.Errorf("ValidSides(%d, %d) = %v, want %v", tt.cell, tt.length, got, tt.want)
			}
		})
	}
}

func TestLayout_ConnectionCode(t *testing.T) {
	l := DefaultLayout()
	lvl := stackedLevel()

	tests := []struct {
		name string
		a, b CellRef
		want string
	}{
		{"cell directly below", CellRef{0, 0}, CellRef{1, 0}, "002-100"},
		{"diagonal", CellRef{0, 3}, CellRef{1, 0}, "032-100"},
		{"from the lower slot", CellRef{1, 2}, CellRef{0, 2}, "120-022"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.ConnectionCode(lvl, tt.a, tt.b)
			if err != nil {
				t.Fatalf("ConnectionCode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ConnectionCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayout_Endpoints(t *testing.T) {
	l := DefaultLayout()
	lvl := stackedLevel()

	from, to, err := l.Endpoints(lvl, "032-100")
	if err != nil {
		t.Fatalf("Endpoints() error = %v", err)
	}
	if want := (Point{X: 264, Y: 257.5}); from != want {
		t.Errorf("from = %+v, want %+v", from, want)
	}
	if want := (Point{X: 156, Y: 282.5}); to != want {
		t.Errorf("to = %+v, want %+v", to, want)
	}

	if _, _, err := l.Endpoints(lvl, "032"); !errors.Is(err, primitives.ErrMalformedConnection) {
		t.Errorf("Endpoints() error = %v, want %v", err, primitives.ErrMalformedConnection)
	}
}
