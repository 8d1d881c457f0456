package level

import (
	"fmt"
	"math"

	"crosswarped.com/wordlink/pkg/primitives"
)

type Point struct {
	X, Y float64
}

func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

type Rect struct {
	Left, Top, Width, Height float64
}

// SideCenter returns the midpoint of the given edge.
func (r Rect) SideCenter(side primitives.Side) Point {
	switch side {
	case primitives.SideTop:
		return Point{X: r.Left + r.Width/2, Y: r.Top}
	case primitives.SideRight:
		return Point{X: r.Left + r.Width, Y: r.Top + r.Height/2}
	case primitives.SideBottom:
		return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height}
	default:
		return Point{X: r.Left, Y: r.Top + r.Height/2}
	}
}

// CellRef names a cell without a side.
type CellRef struct {
	SlotIndex int
	CellIndex int
}

// Layout holds the dimensions used to turn slot positions into pixel
// coordinates. Geometry depends only on the level data and the layout.
type Layout struct {
	SquareSize float64
	SquareGap  float64
	Width      float64
	Height     float64
}

func DefaultLayout() Layout {
	return Layout{
		SquareSize: 35,
		SquareGap:  1,
		Width:      420,
		Height:     600,
	}
}

// GridStep is the distance between the left edges of adjacent cells.
func (l Layout) GridStep() float64 {
	return l.SquareSize + l.SquareGap
}

// SlotWidth is the pixel width of a slot of the given length.
func (l Layout) SlotWidth(length int) float64 {
	if length <= 0 {
		return 0
	}
	return float64(length)*l.SquareSize + float64(length-1)*l.SquareGap
}

// SlotCenter returns the pixel center of a slot. Slots without a position are
// stacked top to bottom, evenly spaced and horizontally centered.
func (l Layout) SlotCenter(lvl Level, slot int) (Point, error) {
	if slot < 0 || slot >= len(lvl.Slots) {
		return Point{}, fmt.Errorf("slot %d: %w", slot, ErrSlotOutOfRange)
	}
	s := lvl.Slots[slot]
	if s.Positioned {
		return Point{X: s.X * l.Width / 100, Y: s.Y * l.Height / 100}, nil
	}
	n := float64(len(lvl.Slots))
	return Point{X: l.Width / 2, Y: l.Height * float64(slot+1) / (n + 1)}, nil
}

// CellRect returns the pixel rectangle of one cell.
func (l Layout) CellRect(lvl Level, ref CellRef) (Rect, error) {
	center, err := l.SlotCenter(lvl, ref.SlotIndex)
	if err != nil {
		return Rect{}, err
	}
	length := lvl.Slots[ref.SlotIndex].Length
	if ref.CellIndex < 0 || ref.CellIndex >= length {
		return Rect{}, fmt.Errorf("cell %d of slot %d: %w", ref.CellIndex, ref.SlotIndex, ErrConnectionOutOfRange)
	}
	left := center.X - l.SlotWidth(length)/2 + float64(ref.CellIndex)*l.GridStep()
	return Rect{
		Left:   left,
		Top:    center.Y - l.SquareSize/2,
		Width:  l.SquareSize,
		Height: l.SquareSize,
	}, nil
}

// ValidSides reports which edges of a cell may carry a connection. Slots are
// horizontal, so an edge shared with a neighbouring cell of the same slot is
// never used.
func ValidSides(cellIndex, length int) [4]bool {
	switch {
	case length == 1:
		return [4]bool{true, true, true, true}
	case cellIndex == 0:
		return [4]bool{true, false, true, true}
	case cellIndex == length-1:
		return [4]bool{true, true, true, false}
	default:
		return [4]bool{true, false, true, false}
	}
}

// ClosestSides picks the pair of valid edges, one per cell, whose midpoints
// are nearest each other. Ties keep the first pair in top, right, bottom,
// left order.
func (l Layout) ClosestSides(lvl Level, a, b CellRef) (primitives.Side, primitives.Side, error) {
	rectA, err := l.CellRect(lvl, a)
	if err != nil {
		return 0, 0, err
	}
	rectB, err := l.CellRect(lvl, b)
	if err != nil {
		return 0, 0, err
	}
	validA := ValidSides(a.CellIndex, lvl.Slots[a.SlotIndex].Length)
	validB := ValidSides(b.CellIndex, lvl.Slots[b.SlotIndex].Length)

	best := math.Inf(1)
	var sideA, sideB primitives.Side
	for sa := primitives.SideTop; sa <= primitives.SideLeft; sa++ {
		if !validA[sa] {
			continue
		}
		for sb := primitives.SideTop; sb <= primitives.SideLeft; sb++ {
			if !validB[sb] {
				continue
			}
			if d := rectA.SideCenter(sa).Distance(rectB.SideCenter(sb)); d < best {
				best = d
				sideA, sideB = sa, sb
			}
		}
	}
	return sideA, sideB, nil
}

// ConnectionCode builds the "SCs-SCs" connection string between two cells,
// choosing the closest valid sides.
func (l Layout) ConnectionCode(lvl Level, a, b CellRef) (string, error) {
	sideA, sideB, err := l.ClosestSides(lvl, a, b)
	if err != nil {
		return "", err
	}
	from, err := primitives.Encode(a.SlotIndex, a.CellIndex, sideA)
	if err != nil {
		return "", err
	}
	to, err := primitives.Encode(b.SlotIndex, b.CellIndex, sideB)
	if err != nil {
		return "", err
	}
	return from + "-" + to, nil
}

// Endpoints returns the two points a connection line is drawn between.
func (l Layout) Endpoints(lvl Level, raw string) (Point, Point, error) {
	from, to, err := primitives.SplitConnection(raw)
	if err != nil {
		return Point{}, Point{}, err
	}
	rectFrom, err := l.CellRect(lvl, CellRef{SlotIndex: from.SlotIndex, CellIndex: from.CellIndex})
	if err != nil {
		return Point{}, Point{}, err
	}
	rectTo, err := l.CellRect(lvl, CellRef{SlotIndex: to.SlotIndex, CellIndex: to.CellIndex})
	if err != nil {
		return Point{}, Point{}, err
	}
	return rectFrom.SideCenter(from.Side), rectTo.SideCenter(to.Side), nil
}
