// Package editor is the model behind the level editor: it edits a level's
// bank, slots and connections and can fill the bank from a word corpus.
package editor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"crosswarped.com/wordlink"
	"crosswarped.com/wordlink/pkg/level"
	"crosswarped.com/wordlink/pkg/primitives"
)

var (
	ErrEmptyWord      = errors.New("empty word")
	ErrBadConnection  = errors.New("connection must look like 012,345")
	ErrNeedSelection  = errors.New("select two cells first")
	ErrWrongSlotCount = errors.New("combination does not match slot count")
)

// manualConnection is the only form accepted for typed-in connections.
var manualConnection = regexp.MustCompile(`^\d{3},\d{3}$`)

// Editor holds the level being authored and the current cell selection.
// It is not safe for concurrent use.
type Editor struct {
	level     level.Level
	layout    level.Layout
	selection []level.CellRef

	logger *zap.Logger
}

func New(lvl level.Level, layout level.Layout, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{level: lvl.Clone(), layout: layout, logger: logger}
}

// Level returns a copy of the level being edited.
func (e *Editor) Level() level.Level {
	return e.level.Clone()
}

// AddWord adds word to the bank together with a new slot of the same length.
// The slot starts centered; even lengths are shifted left by half a grid step
// so their cells line up with the grid.
func (e *Editor) AddWord(word string) error {
	word = strings.ToUpper(strings.TrimSpace(word))
	if word == "" {
		return ErrEmptyWord
	}
	if len(e.level.Slots) >= level.MaxSlots {
		return fmt.Errorf("%w: at most %d slots", level.ErrInvalidSlot, level.MaxSlots)
	}
	if len(word) > level.MaxSlotLength {
		return fmt.Errorf("%w: %q is longer than %d", level.ErrInvalidSlot, word, level.MaxSlotLength)
	}

	x := 50.0
	if len(word)%2 == 0 {
		x -= e.layout.GridStep() / 2 / e.layout.Width * 100
	}
	e.level.Bank = append(e.level.Bank, word)
	e.level.Slots = append(e.level.Slots, level.PositionedSlot(len(word), x, 50))
	return nil
}

// DeleteWord removes bank entry i and slot i. Connections touching the
// removed slot are dropped and those referring to later slots are renumbered.
func (e *Editor) DeleteWord(i int) error {
	if i < 0 || i >= len(e.level.Bank) {
		return fmt.Errorf("bank entry %d: %w", i, level.ErrSlotOutOfRange)
	}
	e.level.Bank = slices.Delete(e.level.Bank, i, i+1)
	if i >= len(e.level.Slots) {
		return nil
	}
	e.level.Slots = slices.Delete(e.level.Slots, i, i+1)

	var kept []string
	for _, raw := range e.level.Connections {
		renumbered, ok, err := renumber(raw, i)
		if err != nil {
			e.logger.Warn("dropping connection", zap.String("connection", raw), zap.Error(err))
			continue
		}
		if ok {
			kept = append(kept, renumbered)
		}
	}
	e.level.Connections = kept
	return nil
}

// renumber rewrites raw for the removal of slot removed. It reports false if
// the connection touched that slot. The separator is preserved.
func renumber(raw string, removed int) (string, bool, error) {
	from, to, err := primitives.SplitConnection(raw)
	if err != nil {
		return "", false, err
	}
	sep := "-"
	if strings.Contains(raw, ",") {
		sep = ","
	}

	var codes [2]string
	for k, p := range []primitives.CellPosition{from, to} {
		switch {
		case p.SlotIndex == removed:
			return "", false, nil
		case p.SlotIndex > removed:
			p.SlotIndex--
		}
		if codes[k], err = p.Code(); err != nil {
			return "", false, err
		}
	}
	return codes[0] + sep + codes[1], true, nil
}

// MoveSlot places slot i at (x, y) percent, clamped to the play area.
func (e *Editor) MoveSlot(i int, x, y float64) error {
	if i < 0 || i >= len(e.level.Slots) {
		return fmt.Errorf("slot %d: %w", i, level.ErrSlotOutOfRange)
	}
	s := &e.level.Slots[i]
	s.X = min(max(x, 0), 100)
	s.Y = min(max(y, 0), 100)
	s.Positioned = true
	s.Word = ""
	return nil
}

// Select toggles a cell in the selection. Picking a second cell of a slot that
// already has one selected replaces it, and at most two cells are kept, the
// oldest giving way.
func (e *Editor) Select(slot, cell int) error {
	if slot < 0 || slot >= len(e.level.Slots) {
		return fmt.Errorf("slot %d: %w", slot, level.ErrSlotOutOfRange)
	}
	if cell < 0 || cell >= e.level.Slots[slot].Length {
		return fmt.Errorf("cell %d of slot %d: %w", cell, slot, level.ErrConnectionOutOfRange)
	}
	ref := level.CellRef{SlotIndex: slot, CellIndex: cell}

	if i := slices.Index(e.selection, ref); i >= 0 {
		e.selection = slices.Delete(e.selection, i, i+1)
		return nil
	}
	e.selection = slices.DeleteFunc(e.selection, func(r level.CellRef) bool {
		return r.SlotIndex == slot
	})
	if len(e.selection) == 2 {
		e.selection = e.selection[1:]
	}
	e.selection = append(e.selection, ref)
	return nil
}

func (e *Editor) Selection() []level.CellRef {
	return slices.Clone(e.selection)
}

func (e *Editor) ClearSelection() {
	e.selection = nil
}

// DrawConnection connects the two selected cells through their closest valid
// sides and clears the selection.
func (e *Editor) DrawConnection() (string, error) {
	if len(e.selection) != 2 {
		return "", ErrNeedSelection
	}
	code, err := e.layout.ConnectionCode(e.level, e.selection[0], e.selection[1])
	if err != nil {
		return "", err
	}
	e.level.Connections = append(e.level.Connections, code)
	e.selection = nil
	return code, nil
}

// AddConnection appends a typed-in connection such as "032,100".
func (e *Editor) AddConnection(raw string) error {
	raw = strings.TrimSpace(raw)
	if !manualConnection.MatchString(raw) {
		return fmt.Errorf("%w: %q", ErrBadConnection, raw)
	}
	conn, err := primitives.ParseConnection(raw)
	if err != nil {
		return err
	}
	if !conn.InBounds(e.level.SlotLengths()) {
		return fmt.Errorf("%s: %w", raw, level.ErrConnectionOutOfRange)
	}
	e.level.Connections = append(e.level.Connections, raw)
	return nil
}

func (e *Editor) DeleteConnection(i int) error {
	if i < 0 || i >= len(e.level.Connections) {
		return fmt.Errorf("connection %d of %d: %w", i, len(e.level.Connections), level.ErrConnectionOutOfRange)
	}
	e.level.Connections = slices.Delete(e.level.Connections, i, i+1)
	return nil
}

// ShuffleBank reorders the bank. Slots are not affected.
func (e *Editor) ShuffleBank(rng *rand.Rand) {
	rng.Shuffle(len(e.level.Bank), func(i, j int) {
		e.level.Bank[i], e.level.Bank[j] = e.level.Bank[j], e.level.Bank[i]
	})
}

// AutoFill searches buckets for words fitting the current slots and
// connections. When rng is set each bucket is searched in a fresh random
// order, so repeated calls can suggest different words. The level is not
// changed; see ApplyCombination.
func (e *Editor) AutoFill(ctx context.Context, buckets primitives.WordBuckets, rng *rand.Rand, maxResults int) wordlink.Outcome {
	lengths := e.level.SlotLengths()
	if rng != nil {
		shuffled := make(primitives.WordBuckets, len(buckets))
		for _, length := range lengths {
			words := slices.Clone(buckets[length])
			rng.Shuffle(len(words), func(i, j int) {
				words[i], words[j] = words[j], words[i]
			})
			shuffled[length] = words
		}
		buckets = shuffled
	}

	conns := e.level.ParsedConnections(e.logger)
	solver := wordlink.CreateSolver(lengths, conns, buckets, wordlink.SolverParams{
		MaxResults: maxResults,
		Logger:     e.logger,
	})
	return solver.Solve(ctx)
}

// ApplyCombination replaces the bank with the combination's words, in slot
// order and upper-cased.
func (e *Editor) ApplyCombination(c wordlink.Combination) error {
	if c.NumSlots() != len(e.level.Slots) {
		return fmt.Errorf("%w: %d words for %d slots", ErrWrongSlotCount, c.NumSlots(), len(e.level.Slots))
	}
	bank := make([]string, len(c.Words))
	for i, w := range c.Words {
		bank[i] = strings.ToUpper(w)
	}
	e.level.Bank = bank
	return nil
}

// JSON exports the level in the levels.json shape.
func (e *Editor) JSON() ([]byte, error) {
	return e.level.JSON()
}
