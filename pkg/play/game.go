package play

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"crosswarped.com/wordlink/pkg/level"
)

var ErrNoLevel = errors.New("no such level")

// Game owns the level list and the session for the level being played. A new
// session is created whenever a level is started or restarted.
type Game struct {
	levels  []level.Level
	index   int
	session *Session

	logger *zap.Logger
}

func NewGame(levels []level.Level, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{levels: levels, logger: logger}
}

// Start begins a fresh attempt at the level with the given index.
func (g *Game) Start(index int) error {
	if index < 0 || index >= len(g.levels) {
		return fmt.Errorf("level %d of %d: %w", index, len(g.levels), ErrNoLevel)
	}
	lvl := g.levels[index]
	g.index = index
	g.session = NewSession(lvl.SlotLengths(), lvl.ParsedConnections(g.logger))
	g.logger.Debug("level started", zap.Int("level", index), zap.String("session", g.session.ID))
	return nil
}

// Restart begins a fresh attempt at the current level.
func (g *Game) Restart() error {
	return g.Start(g.index)
}

// Advance starts the next level. It returns false when there is none, in
// which case the current session is left untouched.
func (g *Game) Advance() bool {
	if g.index+1 >= len(g.levels) {
		return false
	}
	return g.Start(g.index+1) == nil
}

func (g *Game) Index() int {
	return g.index
}

func (g *Game) Level() level.Level {
	if g.index >= len(g.levels) {
		return level.Level{}
	}
	return g.levels[g.index]
}

// Session returns the active session, or nil before the first Start.
func (g *Game) Session() *Session {
	return g.session
}

func (g *Game) NumLevels() int {
	return len(g.levels)
}
