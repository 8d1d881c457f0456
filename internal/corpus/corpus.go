// Package corpus loads the word corpus the solver searches. Rows are
// validated and normalised to lowercase a-z before they reach the solver.
package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrUnavailable = errors.New("word corpus unavailable")
	ErrBadRow      = errors.New("bad corpus row")
)

// Source produces the raw word list of a corpus.
type Source interface {
	Words(ctx context.Context) ([]string, error)
}

// normalizeRow lower-cases and trims word and checks it against its declared
// length. Words must be entirely ASCII letters.
func normalizeRow(word string, declared int) (string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return "", fmt.Errorf("%w: empty word", ErrBadRow)
	}
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return "", fmt.Errorf("%w: word %q contains non-letter %q", ErrBadRow, word, r)
		}
	}
	if len(word) != declared {
		return "", fmt.Errorf("%w: word %q declared length %d, has %d", ErrBadRow, word, declared, len(word))
	}
	return word, nil
}

// ListSource reads a plain word list, one word per line. Blank lines and lines
// starting with '#' are skipped; lines that are not a single word are logged
// and skipped.
type ListSource struct {
	Path   string
	Logger *zap.Logger
}

func (s ListSource) Words(ctx context.Context) ([]string, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		word, err := normalizeRow(word, len(word))
		if err != nil {
			logger.Warn("skipping corpus row", zap.String("path", s.Path), zap.Int("line", line), zap.Error(err))
			continue
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}
