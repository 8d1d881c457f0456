package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// CSVSource reads a "word,length" file with a header row.
type CSVSource struct {
	Path   string
	Logger *zap.Logger
}

func (s CSVSource) Words(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(ctx, f, s.Logger)
}

// ReadCSV parses "word,length" rows after a header row. Rows whose word does
// not match its declared length, or that fail to parse, are logged and
// skipped.
func ReadCSV(ctx context.Context, r io.Reader, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var words []string
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) < 2 {
			logger.Warn("skipping corpus row", zap.Int("line", line), zap.Strings("record", record))
			continue
		}
		declared, err := strconv.Atoi(record[1])
		if err != nil {
			logger.Warn("skipping corpus row", zap.Int("line", line), zap.Error(err))
			continue
		}
		word, err := normalizeRow(record[0], declared)
		if err != nil {
			logger.Warn("skipping corpus row", zap.Int("line", line), zap.Error(err))
			continue
		}
		words = append(words, word)
	}
	return words, nil
}
