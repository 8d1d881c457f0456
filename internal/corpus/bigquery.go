package corpus

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// BigQuerySource reads "word, length" rows for one scope from a BigQuery
// table, e.g. "xword-x.FirestoreQuery.all_words".
type BigQuerySource struct {
	ProjectID string
	Table     string
	Scope     string
	Logger    *zap.Logger
}

func (s BigQuerySource) Words(ctx context.Context) ([]string, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := bigquery.NewClient(ctx, s.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf("SELECT word, length FROM `%s` WHERE scope = @scope", s.Table))
	q.Parameters = []bigquery.QueryParameter{{Name: "scope", Value: s.Scope}}
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		word, err := wordFromRow(row)
		if err != nil {
			logger.Warn("skipping corpus row", zap.String("scope", s.Scope), zap.Error(err))
			continue
		}
		words = append(words, word)
	}
	return words, nil
}

func wordFromRow(row []bigquery.Value) (string, error) {
	if len(row) < 2 {
		return "", fmt.Errorf("%w: got %d columns, want 2", ErrBadRow, len(row))
	}
	word, ok := row[0].(string)
	if !ok {
		return "", fmt.Errorf("%w: row[0] is not a string: %v", ErrBadRow, row[0])
	}
	length, ok := row[1].(int64)
	if !ok {
		return "", fmt.Errorf("%w: row[1] is not an int64: %v", ErrBadRow, row[1])
	}
	return normalizeRow(word, int(length))
}
