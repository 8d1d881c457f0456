package corpus

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCSVSource(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := CSVSource{Path: "testdata/words.csv", Logger: zap.New(core)}

	got, err := src.Words(t.Context())
	if err != nil {
		t.Fatalf("Words() error = %v", err)
	}
	want := []string{"soft", "tune", "love", "rate", "art"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}
	if n := logs.FilterMessage("skipping corpus row").Len(); n != 3 {
		t.Errorf("skipped %d rows, want 3", n)
	}
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty input", "", nil},
		{"header only", "word,length\n", nil},
		{"short row skipped", "word,length\nsoft\ntune,4\n", []string{"tune"}},
		{"declared length trusted only when it matches", "word,length\nsoft,5\nart,3\n", []string{"art"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(t.Context(), strings.NewReader(tt.in), nil)
			if err != nil {
				t.Fatalf("ReadCSV() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadCSV() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListSource(t *testing.T) {
	got, err := ListSource{Path: "testdata/words.txt"}.Words(t.Context())
	if err != nil {
		t.Fatalf("Words() error = %v", err)
	}
	if diff := cmp.Diff([]string{"soft", "tune", "art"}, got); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}

	if _, err := (ListSource{Path: "testdata/missing.txt"}).Words(t.Context()); err == nil {
		t.Error("Words() error = nil for missing file")
	}
}

func TestListSource_SkipsBadLines(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	got, err := ListSource{Path: "testdata/mixed.txt", Logger: zap.New(core)}.Words(t.Context())
	if err != nil {
		t.Fatalf("Words() error = %v", err)
	}
	if diff := cmp.Diff([]string{"soft", "tune"}, got); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}

	var lines []int64
	for _, entry := range logs.FilterMessage("skipping corpus row").All() {
		lines = append(lines, entry.ContextMap()["line"].(int64))
	}
	if diff := cmp.Diff([]int64{2, 3}, lines); diff != "" {
		t.Errorf("skipped lines mismatch (-want +got):\n%s", diff)
	}
}

func TestWordFromRow(t *testing.T) {
	tests := []struct {
		name    string
		row     []bigquery.Value
		want    string
		wantErr bool
	}{
		{"valid", []bigquery.Value{"Soft", int64(4)}, "soft", false},
		{"length mismatch", []bigquery.Value{"soft", int64(5)}, "", true},
		{"wrong word type", []bigquery.Value{int64(1), int64(4)}, "", true},
		{"wrong length type", []bigquery.Value{"soft", "4"}, "", true},
		{"too few columns", []bigquery.Value{"soft"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wordFromRow(tt.row)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wordFromRow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrBadRow) {
				t.Errorf("wordFromRow() error = %v, want %v", err, ErrBadRow)
			}
			if got != tt.want {
				t.Errorf("wordFromRow() = %q, want %q", got, tt.want)
			}
		})
	}
}

type countingSource struct {
	calls atomic.Int32
	words []string
	err   error
}

func (s *countingSource) Words(ctx context.Context) ([]string, error) {
	s.calls.Add(1)
	return s.words, s.err
}

func TestCache_LoadsOnce(t *testing.T) {
	src := &countingSource{words: []string{"soft", "tune"}}
	cache := NewCache()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			words, err := cache.Get(t.Context(), "default", src)
			if err != nil {
				t.Errorf("Get() error = %v", err)
				return
			}
			if len(words) != 2 {
				t.Errorf("Get() returned %d words, want 2", len(words))
			}
		}()
	}
	wg.Wait()

	if _, err := cache.Get(t.Context(), "default", src); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source loaded %d times, want 1", n)
	}
	if !cache.Loaded("default") {
		t.Error("Loaded(default) = false, want true")
	}
}

func TestCache_FailureNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("fetch failed")}
	cache := NewCache()

	_, err := cache.Get(t.Context(), "broken", src)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Get() error = %v, want %v", err, ErrUnavailable)
	}
	if cache.Loaded("broken") {
		t.Error("Loaded(broken) = true after failure")
	}

	src.err = nil
	src.words = []string{"art"}
	if _, err := cache.Get(t.Context(), "broken", src); err != nil {
		t.Errorf("Get() after recovery error = %v", err)
	}
	if n := src.calls.Load(); n != 2 {
		t.Errorf("source loaded %d times, want 2", n)
	}
}

// blockingSource holds its load open until release is closed.
type blockingSource struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (s *blockingSource) Words(ctx context.Context) ([]string, error) {
	s.calls.Add(1)
	close(s.started)
	select {
	case <-s.release:
		return []string{"soft"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCache_FirstCallerCancelled(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	cache := NewCache()

	firstCtx, cancel := context.WithCancel(t.Context())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.Get(firstCtx, "shared", src)
		firstErr <- err
	}()
	<-src.started

	second := make(chan []string, 1)
	go func() {
		words, err := cache.Get(t.Context(), "shared", src)
		if err != nil {
			t.Errorf("second Get() error = %v", err)
		}
		second <- words
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("first Get() error = %v, want %v and %v", err, ErrUnavailable, context.Canceled)
	}

	close(src.release)
	if diff := cmp.Diff([]string{"soft"}, <-second); diff != "" {
		t.Errorf("second Get() mismatch (-want +got):\n%s", diff)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source loaded %d times, want 1", n)
	}
	if !cache.Loaded("shared") {
		t.Error("Loaded(shared) = false after a cancelled first caller")
	}
}
