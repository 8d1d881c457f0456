package primitives

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseConnection(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Connection
		wantErr error
	}{
		{"dash separator", "032-100", Connection{SlotA: 0, IndexA: 3, SlotB: 1, IndexB: 0}, nil},
		{"comma separator", "032,100", Connection{SlotA: 0, IndexA: 3, SlotB: 1, IndexB: 0}, nil},
		{"side ignored", "213-031", Connection{SlotA: 2, IndexA: 1, SlotB: 0, IndexB: 3}, nil},
		{"single code", "032", Connection{}, ErrMalformedConnection},
		{"three codes", "032-100-200", Connection{}, ErrMalformedConnection},
		{"non numeric half", "032-abc", Connection{}, ErrMalformedCode},
		{"same slot", "002-012", Connection{}, ErrMalformedConnection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConnection(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseConnection(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseConnection(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseConnection(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseConnections_SkipsAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	got := ParseConnections([]string{"032-100", "garbage", "112,203"}, logger)
	want := []Connection{
		{SlotA: 0, IndexA: 3, SlotB: 1, IndexB: 0},
		{SlotA: 1, IndexA: 1, SlotB: 2, IndexB: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseConnections mismatch (-want +got):\n%s", diff)
	}
	if n := logs.FilterMessage("skipping connection").Len(); n != 1 {
		t.Errorf("logged %d skipped connections, want 1", n)
	}
}

func TestFilterInBounds(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	conns := []Connection{
		{SlotA: 0, IndexA: 3, SlotB: 1, IndexB: 0},
		{SlotA: 0, IndexA: 4, SlotB: 1, IndexB: 0}, // cell 4 of a 4-letter slot
		{SlotA: 0, IndexA: 0, SlotB: 2, IndexB: 0}, // no slot 2
	}
	got := FilterInBounds(conns, []int{4, 4}, zap.New(core))
	if diff := cmp.Diff(conns[:1], got); diff != "" {
		t.Errorf("FilterInBounds mismatch (-want +got):\n%s", diff)
	}
	if logs.Len() != 2 {
		t.Errorf("logged %d entries, want 2", logs.Len())
	}
}

func TestConnection_From(t *testing.T) {
	c := Connection{SlotA: 0, IndexA: 3, SlotB: 2, IndexB: 1}

	local, other, otherIdx, ok := c.From(2)
	if !ok || local != 1 || other != 0 || otherIdx != 3 {
		t.Errorf("From(2) = (%d, %d, %d, %v), want (1, 0, 3, true)", local, other, otherIdx, ok)
	}
	if _, _, _, ok := c.From(1); ok {
		t.Error("From(1) ok = true, want false")
	}
	if c.Oriented() != c {
		t.Errorf("Oriented() = %v, want unchanged %v", c.Oriented(), c)
	}
	flipped := Connection{SlotA: 2, IndexA: 1, SlotB: 0, IndexB: 3}
	if flipped.Oriented() != c {
		t.Errorf("Oriented() = %v, want %v", flipped.Oriented(), c)
	}
}

func TestConnection_Satisfied(t *testing.T) {
	c := Connection{SlotA: 0, IndexA: 3, SlotB: 1, IndexB: 0}
	tests := []struct {
		name  string
		words []string
		want  bool
	}{
		{"letters match", []string{"soft", "tune"}, true},
		{"letters differ", []string{"love", "tune"}, false},
		{"missing slot", []string{"soft"}, false},
		{"short word", []string{"so", "tune"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Satisfied(tt.words); got != tt.want {
				t.Errorf("Satisfied(%v) = %v, want %v", tt.words, got, tt.want)
			}
		})
	}
}
