package wordlink

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"crosswarped.com/wordlink/pkg/primitives"
)

// DefaultMaxResults is the number of combinations Solve returns when
// SolverParams.MaxResults is not set.
const DefaultMaxResults = 5

var ErrNoWordsOfLength = errors.New("no words of required length")

// Reason explains the outcome of a solve.
type Reason string

const (
	ReasonFound           Reason = "found"
	ReasonNoWordsOfLength Reason = "no_words_of_length"
	ReasonNoCombinations  Reason = "no_combinations"
	ReasonCancelled       Reason = "cancelled"
)

// Outcome is the result of Solve. Only ReasonFound carries combinations; the
// other reasons are expected negative outcomes, not failures.
type Outcome struct {
	Combinations []Combination
	Reason       Reason

	// MissingLength is the first slot length with an empty corpus bucket when
	// Reason is ReasonNoWordsOfLength.
	MissingLength int

	cause error
}

// Err returns the outcome as an error, or nil when combinations were found or
// the search was exhausted without finding any.
func (o Outcome) Err() error {
	return o.cause
}

type Solver struct {
	SlotLengths []int
	Connections []primitives.Connection
	Words       primitives.WordBuckets
	MaxResults  int

	logger *zap.Logger
}

type SolverParams struct {
	MaxResults int
	Logger     *zap.Logger
}

// CreateSolver prepares a search over words for the given slots. Connections
// whose cell indices do not fit the slot lengths are logged and ignored.
func CreateSolver(slotLengths []int, connections []primitives.Connection, words primitives.WordBuckets, params SolverParams) *Solver {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Solver{
		SlotLengths: slotLengths,
		Connections: primitives.FilterInBounds(connections, slotLengths, logger),
		Words:       words,
		MaxResults:  maxResults,
		logger:      logger,
	}
}

// missingLength returns the first slot length without any candidate word.
func (s *Solver) missingLength() (int, bool) {
	for _, length := range s.SlotLengths {
		if s.Words.Len(length) == 0 {
			return length, true
		}
	}
	return 0, false
}

// searchState holds the per-slot data the backtracking search reads. It is
// built once per iteration and never mutated during the search.
type searchState struct {
	numSlots int

	// candidates[k] is the bucket for slot k with words that can never satisfy
	// a connection removed. Bucket order is preserved.
	candidates [][]string

	// closing[k] holds the connections whose later slot is k; they become
	// checkable once slot k is assigned.
	closing [][]primitives.Connection
}

func (s *Solver) newSearchState() *searchState {
	n := len(s.SlotLengths)
	st := &searchState{
		numSlots:   n,
		candidates: make([][]string, n),
		closing:    make([][]primitives.Connection, n),
	}
	for k, length := range s.SlotLengths {
		st.candidates[k] = s.Words[length]
	}
	for _, conn := range s.Connections {
		o := conn.Oriented()
		st.closing[o.SlotB] = append(st.closing[o.SlotB], o)
	}
	return st
}

// prune removes candidates that have no supporting byte in a connected slot
// and repeats until nothing changes. Bytes are compared exactly as
// Connection.Satisfied compares them. Only words that cannot appear in any
// complete assignment are removed, so the search visits the same assignments
// in the same order as it would without pruning.
func (st *searchState) prune(connections []primitives.Connection, slotLengths []int) {
	for changed := true; changed; {
		changed = false

		domains := make([][]primitives.Letters, st.numSlots)
		for k := range st.numSlots {
			domains[k] = primitives.LettersAt(st.candidates[k], slotLengths[k])
		}

		for k := range st.numSlots {
			kept := slices.DeleteFunc(slices.Clone(st.candidates[k]), func(word string) bool {
				for _, conn := range connections {
					local, other, otherIndex, ok := conn.From(k)
					if !ok {
						continue
					}
					if other == k {
						if word[conn.IndexA] != word[conn.IndexB] {
							return true
						}
						continue
					}
					if !domains[other][otherIndex].Contains(word[local]) {
						return true
					}
				}
				return false
			})
			if len(kept) != len(st.candidates[k]) {
				st.candidates[k] = kept
				changed = true
			}
		}
	}
}

// consistent checks every connection that becomes checkable with the word just
// appended to current.
func (st *searchState) consistent(current []string) bool {
	k := len(current) - 1
	for _, conn := range st.closing[k] {
		if !conn.Satisfied(current) {
			return false
		}
	}
	return true
}

// extend assigns slot len(current) and recurses. It returns false once the
// consumer has stopped or ctx is done.
func (st *searchState) extend(ctx context.Context, current []string, yield func([]string) bool) bool {
	if ctx.Err() != nil {
		return false
	}

	k := len(current)
	if k == st.numSlots {
		return yield(current)
	}

	for _, word := range st.candidates[k] {
		// No word repeats within a single assignment.
		if slices.Contains(current, word) {
			continue
		}
		next := append(current, word)
		if !st.consistent(next) {
			continue
		}
		if !st.extend(ctx, next, yield) {
			return false
		}
	}
	return true
}

// assignments yields every complete assignment satisfying all connections, in
// depth-first order. The yielded slice is reused between iterations.
func (st *searchState) assignments(ctx context.Context) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		current := make([]string, 0, st.numSlots)
		st.extend(ctx, current, yield)
	}
}

// introducesNewWord reports whether words places at least one word at a
// position where no previously accepted combination had it.
func introducesNewWord(words []string, used []mapset.Set[string]) bool {
	for i, w := range words {
		if !used[i].Has(w) {
			return true
		}
	}
	return false
}

// PossibleCombinations yields distinct combinations until the search space is
// exhausted, ctx is done or the consumer stops. A combination is only yielded
// if it puts at least one word at a position no earlier combination used.
func (s *Solver) PossibleCombinations(ctx context.Context) iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		if _, missing := s.missingLength(); missing {
			return
		}

		st := s.newSearchState()
		st.prune(s.Connections, s.SlotLengths)
		used := make([]mapset.Set[string], st.numSlots)
		for i := range used {
			used[i] = mapset.New[string]()
		}

		for words := range st.assignments(ctx) {
			if !introducesNewWord(words, used) {
				continue
			}
			for i, w := range words {
				used[i].Put(w)
			}
			if !yield(NewCombination(words)) {
				return
			}
		}
	}
}

// Solve collects up to MaxResults combinations. It runs synchronously; use
// SolveAsync to let the caller show progress first.
func (s *Solver) Solve(ctx context.Context) Outcome {
	ctx, span := otel.Tracer("crosswarped.com/wordlink").Start(ctx, "wordlink.Solve",
		trace.WithAttributes(
			attribute.Int("wordlink.slots", len(s.SlotLengths)),
			attribute.Int("wordlink.connections", len(s.Connections)),
			attribute.Int("wordlink.max_results", s.MaxResults),
		))
	defer span.End()

	if length, missing := s.missingLength(); missing {
		s.logger.Warn("no words of required length", zap.Int("length", length))
		return Outcome{
			Reason:        ReasonNoWordsOfLength,
			MissingLength: length,
			cause:         fmt.Errorf("slot length %d: %w", length, ErrNoWordsOfLength),
		}
	}

	start := time.Now()
	var combinations []Combination
	for c := range s.PossibleCombinations(ctx) {
		combinations = append(combinations, c)
		if len(combinations) >= s.MaxResults {
			break
		}
	}

	if err := ctx.Err(); err != nil && len(combinations) < s.MaxResults {
		s.logger.Info("solve abandoned", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return Outcome{Reason: ReasonCancelled, cause: err}
	}

	s.logger.Info("solve finished",
		zap.Int("combinations", len(combinations)),
		zap.Duration("elapsed", time.Since(start)))
	span.SetAttributes(attribute.Int("wordlink.combinations", len(combinations)))

	if len(combinations) == 0 {
		return Outcome{Reason: ReasonNoCombinations}
	}
	return Outcome{Combinations: combinations, Reason: ReasonFound}
}

// SolveAsync runs Solve on its own goroutine. The returned channel delivers
// exactly one Outcome and is then closed.
func (s *Solver) SolveAsync(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		out <- s.Solve(ctx)
	}()
	return out
}
