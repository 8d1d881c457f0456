package internal

import (
	"context"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"crosswarped.com/wordlink/pkg/primitives"
)

type BucketParams struct {
	Words         []string
	ExcludedWords []string
	MinWordLength *int
	MaxWordLength *int
	Logger        *zap.Logger
}

type params struct {
	words         []string
	excludedWords []string
	minWordLength int
	maxWordLength int
	logger        *zap.Logger
}

func asParams(p BucketParams) params {
	pp := params{
		words:         p.Words,
		excludedWords: p.ExcludedWords,
		logger:        p.Logger,
	}

	if pp.logger == nil {
		pp.logger = zap.NewNop()
	}

	if p.MinWordLength == nil {
		pp.minWordLength = 1
	} else {
		pp.minWordLength = *p.MinWordLength
	}

	// Slot cells are addressed by a single digit.
	if p.MaxWordLength == nil {
		pp.maxWordLength = 10
	} else {
		pp.maxWordLength = *p.MaxWordLength
	}

	return pp
}

// BucketWords lower-cases, filters and de-duplicates the given words and groups
// them by length. Words with anything but the letters a-z are logged and
// dropped. Each bucket is shuffled with rng so repeated solves over the
// same corpus produce different combinations.
func BucketWords(ctx context.Context, rng *rand.Rand, p BucketParams) (primitives.WordBuckets, error) {
	params := asParams(p)

	excluded := make(map[string]bool, len(params.excludedWords))
	for _, word := range params.excludedWords {
		excluded[strings.ToLower(strings.TrimSpace(word))] = true
	}

	seen := make(map[string]bool, len(params.words))
	buckets := make(primitives.WordBuckets)
	for _, word := range params.words {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		if !isLetters(word) {
			params.logger.Warn("skipping word", zap.String("word", word))
			continue
		}
		if len(word) < params.minWordLength || len(word) > params.maxWordLength {
			continue
		}
		if excluded[word] || seen[word] {
			continue
		}
		seen[word] = true
		buckets[len(word)] = append(buckets[len(word)], word)
	}

	if rng != nil {
		for _, words := range buckets {
			rng.Shuffle(len(words), func(i, j int) {
				words[i], words[j] = words[j], words[i]
			})
		}
	}

	return buckets, nil
}

func isLetters(word string) bool {
	for i := range len(word) {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
