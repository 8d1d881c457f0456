package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"go.uber.org/zap"

	"crosswarped.com/wordlink"
	"crosswarped.com/wordlink/internal"
	"crosswarped.com/wordlink/internal/corpus"
	"crosswarped.com/wordlink/pkg/level"
)

func main() {

	levelsFile := flag.String("levels", "levels.json", "The levels file to solve")
	levelIndex := flag.Int("level", -1, "The level to solve, or -1 for every level")
	csvFile := flag.String("csv", "", "The word,length CSV file to load words from")
	listFile := flag.String("file", "", "The file to load words from, one per line")
	excludedFile := flag.String("excluded", "", "The file to load excluded words from")
	maxResults := flag.Int("max", wordlink.DefaultMaxResults, "The maximum number of combinations per level")
	interactive := flag.Bool("interactive", false, "Step through combinations one at a time")
	pattern := flag.String("pattern", "", "Print words matching a pattern such as _o_t and exit")
	seed := flag.Uint64("seed", 0, "Seed for shuffling the corpus, 0 for time based")
	verbose := flag.Bool("v", false, "Log diagnostics to stderr")

	timeout := flag.Duration("timeout", 1*time.Minute, "The timeout for the solver")

	profile := flag.Bool("profile", false, "Profile the solver")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	if *csvFile == "" && *listFile == "" {
		fmt.Println("One of -csv or -file is required")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Println("Error creating logger:", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	ctx := context.Background()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(*seed, uint64(time.Now().Nanosecond())))

	var src corpus.Source = corpus.ListSource{Path: *listFile, Logger: logger}
	if *csvFile != "" {
		src = corpus.CSVSource{Path: *csvFile, Logger: logger}
	}

	fmt.Println("Loading words...")
	words, err := src.Words(ctx)
	if err != nil {
		fmt.Println("Error loading words:", err)
		os.Exit(1)
	}
	var excludedWords []string
	if *excludedFile != "" {
		fmt.Println("Loading excluded words from file...")
		if excludedWords, err = (corpus.ListSource{Path: *excludedFile, Logger: logger}).Words(ctx); err != nil {
			fmt.Println("Error loading excluded words from file:", err)
			os.Exit(1)
		}
	}

	buckets, err := internal.BucketWords(ctx, rng, internal.BucketParams{
		Words:         words,
		ExcludedWords: excludedWords,
		Logger:        logger,
	})
	if err != nil {
		fmt.Println("Error bucketing words:", err)
		os.Exit(1)
	}

	fmt.Println("Words:", buckets.Total())
	fmt.Println("Excluded words:", len(excludedWords))

	if *pattern != "" {
		for _, w := range buckets.Match(*pattern) {
			fmt.Println(w)
		}
		return
	}

	levels, err := level.LoadFile(*levelsFile)
	if err != nil {
		fmt.Println("Error loading levels:", err)
		os.Exit(1)
	}
	if *levelIndex >= len(levels) {
		fmt.Printf("Level %d out of range, %s has %d levels\n", *levelIndex, *levelsFile, len(levels))
		os.Exit(1)
	}

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	for i, lvl := range levels {
		if *levelIndex >= 0 && i != *levelIndex {
			continue
		}
		if err := lvl.Validate(); err != nil {
			fmt.Printf("Level %d is invalid: %v\n", i, err)
			continue
		}

		solver := wordlink.CreateSolver(
			lvl.SlotLengths(),
			lvl.ParsedConnections(logger),
			buckets,
			wordlink.SolverParams{
				MaxResults: *maxResults,
				Logger:     logger,
			},
		)

		fmt.Println("--------------------------------")
		fmt.Printf("Level %d: slots %v, connections %s\n", i, lvl.SlotLengths(), strings.Join(lvl.Connections, " "))

		if *interactive {
			step(ctx, solver)
			continue
		}

		outcome := solver.Solve(ctx)
		switch outcome.Reason {
		case wordlink.ReasonFound:
			for _, c := range outcome.Combinations {
				fmt.Println(strings.ToUpper(c.Repr()))
			}
		case wordlink.ReasonNoWordsOfLength:
			fmt.Printf("No words of length %d\n", outcome.MissingLength)
		case wordlink.ReasonNoCombinations:
			fmt.Println("No combinations found")
		case wordlink.ReasonCancelled:
			fmt.Println("Context error:", outcome.Err())
		}
	}

	fmt.Println("--------------------------------")
	fmt.Println("Done")

	if mf != nil {
		pprof.WriteHeapProfile(mf)
	}

	if ctx.Err() != nil {
		fmt.Println("Context error:", ctx.Err())
	}
}

// step prints one combination at a time until the user stops or the search
// is exhausted.
func step(ctx context.Context, solver *wordlink.Solver) {
	for c := range solver.PossibleCombinations(ctx) {
		fmt.Println(strings.ToUpper(c.Repr()))

		// Continue (any key), show details (s), or stop (n)
		fmt.Print("Continue? [Y/n/s]: ")
		var input string
		fmt.Scanln(&input)
		if input == "s" || input == "S" {
			fmt.Println(c.DebugString())
		}
		if input == "n" || input == "N" {
			return
		}
	}
	if err := ctx.Err(); err != nil {
		fmt.Println("Context error:", err)
	}
}
