package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"crosswarped.com/wordlink"
	"crosswarped.com/wordlink/internal"
	"crosswarped.com/wordlink/internal/corpus"
	"crosswarped.com/wordlink/pkg/level"
	"crosswarped.com/wordlink/pkg/play"
)

const maxResultsLimit = 10

var (
	logger = zap.NewNop()
	words  = corpus.NewCache()
)

type SolveLevelRequest struct {
	Level         level.Level `json:"level"`
	WordScope     string      `json:"wordScope"`
	Words         []string    `json:"words"`
	ExcludedWords []string    `json:"excludedWords"`
	MaxResults    int         `json:"maxResults"`
	Seed          uint64      `json:"seed"`
}

type SolveLevelResponse struct {
	Success       bool       `json:"success"`
	Reason        string     `json:"reason,omitempty"`
	Combinations  [][]string `json:"combinations"`
	MissingLength int        `json:"missingLength,omitempty"`
	Error         string     `json:"error,omitempty"`
}

type CheckPlacementRequest struct {
	Level      level.Level      `json:"level"`
	Placements []play.Placement `json:"placements"`
	Word       string           `json:"word"`
	SlotIndex  int              `json:"slotIndex"`
	BankIndex  int              `json:"bankIndex"`
}

type CheckPlacementResponse struct {
	Success  bool         `json:"success"`
	Verdict  play.Verdict `json:"verdict"`
	Complete bool         `json:"complete"`
	Hints    []play.Hint  `json:"hints"`
	Error    string       `json:"error,omitempty"`
}

func getWords(ctx context.Context, scope string) ([]string, error) {
	project := os.Getenv("BIGQUERY_PROJECT")
	if project == "" {
		project = "xword-x"
	}
	table := os.Getenv("BIGQUERY_TABLE")
	if table == "" {
		table = "xword-x.FirestoreQuery.all_words"
	}
	return words.Get(ctx, "bigquery:"+scope, corpus.BigQuerySource{
		ProjectID: project,
		Table:     table,
		Scope:     scope,
		Logger:    logger,
	})
}

func solve(ctx context.Context, req SolveLevelRequest) (wordlink.Outcome, error) {
	if len(req.Level.Slots) == 0 {
		return wordlink.Outcome{}, errors.New("level must have at least one slot")
	}
	if err := req.Level.Validate(); err != nil {
		return wordlink.Outcome{}, err
	}
	if req.MaxResults <= 0 {
		req.MaxResults = wordlink.DefaultMaxResults
	}
	if req.MaxResults > maxResultsLimit {
		return wordlink.Outcome{}, fmt.Errorf("maxResults must be at most %d", maxResultsLimit)
	}

	all := req.Words
	if req.WordScope != "" {
		scoped, err := getWords(ctx, req.WordScope)
		if err != nil {
			return wordlink.Outcome{}, fmt.Errorf("getWords: %w", err)
		}
		fmt.Printf("Loaded %d words for scope %s\n", len(scoped), req.WordScope)
		all = append(scoped[:len(scoped):len(scoped)], req.Words...)
	}
	if len(all) == 0 {
		return wordlink.Outcome{}, errors.New("words must not be empty")
	}

	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	buckets, err := internal.BucketWords(ctx, rand.New(rand.NewPCG(seed, seed>>1)), internal.BucketParams{
		Words:         all,
		ExcludedWords: req.ExcludedWords,
		Logger:        logger,
	})
	if err != nil {
		return wordlink.Outcome{}, err
	}

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		fmt.Printf("Setting timeout to %v\n", timeout)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	solver := wordlink.CreateSolver(
		req.Level.SlotLengths(),
		req.Level.ParsedConnections(logger),
		buckets,
		wordlink.SolverParams{MaxResults: req.MaxResults, Logger: logger},
	)
	return solver.Solve(ctx), nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

// preflight handles CORS and method checks. It reports whether the request
// should be processed further.
func preflight(w http.ResponseWriter, r *http.Request) bool {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("marshaling response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
	w.WriteHeader(status)
	w.Write(body)
}

func solveLevel(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r) {
		return
	}

	var req SolveLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("parsing JSON body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, SolveLevelResponse{
			Error: fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	outcome, err := solve(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, SolveLevelResponse{Error: err.Error()})
		return
	}

	response := SolveLevelResponse{
		Success:       outcome.Reason == wordlink.ReasonFound,
		Reason:        string(outcome.Reason),
		Combinations:  [][]string{},
		MissingLength: outcome.MissingLength,
	}
	for _, c := range outcome.Combinations {
		upper := make([]string, len(c.Words))
		for i, word := range c.Words {
			upper[i] = strings.ToUpper(word)
		}
		response.Combinations = append(response.Combinations, upper)
	}
	switch outcome.Reason {
	case wordlink.ReasonNoWordsOfLength:
		response.Error = fmt.Sprintf("No words of length %d", outcome.MissingLength)
	case wordlink.ReasonNoCombinations:
		response.Error = "No valid combinations could be found with the given words"
	case wordlink.ReasonCancelled:
		response.Error = outcome.Err().Error()
	}
	writeJSON(w, http.StatusOK, response)
}

func checkPlacement(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r) {
		return
	}

	var req CheckPlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("parsing JSON body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, CheckPlacementResponse{
			Error: fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	session := play.NewSession(req.Level.SlotLengths(), req.Level.ParsedConnections(logger))
	for _, p := range req.Placements {
		session.Place(strings.ToUpper(p.Word), p.SlotIndex, p.BankIndex)
	}
	verdict := session.Drop(strings.ToUpper(req.Word), req.SlotIndex, req.BankIndex)

	hints := session.Hints()
	if hints == nil {
		hints = []play.Hint{}
	}
	writeJSON(w, http.StatusOK, CheckPlacementResponse{
		Success:  true,
		Verdict:  verdict,
		Complete: session.Complete(),
		Hints:    hints,
	})
}

func main() {
	var err error
	if logger, err = zap.NewProduction(); err != nil {
		log.Fatalf("zap.NewProduction: %v\n", err)
	}
	defer logger.Sync()

	funcframework.RegisterHTTPFunction("/solve-level", solveLevel)
	funcframework.RegisterHTTPFunction("/check-placement", checkPlacement)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
