// Package retrieval implements the query pipeline: validate, embed, search,
// format. It is the single use case this service exists for.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtool/internal/domain"
	"github.com/kailas-cloud/ragtool/internal/metrics"
)

// TopK is the fixed number of nearest matches requested per query.
const TopK = 3

// Text returned to the agent when the pipeline cannot produce matches.
// These exact strings are part of the tool contract; agents may key off them.
const (
	NoResultsText   = "No results found for the query."
	SearchErrorText = "There was an error with the Pinecone search."
)

// Input is the tool invocation payload.
type Input struct {
	Query string `json:"query"`
}

// Validate rejects empty and whitespace-only queries before any network call.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Query) == "" {
		return fmt.Errorf("%w: query must be a non-empty string", domain.ErrInvalidQuery)
	}
	return nil
}

// Outcome classifies a retrieval result so callers never have to string-match
// the rendered text to tell "nothing relevant" from "upstream outage".
type Outcome string

const (
	OutcomeMatches      Outcome = "matches"
	OutcomeNoMatches    Outcome = "no_matches"
	OutcomeServiceError Outcome = "service_error"
)

// Result is the structured outcome of one retrieval.
type Result struct {
	Outcome Outcome
	Matches []domain.Match
}

// Text renders the result as the agent-facing blob: one labeled fragment per
// match in index order, or one of the fixed sentinel strings.
func (r Result) Text() string {
	switch r.Outcome {
	case OutcomeServiceError:
		return SearchErrorText
	case OutcomeNoMatches:
		return NoResultsText
	}

	var b strings.Builder
	for _, m := range r.Matches {
		fmt.Fprintf(&b, "Page Title: %s Content: %s ", m.PageTitle, m.Content)
	}
	return b.String()
}

// Service runs the retrieval pipeline.
type Service struct {
	embed  Embedder
	index  VectorIndex
	logger *zap.Logger
}

// New creates a retrieval service.
func New(embed Embedder, index VectorIndex, logger *zap.Logger) *Service {
	return &Service{embed: embed, index: index, logger: logger}
}

// Retrieve validates the input and runs embed then search, returning a
// structured result. Only validation failures surface as errors; embedding and
// index failures are logged and reported as OutcomeServiceError so the
// operation never raises past its boundary.
func (s *Service) Retrieve(ctx context.Context, in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	start := time.Now()

	embResult, err := s.embed.Embed(ctx, in.Query)
	if err != nil {
		s.logger.Error("Embedding query failed", zap.Error(err))
		return s.finish(Result{Outcome: OutcomeServiceError}, start), nil
	}

	matches, err := s.index.Query(ctx, embResult.Embedding, TopK)
	if err != nil {
		s.logger.Error("Vector search failed", zap.Error(err))
		return s.finish(Result{Outcome: OutcomeServiceError}, start), nil
	}

	if len(matches) == 0 {
		return s.finish(Result{Outcome: OutcomeNoMatches}, start), nil
	}

	return s.finish(Result{Outcome: OutcomeMatches, Matches: matches}, start), nil
}

// Search runs Retrieve and renders the text contract.
func (s *Service) Search(ctx context.Context, in Input) (string, error) {
	result, err := s.Retrieve(ctx, in)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

func (s *Service) finish(r Result, start time.Time) Result {
	metrics.RetrievalRequestsTotal.WithLabelValues(string(r.Outcome)).Inc()
	metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	metrics.RetrievalMatchesReturned.Observe(float64(len(r.Matches)))
	return r
}
