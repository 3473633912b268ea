package retrieval

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtool/internal/domain"
)

// --- Mocks ---

type mockEmbedder struct {
	vec    []float32
	err    error
	called int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

type mockIndex struct {
	matches  []domain.Match
	err      error
	called   int
	lastVec  []float32
	lastTopK int
}

func (m *mockIndex) Query(_ context.Context, vector []float32, topK int) ([]domain.Match, error) {
	m.called++
	m.lastVec = vector
	m.lastTopK = topK
	return m.matches, m.err
}

func newService(embed *mockEmbedder, index *mockIndex) *Service {
	return New(embed, index, zap.NewNop())
}

// --- Tests ---

func TestSearch_FormatsMatchesInOrder(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1, 0.2}}
	index := &mockIndex{matches: []domain.Match{
		{PageTitle: "Paris", Content: "Paris is the capital."},
		{PageTitle: "France", Content: "France is a country."},
	}}

	got, err := newService(embed, index).Search(context.Background(), Input{Query: "capital of France"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Page Title: Paris Content: Paris is the capital. Page Title: France Content: France is a country. "
	if got != want {
		t.Errorf("output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	index := &mockIndex{}

	got, err := newService(embed, index).Search(context.Background(), Input{Query: "obscure topic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "No results found for the query." {
		t.Errorf("got %q, want no-results sentinel", got)
	}
}

func TestSearch_EmbeddingFailureReturnsSentinel(t *testing.T) {
	embed := &mockEmbedder{err: errors.New("api down")}
	index := &mockIndex{}

	got, err := newService(embed, index).Search(context.Background(), Input{Query: "anything"})
	if err != nil {
		t.Fatalf("search must not raise on service failure, got %v", err)
	}
	if got != "There was an error with the Pinecone search." {
		t.Errorf("got %q, want error sentinel", got)
	}
	if index.called != 0 {
		t.Errorf("index should not be queried after embed failure, called %d times", index.called)
	}
}

func TestSearch_IndexFailureReturnsSentinel(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	index := &mockIndex{err: errors.New("index unreachable")}

	got, err := newService(embed, index).Search(context.Background(), Input{Query: "anything"})
	if err != nil {
		t.Fatalf("search must not raise on service failure, got %v", err)
	}
	if got != SearchErrorText {
		t.Errorf("got %q, want error sentinel", got)
	}
}

func TestSearch_ValidationRejectsBeforeNetworkCalls(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		embed := &mockEmbedder{vec: []float32{0.1}}
		index := &mockIndex{}

		_, err := newService(embed, index).Search(context.Background(), Input{Query: query})
		if !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("query %q: expected ErrInvalidQuery, got %v", query, err)
		}
		if embed.called != 0 {
			t.Errorf("query %q: embedder called %d times, want 0", query, embed.called)
		}
		if index.called != 0 {
			t.Errorf("query %q: index called %d times, want 0", query, index.called)
		}
	}
}

func TestRetrieve_PassesVectorAndTopK(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	index := &mockIndex{matches: []domain.Match{{PageTitle: "t", Content: "c"}}}

	result, err := newService(embed, index).Retrieve(context.Background(), Input{Query: "q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeMatches {
		t.Errorf("outcome = %q, want matches", result.Outcome)
	}
	if index.lastTopK != TopK {
		t.Errorf("topK = %d, want %d", index.lastTopK, TopK)
	}
	if len(index.lastVec) != 3 || index.lastVec[2] != 0.3 {
		t.Errorf("index received wrong vector: %v", index.lastVec)
	}
}

func TestRetrieve_OutcomesAreDistinguishable(t *testing.T) {
	tests := []struct {
		name    string
		embed   *mockEmbedder
		index   *mockIndex
		outcome Outcome
	}{
		{"no matches", &mockEmbedder{vec: []float32{0.1}}, &mockIndex{}, OutcomeNoMatches},
		{"service error", &mockEmbedder{err: errors.New("down")}, &mockIndex{}, OutcomeServiceError},
		{"matches", &mockEmbedder{vec: []float32{0.1}}, &mockIndex{matches: []domain.Match{{}}}, OutcomeMatches},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := newService(tc.embed, tc.index).Retrieve(context.Background(), Input{Query: "q"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Outcome != tc.outcome {
				t.Errorf("outcome = %q, want %q", result.Outcome, tc.outcome)
			}
		})
	}
}

func TestResultText_SingleMatchKeepsTrailingSpace(t *testing.T) {
	r := Result{Outcome: OutcomeMatches, Matches: []domain.Match{
		{PageTitle: "Title", Content: "Body"},
	}}
	if got := r.Text(); got != "Page Title: Title Content: Body " {
		t.Errorf("got %q", got)
	}
}
