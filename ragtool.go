// Package ragtool is a retrieval tool for LLM agents: it embeds a natural
// language query with an OpenAI-compatible model and returns the closest
// documents from a hosted Pinecone index as a formatted text blob.
package ragtool

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtool/internal/domain"
	openaiEmb "github.com/kailas-cloud/ragtool/internal/transport/openai"
	pineconeIdx "github.com/kailas-cloud/ragtool/internal/transport/pinecone"
	"github.com/kailas-cloud/ragtool/internal/usecase/retrieval"
)

// Sentinel errors callers can match with errors.Is.
var (
	ErrMissingCredential = domain.ErrMissingCredential
	ErrInvalidQuery      = domain.ErrInvalidQuery
)

// Environment variables consulted when the matching Config field is empty.
const (
	EnvPineconeAPIKey = "PINECONE_API_KEY"
	EnvPineconeIndex  = "PINECONE_INDEX"
	EnvPineconeHost   = "PINECONE_HOST"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvOpenAIBaseURL  = "OPENAI_BASE_URL"
)

// DefaultIndexName is used when neither Config nor environment name an index.
const DefaultIndexName = "knowledge-base"

// Input is the tool invocation payload: a single non-empty query string.
type Input = retrieval.Input

// Result is the structured retrieval outcome for callers that need to tell
// "no relevant documents" from "upstream failure" without parsing text.
type Result = retrieval.Result

// Fixed sentinel strings of the text contract.
const (
	NoResultsText   = retrieval.NoResultsText
	SearchErrorText = retrieval.SearchErrorText
)

// Config holds construction overrides. Every field falls back to its
// environment variable; only the index name has a built-in default.
type Config struct {
	PineconeAPIKey   string
	PineconeIndex    string
	PineconeHost     string // optional data-plane host, skips index discovery
	EmbeddingAPIKey  string
	EmbeddingBaseURL string // empty = provider default endpoint
	Logger           *zap.Logger
}

// Tool is the retrieval tool. Safe for concurrent use; both service handles
// are established at construction and never mutated afterwards.
type Tool struct {
	svc       *retrieval.Service
	embedder  *openaiEmb.Embedder
	indexName string
}

// New creates the tool. It fails when either API key is absent from both the
// config and the environment. No network call happens here.
func New(cfg Config) (*Tool, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	pineconeKey := resolve(cfg.PineconeAPIKey, EnvPineconeAPIKey, "")
	if pineconeKey == "" {
		return nil, fmt.Errorf("pinecone api key: set Config.PineconeAPIKey or %s: %w",
			EnvPineconeAPIKey, domain.ErrMissingCredential)
	}

	embeddingKey := resolve(cfg.EmbeddingAPIKey, EnvOpenAIAPIKey, "")
	if embeddingKey == "" {
		return nil, fmt.Errorf("embedding api key: set Config.EmbeddingAPIKey or %s: %w",
			EnvOpenAIAPIKey, domain.ErrMissingCredential)
	}

	indexName := resolve(cfg.PineconeIndex, EnvPineconeIndex, DefaultIndexName)

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:  embeddingKey,
		BaseURL: resolve(cfg.EmbeddingBaseURL, EnvOpenAIBaseURL, ""),
		Logger:  log,
	})

	index, err := pineconeIdx.NewIndex(&pineconeIdx.Config{
		APIKey:    pineconeKey,
		IndexName: indexName,
		Host:      resolve(cfg.PineconeHost, EnvPineconeHost, ""),
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("create vector index: %w", err)
	}

	log.Info("Retrieval tool ready",
		zap.String("index", indexName),
		zap.String("model", embedder.Model()),
	)

	return &Tool{
		svc:       retrieval.New(embedder, index, log),
		embedder:  embedder,
		indexName: indexName,
	}, nil
}

// IndexName reports the resolved Pinecone index name.
func (t *Tool) IndexName() string { return t.indexName }

// Search runs the full pipeline and returns the agent-facing text: formatted
// matches, or one of the sentinel strings. Only invalid input surfaces as an
// error; upstream failures are logged and rendered as SearchErrorText.
func (t *Tool) Search(ctx context.Context, in Input) (string, error) {
	return t.svc.Search(ctx, in)
}

// Retrieve runs the same pipeline but returns the structured result.
func (t *Tool) Retrieve(ctx context.Context, in Input) (Result, error) {
	return t.svc.Retrieve(ctx, in)
}

// Embed converts a query into its embedding vector. Unlike Search, transport
// failures propagate unchanged.
func (t *Tool) Embed(ctx context.Context, query string) ([]float32, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must be a non-empty string", domain.ErrInvalidQuery)
	}
	res, err := t.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return res.Embedding, nil
}

// resolve applies the per-field precedence: explicit override, then
// environment variable, then fallback.
func resolve(override, envVar, fallback string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}
