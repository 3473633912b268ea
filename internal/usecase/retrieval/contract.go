package retrieval

import (
	"context"

	"github.com/kailas-cloud/ragtool/internal/domain"
)

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorIndex runs a top-K similarity search over the hosted index.
type VectorIndex interface {
	Query(ctx context.Context, vector []float32, topK int) ([]domain.Match, error)
}
