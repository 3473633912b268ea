// Package pinecone adapts the Pinecone SDK to the retrieval VectorIndex contract.
package pinecone

import (
	"context"
	"fmt"
	"sync"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtool/internal/domain"
)

// Config holds the vector index settings.
type Config struct {
	APIKey    string
	IndexName string
	Host      string // optional data-plane host; when set, DescribeIndex is skipped
	Namespace string
	Logger    *zap.Logger
}

// Index queries a hosted Pinecone index.
//
// The SDK needs the index data-plane host before it can query. To keep
// construction free of network calls, host resolution (DescribeIndex) is
// deferred to the first query and the connection is reused afterwards.
type Index struct {
	client    *pinecone.Client
	indexName string
	host      string
	namespace string
	logger    *zap.Logger

	mu   sync.Mutex
	conn *pinecone.IndexConnection
}

// NewIndex creates a Pinecone index handle. No network call happens here.
func NewIndex(cfg *Config) (*Index, error) {
	pc, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create pinecone client: %w", err)
	}

	return &Index{
		client:    pc,
		indexName: cfg.IndexName,
		host:      cfg.Host,
		namespace: cfg.Namespace,
		logger:    cfg.Logger,
	}, nil
}

// Query runs a top-K nearest neighbor search with metadata included and
// returns matches in the order the service ranked them.
func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]domain.Match, error) {
	conn, err := i.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVectorSearchFailed, err)
	}

	res, err := conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query index %q: %w", domain.ErrVectorSearchFailed, i.indexName, err)
	}

	matches := make([]domain.Match, 0, len(res.Matches))
	for _, sv := range res.Matches {
		matches = append(matches, toMatch(sv))
	}
	return matches, nil
}

// connect resolves the data-plane host and opens the index connection once.
// A failed resolve is retried on the next call rather than cached.
func (i *Index) connect(ctx context.Context) (*pinecone.IndexConnection, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.conn != nil {
		return i.conn, nil
	}

	host := i.host
	if host == "" {
		idx, err := i.client.DescribeIndex(ctx, i.indexName)
		if err != nil {
			return nil, fmt.Errorf("describe index %q: %w", i.indexName, err)
		}
		host = idx.Host
		i.logger.Debug("Resolved index host",
			zap.String("index", i.indexName),
			zap.String("host", host),
		)
	}

	conn, err := i.client.Index(pinecone.NewIndexConnParams{
		Host:      host,
		Namespace: i.namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to index %q: %w", i.indexName, err)
	}

	i.conn = conn
	return conn, nil
}
