package pinecone

import (
	"github.com/pinecone-io/go-pinecone/v3/pinecone"

	"github.com/kailas-cloud/ragtool/internal/domain"
)

// Metadata fields the knowledge index stores per vector.
const (
	metaPageTitle = "page_title"
	metaContent   = "content"
)

// toMatch converts an SDK scored vector into a domain match.
// Missing metadata fields become empty strings, never errors.
func toMatch(sv *pinecone.ScoredVector) domain.Match {
	m := domain.Match{Score: sv.Score}
	if sv.Vector == nil {
		return m
	}

	m.ID = sv.Vector.Id
	m.PageTitle = metadataString(sv.Vector.Metadata, metaPageTitle)
	m.Content = metadataString(sv.Vector.Metadata, metaContent)
	return m
}

// metadataString extracts a string field from vector metadata.
func metadataString(md *pinecone.Metadata, key string) string {
	if md == nil {
		return ""
	}
	if v, ok := md.GetFields()[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
