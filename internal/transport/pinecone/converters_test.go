package pinecone

import (
	"testing"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

func metadata(t *testing.T, fields map[string]any) *pinecone.Metadata {
	t.Helper()
	md, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("structpb.NewStruct: %v", err)
	}
	return md
}

func TestToMatch(t *testing.T) {
	sv := &pinecone.ScoredVector{
		Score: 0.87,
		Vector: &pinecone.Vector{
			Id: "doc-1",
			Metadata: metadata(t, map[string]any{
				"page_title": "Paris",
				"content":    "Paris is the capital.",
			}),
		},
	}

	m := toMatch(sv)
	if m.ID != "doc-1" {
		t.Errorf("ID = %q, want doc-1", m.ID)
	}
	if m.Score != 0.87 {
		t.Errorf("Score = %f, want 0.87", m.Score)
	}
	if m.PageTitle != "Paris" {
		t.Errorf("PageTitle = %q, want Paris", m.PageTitle)
	}
	if m.Content != "Paris is the capital." {
		t.Errorf("Content = %q", m.Content)
	}
}

func TestToMatch_MissingMetadataFields(t *testing.T) {
	sv := &pinecone.ScoredVector{
		Score: 0.5,
		Vector: &pinecone.Vector{
			Id:       "doc-2",
			Metadata: metadata(t, map[string]any{"other": "value"}),
		},
	}

	m := toMatch(sv)
	if m.PageTitle != "" || m.Content != "" {
		t.Errorf("expected empty fields, got title=%q content=%q", m.PageTitle, m.Content)
	}
}

func TestToMatch_NilMetadata(t *testing.T) {
	sv := &pinecone.ScoredVector{
		Score:  0.5,
		Vector: &pinecone.Vector{Id: "doc-3"},
	}

	m := toMatch(sv)
	if m.ID != "doc-3" {
		t.Errorf("ID = %q, want doc-3", m.ID)
	}
	if m.PageTitle != "" || m.Content != "" {
		t.Errorf("expected empty fields for nil metadata")
	}
}

func TestToMatch_NilVector(t *testing.T) {
	m := toMatch(&pinecone.ScoredVector{Score: 0.1})
	if m.Score != 0.1 {
		t.Errorf("Score = %f, want 0.1", m.Score)
	}
	if m.ID != "" {
		t.Errorf("expected empty ID, got %q", m.ID)
	}
}

func TestToMatch_NonStringMetadata(t *testing.T) {
	sv := &pinecone.ScoredVector{
		Vector: &pinecone.Vector{
			Id:       "doc-4",
			Metadata: metadata(t, map[string]any{"page_title": 42.0}),
		},
	}

	if m := toMatch(sv); m.PageTitle != "" {
		t.Errorf("non-string metadata should convert to empty string, got %q", m.PageTitle)
	}
}
