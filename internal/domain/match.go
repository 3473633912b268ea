package domain

// Match is a single vector index hit with the metadata the formatter needs.
// The index returns matches already ordered by relevance; no re-ranking happens
// downstream.
type Match struct {
	ID        string
	Score     float32
	PageTitle string
	Content   string
}
