package domain

// SearchResult is one retrieved chunk with its similarity distance.
// Lower distance means a closer match.
type SearchResult struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Distance float64           `json:"distance"`
}

// Answer is the outcome of an ask: the generated text plus the retrieved
// chunks that were forwarded as context.
type Answer struct {
	Text    string         `json:"text"`
	Sources []SearchResult `json:"sources"`
}

// IndexStatus describes the current state of the vector index.
type IndexStatus struct {
	ChunkCount int    `json:"chunk_count"`
	Collection string `json:"collection"`
}
