package retrieval

import "context"

// Passage is one retrieved context snippet with its vector distance
// (smaller is more relevant). Passages are request-scoped and never persisted
// as part of session state.
type Passage struct {
	Content  string
	Distance float64
}

// Retriever returns candidate context passages for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Passage, error)
}

// Index is a retriever that also accepts new documents.
type Index interface {
	Retriever
	Add(ctx context.Context, name, content string) error
}

// Embedder converts text into a vector embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
