package retrieval

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"
)

// MemoryIndex is an in-process vector index backed by chromem-go, used when
// no database is configured. It mirrors the PostgresIndex contract, trading
// durability for zero setup.
type MemoryIndex struct {
	mu   sync.Mutex
	coll *chromem.Collection
	topK int
}

func NewMemoryIndex(embedder Embedder, topK int) (*MemoryIndex, error) {
	if topK <= 0 {
		topK = 3
	}
	db := chromem.NewDB()
	coll, err := db.CreateCollection("documents", nil, EmbeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &MemoryIndex{coll: coll, topK: topK}, nil
}

func (x *MemoryIndex) Add(ctx context.Context, name, content string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	err := x.coll.AddDocument(ctx, chromem.Document{
		ID:       uuid.NewString(),
		Content:  content,
		Metadata: map[string]string{"name": name},
	})
	if err != nil {
		return fmt.Errorf("add document %q: %w", name, err)
	}
	return nil
}

func (x *MemoryIndex) Retrieve(ctx context.Context, query string) ([]Passage, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	// chromem rejects queries asking for more results than stored documents.
	k := x.topK
	if n := x.coll.Count(); n < k {
		k = n
	}
	if k == 0 {
		return nil, nil
	}

	results, err := x.coll.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	out := make([]Passage, 0, len(results))
	for _, r := range results {
		// chromem reports cosine similarity; convert to a distance so both
		// index implementations agree on "smaller is better".
		out = append(out, Passage{
			Content:  r.Content,
			Distance: 1 - float64(r.Similarity),
		})
	}
	return out, nil
}
