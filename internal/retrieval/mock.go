package retrieval

import (
	"context"
	"sync"
)

// MockRetriever returns canned passages and records queries. Safe for
// concurrent use.
type MockRetriever struct {
	mu      sync.Mutex
	queries []string

	Passages []Passage
	Err      error
}

func (m *MockRetriever) Retrieve(_ context.Context, query string) ([]Passage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Passages, nil
}

// Queries returns a copy of all recorded query strings.
func (m *MockRetriever) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}
