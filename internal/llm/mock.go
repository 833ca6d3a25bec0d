package llm

import (
	"context"
	"sync"
)

// GenerateCall records one invocation of the mock generator.
type GenerateCall struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// MockGenerator returns canned output and records every call. Safe for
// concurrent use.
type MockGenerator struct {
	mu    sync.Mutex
	calls []GenerateCall

	Reply string
	Err   error
}

func NewMockGenerator(reply string) *MockGenerator {
	return &MockGenerator{Reply: reply}
}

func (m *MockGenerator) Generate(_ context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, GenerateCall{
		System:      system,
		User:        user,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Calls returns a copy of all recorded invocations.
func (m *MockGenerator) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GenerateCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Generate invocations so far.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
