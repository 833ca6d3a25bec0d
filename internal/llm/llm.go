package llm

import "context"

// Generator produces natural-language text from a system instruction and
// user text. Implementations may fail or return empty output; callers are
// responsible for converting either into user-facing fallback text.
type Generator interface {
	Generate(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}
