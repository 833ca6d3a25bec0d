package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/antoniostano/ingpt/internal/llm"
)

// Answerer produces context-grounded answers. The system instruction embeds
// the retrieved context verbatim and enforces the answer-only-from-context
// policy, including the fixed refusal sentence.
type Answerer struct {
	gen llm.Generator
}

func NewAnswerer(gen llm.Generator) *Answerer {
	return &Answerer{gen: gen}
}

// Answer always resolves to some text; generator failures surface as inline
// messages rather than propagating past this boundary.
func (a *Answerer) Answer(ctx context.Context, question, contextText string) string {
	system := answerSystemPrompt + contextText

	out, err := a.gen.Generate(ctx, system, question, answerTemperature, answerMaxTokens)
	if err != nil {
		return fmt.Sprintf("Error: Internal AI connection failed. %v", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return NoAnswerFromContext
	}
	return out
}
