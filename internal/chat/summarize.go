package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/antoniostano/ingpt/internal/llm"
)

const answerTruncateLimit = 200

var chitChatPhrases = []string{"how are you", "how's it going", "what's up"}

// Summarizer condenses a session's history into a short paragraph summary.
type Summarizer struct {
	gen llm.Generator
}

func NewSummarizer(gen llm.Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// Summarize produces a summary of the given history, which must exclude the
// message that triggered the recap. It always resolves to some text; failures
// surface as inline assistant-authored messages.
func (s *Summarizer) Summarize(ctx context.Context, history []Message) string {
	if len(history) < 2 {
		return NoPriorDiscussion
	}

	pairs := pairQA(history)
	if len(pairs) == 0 {
		return NoSubstantiveContent
	}

	conversation := strings.Join(pairs, "\n\n")
	user := "Summarize this conversation in 2-3 sentences:\n\n" + conversation

	out, err := s.gen.Generate(ctx, summarizerSystemPrompt, user, summaryTemperature, summaryMaxTokens)
	if err != nil {
		return fmt.Sprintf("Error generating summary: %v", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return NoContentToSummarize
	}
	return out
}

// pairQA walks the history pairing each user message with the immediately
// following assistant message, dropping greeting and chit-chat pairs. A
// trailing unanswered user message yields an empty answer.
func pairQA(history []Message) []string {
	var pairs []string
	for i, msg := range history {
		if msg.Role != RoleUser {
			continue
		}
		question := strings.TrimSpace(msg.Content)
		if IsGreeting(question) {
			continue
		}
		if containsChitChat(question) {
			continue
		}

		answer := ""
		if i+1 < len(history) && history[i+1].Role == RoleAssistant {
			answer = history[i+1].Content
		}
		pairs = append(pairs, fmt.Sprintf("Q: %s\nA: %s", question, truncateAnswer(answer)))
	}
	return pairs
}

func containsChitChat(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range chitChatPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func truncateAnswer(answer string) string {
	runes := []rune(answer)
	if len(runes) <= answerTruncateLimit {
		return answer
	}
	return string(runes[:answerTruncateLimit]) + "..."
}
