package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/antoniostano/ingpt/internal/llm"
)

func TestSummarizeShortCircuitsOnThinHistory(t *testing.T) {
	gen := llm.NewMockGenerator("should never be called")
	s := NewSummarizer(gen)

	cases := [][]Message{
		nil,
		{{Role: RoleUser, Content: "What is the leave policy?"}},
	}
	for _, history := range cases {
		got := s.Summarize(context.Background(), history)
		if got != NoPriorDiscussion {
			t.Fatalf("Summarize() = %q, want %q", got, NoPriorDiscussion)
		}
	}
	if gen.CallCount() != 0 {
		t.Fatalf("generator called %d times, want 0", gen.CallCount())
	}
}

func TestSummarizeFiltersGreetingsAndChitChat(t *testing.T) {
	gen := llm.NewMockGenerator("unused")
	s := NewSummarizer(gen)

	history := []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: GreetingReply},
		{Role: RoleUser, Content: "how are you doing today"},
		{Role: RoleAssistant, Content: "Doing well!"},
	}
	got := s.Summarize(context.Background(), history)
	if got != NoSubstantiveContent {
		t.Fatalf("Summarize() = %q, want %q", got, NoSubstantiveContent)
	}
	if gen.CallCount() != 0 {
		t.Fatalf("generator called %d times, want 0", gen.CallCount())
	}
}

func TestSummarizeTruncatesLongAnswers(t *testing.T) {
	gen := llm.NewMockGenerator("A short summary.")
	s := NewSummarizer(gen)

	longAnswer := strings.Repeat("x", 250)
	history := []Message{
		{Role: RoleUser, Content: "What is the remote work policy?"},
		{Role: RoleAssistant, Content: longAnswer},
	}
	_ = s.Summarize(context.Background(), history)

	calls := gen.Calls()
	if len(calls) != 1 {
		t.Fatalf("generator called %d times, want 1", len(calls))
	}
	wantBlock := "Q: What is the remote work policy?\nA: " + strings.Repeat("x", 200) + "..."
	if !strings.Contains(calls[0].User, wantBlock) {
		t.Fatalf("generator user content missing truncated block; got:\n%s", calls[0].User)
	}
	if strings.Contains(calls[0].User, strings.Repeat("x", 201)) {
		t.Fatalf("answer not truncated to 200 characters")
	}
}

func TestSummarizeFormatsPairsAndUsesFixedSettings(t *testing.T) {
	gen := llm.NewMockGenerator("We discussed leave and travel policies.")
	s := NewSummarizer(gen)

	history := []Message{
		{Role: RoleUser, Content: "What is the leave policy?"},
		{Role: RoleAssistant, Content: "20 days per year."},
		{Role: RoleUser, Content: "What about travel?"},
		{Role: RoleAssistant, Content: "Book through the portal."},
	}
	got := s.Summarize(context.Background(), history)
	if got != "We discussed leave and travel policies." {
		t.Fatalf("Summarize() = %q", got)
	}

	calls := gen.Calls()
	if len(calls) != 1 {
		t.Fatalf("generator called %d times, want 1", len(calls))
	}
	call := calls[0]
	if !strings.Contains(call.System, "2-3 concise sentences") {
		t.Fatalf("system instruction missing sentence constraint:\n%s", call.System)
	}
	if !strings.Contains(call.User, "Q: What is the leave policy?\nA: 20 days per year.") {
		t.Fatalf("first pair missing from user content:\n%s", call.User)
	}
	if !strings.Contains(call.User, "Q: What about travel?\nA: Book through the portal.") {
		t.Fatalf("second pair missing from user content:\n%s", call.User)
	}
	if call.Temperature != summaryTemperature || call.MaxTokens != summaryMaxTokens {
		t.Fatalf("settings = (%v, %d), want (%v, %d)",
			call.Temperature, call.MaxTokens, summaryTemperature, summaryMaxTokens)
	}
}

func TestSummarizeTrailingUnansweredQuestion(t *testing.T) {
	gen := llm.NewMockGenerator("Summary.")
	s := NewSummarizer(gen)

	history := []Message{
		{Role: RoleUser, Content: "What is the leave policy?"},
		{Role: RoleAssistant, Content: "20 days per year."},
		{Role: RoleUser, Content: "And parental leave?"},
	}
	_ = s.Summarize(context.Background(), history)

	calls := gen.Calls()
	if len(calls) != 1 {
		t.Fatalf("generator called %d times, want 1", len(calls))
	}
	if !strings.Contains(calls[0].User, "Q: And parental leave?\nA: ") {
		t.Fatalf("unanswered trailing question should appear with empty answer:\n%s", calls[0].User)
	}
}

func TestSummarizeGeneratorFailureAndEmptyOutput(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "What is the leave policy?"},
		{Role: RoleAssistant, Content: "20 days per year."},
	}

	failing := llm.NewMockGenerator("")
	failing.Err = errors.New("connection refused")
	got := NewSummarizer(failing).Summarize(context.Background(), history)
	if !strings.HasPrefix(got, "Error generating summary:") {
		t.Fatalf("failure text = %q", got)
	}
	if !strings.Contains(got, "connection refused") {
		t.Fatalf("failure text should carry the underlying detail: %q", got)
	}

	empty := llm.NewMockGenerator("   ")
	got = NewSummarizer(empty).Summarize(context.Background(), history)
	if got != NoContentToSummarize {
		t.Fatalf("empty output = %q, want %q", got, NoContentToSummarize)
	}
}
