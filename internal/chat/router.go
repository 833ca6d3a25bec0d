package chat

import (
	"regexp"
	"strings"
)

// Handler identifies which response strategy handles an incoming message.
type Handler string

const (
	HandleGreeting       Handler = "greeting"
	HandleMemoryRecap    Handler = "memory_recap"
	HandleGroundedAnswer Handler = "grounded_answer"
)

var greetingTokens = map[string]struct{}{
	"hi":    {},
	"hello": {},
	"hey":   {},
}

// recapPattern matches requests to summarize or revisit the conversation.
var recapPattern = regexp.MustCompile(
	`(?i)(what\s+were\s+we\s+(talking|discussing)` +
		`|what\s+did\s+we\s+discuss` +
		`|summarize|summary` +
		`|what\s+we\s+discussed` +
		`|explain\s+what\s+we\s+discussed` +
		`|tell\s+me\s+what\s+we\s+talked\s+about` +
		`|recap` +
		`|what\s+have\s+we\s+covered` +
		`|what\s+topics\s+did\s+we\s+cover` +
		`|review\s+our\s+conversation` +
		`|go\s+over\s+what\s+we\s+discussed)`,
)

// Route classifies a user message by its literal text only. It is a pure
// function: no history, no store, no external calls. The greeting check runs
// before the recap check, so an exact greeting token always wins.
func Route(text string) Handler {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if _, ok := greetingTokens[trimmed]; ok {
		return HandleGreeting
	}
	if recapPattern.MatchString(trimmed) {
		return HandleMemoryRecap
	}
	return HandleGroundedAnswer
}

// IsGreeting reports whether the trimmed, case-folded text is a bare greeting.
func IsGreeting(text string) bool {
	_, ok := greetingTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}
