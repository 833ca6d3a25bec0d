package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MessageType identifies streamed event variants on the websocket transport.
type MessageType string

const (
	TypeChunk MessageType = "chunk"
	TypeDone  MessageType = "done"
	TypeError MessageType = "error"
)

// DoneSentinel terminates every stream on the SSE transport.
const DoneSentinel = "[DONE]"

// ChatRequest is the inbound chat payload on both transports. Mode defaults
// to "ask"; it is accepted for wire compatibility but does not affect
// routing.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	Mode      string `json:"mode"`
}

// ChunkEvent carries one assistant message with newlines escaped.
type ChunkEvent struct {
	Type  MessageType `json:"type"`
	Chunk string      `json:"chunk"`
}

// DoneEvent signals stream completion.
type DoneEvent struct {
	Type MessageType `json:"type"`
}

// ErrorEvent reports a request-level failure without breaking the framing.
type ErrorEvent struct {
	Type   MessageType `json:"type"`
	Code   string      `json:"code"`
	Detail string      `json:"detail"`
}

// ParseChatRequest decodes and validates an inbound chat request.
func ParseChatRequest(raw []byte) (ChatRequest, error) {
	var req ChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ChatRequest{}, fmt.Errorf("invalid chat request: %w", err)
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return ChatRequest{}, errors.New("session_id is required")
	}
	if strings.TrimSpace(req.Question) == "" {
		return ChatRequest{}, errors.New("question is required")
	}
	if strings.TrimSpace(req.Mode) == "" {
		req.Mode = "ask"
	}
	return req, nil
}

// EscapeNewlines replaces newline characters with the two-character sequence
// \n so line-based framing survives multi-line content.
func EscapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// UnescapeNewlines is the receiving-side inverse of EscapeNewlines.
func UnescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
