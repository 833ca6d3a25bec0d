package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/antoniostano/ingpt/internal/protocol"
)

// chunkEvent is the SSE wire representation of one streamed message.
type chunkEvent struct {
	Chunk string `json:"chunk"`
}

// StreamEmitter writes chunk events as server-sent events, flushing after
// every event so messages reach the client as they are produced rather than
// buffered until completion.
type StreamEmitter struct {
	w       io.Writer
	flusher http.Flusher
}

func NewStreamEmitter(w http.ResponseWriter) (*StreamEmitter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flushing")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	// Disable nginx buffering so events are not held back by a proxy.
	w.Header().Set("X-Accel-Buffering", "no")

	return &StreamEmitter{w: w, flusher: flusher}, nil
}

// Chunk emits one assistant message. Newlines are escaped before framing so
// multi-line content cannot corrupt the line-based transport.
func (e *StreamEmitter) Chunk(text string) error {
	payload, err := json.Marshal(chunkEvent{Chunk: protocol.EscapeNewlines(text)})
	if err != nil {
		return fmt.Errorf("marshal chunk: %w", err)
	}
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write chunk: %w", err)
	}
	e.flusher.Flush()
	return nil
}

// Done writes the terminal sentinel event.
func (e *StreamEmitter) Done() error {
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", protocol.DoneSentinel); err != nil {
		return fmt.Errorf("write done sentinel: %w", err)
	}
	e.flusher.Flush()
	return nil
}
