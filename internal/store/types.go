package store

import (
	"context"
	"time"

	"github.com/antoniostano/ingpt/internal/chat"
)

// Record is one persisted conversational turn. Seq reflects append order
// within a session and is the single source of truth for conversation order.
type Record struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int64     `json:"seq"`
	Role      chat.Role `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists per-session conversation logs. Sessions are created lazily
// on first append; History of an unknown session returns an empty slice,
// never an error. Appends are atomic per call.
type Store interface {
	Append(ctx context.Context, sessionID string, msg chat.Message) error
	History(ctx context.Context, sessionID string) ([]chat.Message, error)
	Close() error
}
