package chat

// Role tags a conversational message as user- or assistant-authored.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversational turn. Messages are immutable once
// appended to a session; ordering within a session is append order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
