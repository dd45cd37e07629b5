package session

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultChatName is the chat created alongside every session. It holds the
// history seeded by the initial summarize run and backs single-chat access.
const DefaultChatName = "default"

// SeedMessageCount is how many leading messages of the default chat a newly
// created chat inherits.
const SeedMessageCount = 5

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is the durable aggregate for one processed interview.
type Session struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Summary    string    `json:"summary"`
	Transcript string    `json:"transcript"`
	CreatedAt  time.Time `json:"created_at"`
}

// Chat is a named conversation thread over a session's material.
type Chat struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// NewID returns a fresh identifier for sessions and chats.
func NewID() string {
	return uuid.NewString()
}

// Append adds a new message to the end of the chat.
func (c *Chat) Append(role Role, content string) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
}

// AppendDelta extends the trailing message in place when it has the same
// role, otherwise starts a new message. Streamed replies accumulate into a
// single message this way instead of one message per fragment.
func (c *Chat) AppendDelta(role Role, delta string) {
	if n := len(c.Messages); n > 0 && c.Messages[n-1].Role == role {
		c.Messages[n-1].Content += delta
		return
	}
	c.Append(role, delta)
}

// SeedMessages returns an owned copy of the first SeedMessageCount messages
// of the given history, preserving order. Copying keeps message records from
// being aliased across chats.
func SeedMessages(history []Message) []Message {
	n := len(history)
	if n > SeedMessageCount {
		n = SeedMessageCount
	}
	seed := make([]Message, n)
	copy(seed, history[:n])
	return seed
}
