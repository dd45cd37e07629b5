package store

import "github.com/interviewkit/interview-flow/internal/session"

// Store persists sessions and their chats. A session is written exactly
// once, at the end of a successful summarize run; chats belong to exactly
// one session and are removed with it.
type Store interface {
	CreateSession(sess *session.Session, defaultMessages []session.Message) (*session.Chat, error)
	GetSession(id string) (*session.Session, error)
	ListSessions() ([]*session.Session, error)
	RenameSession(id, name string) error
	UpdateSummary(id, summary string) error
	DeleteSession(id string) error

	CreateChat(sessionID, name string) (*session.Chat, error)
	GetChat(id string) (*session.Chat, error)
	DefaultChat(sessionID string) (*session.Chat, error)
	ListChats(sessionID string) ([]*session.Chat, error)
	RenameChat(id, name string) error
	UpdateChatMessages(id string, messages []session.Message) error
	DeleteChat(id string) error

	Close() error
}
