package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/interviewkit/interview-flow/internal/session"
)

// CreateSession writes the session and its default chat in one transaction.
// The default chat receives the seeded message history produced by the
// summarize run.
func (s *implStore) CreateSession(sess *session.Session, defaultMessages []session.Message) (*session.Chat, error) {
	if sess.ID == "" {
		sess.ID = session.NewID()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}

	chat := &session.Chat{
		ID:        session.NewID(),
		SessionID: sess.ID,
		Name:      session.DefaultChatName,
		Messages:  append([]session.Message(nil), defaultMessages...),
		CreatedAt: sess.CreatedAt,
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := putJSON(tx.Bucket(bucketSessions), sess.ID, sess); err != nil {
			return err
		}
		return putJSON(tx.Bucket(bucketChats), chat.ID, chat)
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return chat, nil
}

func (s *implStore) GetSession(id string) (*session.Session, error) {
	var sess session.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		return getJSON(tx.Bucket(bucketSessions), id, &sess, &session.NotFoundError{Kind: "session", ID: id})
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *implStore) ListSessions() ([]*session.Session, error) {
	var out []*session.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(k, v []byte) error {
			var sess session.Session
			if err := json.Unmarshal(v, &sess); err != nil {
				// Skip malformed records instead of failing the listing.
				return nil
			}
			out = append(out, &sess)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *implStore) RenameSession(id, name string) error {
	return s.updateSession(id, func(sess *session.Session) { sess.Name = name })
}

func (s *implStore) UpdateSummary(id, summary string) error {
	return s.updateSession(id, func(sess *session.Session) { sess.Summary = summary })
}

func (s *implStore) updateSession(id string, mutate func(*session.Session)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		var sess session.Session
		if err := getJSON(b, id, &sess, &session.NotFoundError{Kind: "session", ID: id}); err != nil {
			return err
		}
		mutate(&sess)
		return putJSON(b, id, &sess)
	})
}

// DeleteSession removes the session and cascades to every chat it owns.
func (s *implStore) DeleteSession(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		sessions := tx.Bucket(bucketSessions)
		if sessions.Get([]byte(id)) == nil {
			return &session.NotFoundError{Kind: "session", ID: id}
		}
		if err := sessions.Delete([]byte(id)); err != nil {
			return err
		}

		chats := tx.Bucket(bucketChats)
		var doomed [][]byte
		err := chats.ForEach(func(k, v []byte) error {
			var chat session.Chat
			if err := json.Unmarshal(v, &chat); err != nil {
				return nil
			}
			if chat.SessionID == id {
				doomed = append(doomed, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range doomed {
			if err := chats.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateChat adds a named chat to an existing session, seeded with a copy of
// the leading messages of the default chat.
func (s *implStore) CreateChat(sessionID, name string) (*session.Chat, error) {
	chat := &session.Chat{
		ID:        session.NewID(),
		SessionID: sessionID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketSessions).Get([]byte(sessionID)) == nil {
			return &session.NotFoundError{Kind: "session", ID: sessionID}
		}

		if def := findChat(tx, sessionID, session.DefaultChatName); def != nil {
			chat.Messages = session.SeedMessages(def.Messages)
		}
		return putJSON(tx.Bucket(bucketChats), chat.ID, chat)
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *implStore) GetChat(id string) (*session.Chat, error) {
	var chat session.Chat
	err := s.db.View(func(tx *bolt.Tx) error {
		return getJSON(tx.Bucket(bucketChats), id, &chat, &session.NotFoundError{Kind: "chat", ID: id})
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// DefaultChat returns the session's default chat, recreating it empty when
// it has been deleted. A live session always has a default chat to answer
// single-chat access with.
func (s *implStore) DefaultChat(sessionID string) (*session.Chat, error) {
	var chat *session.Chat
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketSessions).Get([]byte(sessionID)) == nil {
			return &session.NotFoundError{Kind: "session", ID: sessionID}
		}
		if chat = findChat(tx, sessionID, session.DefaultChatName); chat != nil {
			return nil
		}
		chat = &session.Chat{
			ID:        session.NewID(),
			SessionID: sessionID,
			Name:      session.DefaultChatName,
			CreatedAt: time.Now().UTC(),
		}
		return putJSON(tx.Bucket(bucketChats), chat.ID, chat)
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *implStore) ListChats(sessionID string) ([]*session.Chat, error) {
	var out []*session.Chat
	err := s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketSessions).Get([]byte(sessionID)) == nil {
			return &session.NotFoundError{Kind: "session", ID: sessionID}
		}
		return tx.Bucket(bucketChats).ForEach(func(k, v []byte) error {
			var chat session.Chat
			if err := json.Unmarshal(v, &chat); err != nil {
				return nil
			}
			if chat.SessionID == sessionID {
				out = append(out, &chat)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *implStore) RenameChat(id, name string) error {
	return s.updateChat(id, func(chat *session.Chat) { chat.Name = name })
}

func (s *implStore) UpdateChatMessages(id string, messages []session.Message) error {
	return s.updateChat(id, func(chat *session.Chat) {
		chat.Messages = append([]session.Message(nil), messages...)
	})
}

func (s *implStore) updateChat(id string, mutate func(*session.Chat)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketChats)
		var chat session.Chat
		if err := getJSON(b, id, &chat, &session.NotFoundError{Kind: "chat", ID: id}); err != nil {
			return err
		}
		mutate(&chat)
		return putJSON(b, id, &chat)
	})
}

func (s *implStore) DeleteChat(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketChats)
		if b.Get([]byte(id)) == nil {
			return &session.NotFoundError{Kind: "chat", ID: id}
		}
		return b.Delete([]byte(id))
	})
}

func findChat(tx *bolt.Tx, sessionID, name string) *session.Chat {
	var found *session.Chat
	_ = tx.Bucket(bucketChats).ForEach(func(k, v []byte) error {
		var chat session.Chat
		if err := json.Unmarshal(v, &chat); err != nil {
			return nil
		}
		if chat.SessionID == sessionID && chat.Name == name {
			found = &chat
		}
		return nil
	})
	return found
}

func putJSON(b *bolt.Bucket, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), data)
}

func getJSON(b *bolt.Bucket, key string, v interface{}, notFound error) error {
	data := b.Get([]byte(key))
	if data == nil {
		return notFound
	}
	return json.Unmarshal(data, v)
}
