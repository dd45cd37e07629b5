package chat

import (
	"context"
	"iter"

	"github.com/interviewkit/interview-flow/internal/session"
)

// Engine runs one conversational turn against a chat's accumulated history.
// The returned sequence yields assistant deltas in generation order and may
// be consumed at most once. Whatever portion of the turn was produced by the
// time the sequence terminates is committed to the store, including when the
// consumer stops early.
type Engine interface {
	Ask(ctx context.Context, ch *session.Chat, prompt string) iter.Seq2[string, error]
}
