package llm

import (
	"context"
	"iter"

	"github.com/interviewkit/interview-flow/internal/session"
)

// Client is the narrow language-model contract the engines depend on.
//
// CompleteStream yields incremental text deltas in generation order. Empty
// fragments are filtered out before they reach the caller; they never signal
// termination. The returned sequence may be consumed at most once.
type Client interface {
	Complete(ctx context.Context, messages []session.Message) (string, error)
	CompleteStream(ctx context.Context, messages []session.Message) iter.Seq2[string, error]
}
