package revision

import (
	"context"
	"iter"

	"github.com/interviewkit/interview-flow/internal/session"
)

// Reviser rewrites a session's summary from a free-form change request. The
// returned sequence yields the replacement summary as deltas and may be
// consumed at most once. The rewritten text fully replaces the prior
// summary; a consumer that stops early keeps the portion produced so far,
// while a mid-stream failure restores the prior summary untouched.
type Reviser interface {
	Revise(ctx context.Context, sess *session.Session, request string) iter.Seq2[string, error]
}
