package chat

import (
	"context"
	"iter"
	"slices"

	"github.com/interviewkit/interview-flow/internal/session"
)

// Ask appends the user's prompt to the chat, streams the assistant's reply,
// and commits the updated history exactly once when the sequence terminates,
// whatever the reason. A turn cut short by the consumer or by a mid-stream
// failure keeps the text produced so far.
func (e *implEngine) Ask(ctx context.Context, ch *session.Chat, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ch.Append(session.RoleUser, prompt)

		// The history handed to the model is fixed at the start of the
		// turn; deltas appended below must not leak into the request.
		history := slices.Clone(ch.Messages)

		committed := false
		commit := func() {
			if committed {
				return
			}
			committed = true
			if err := e.store.UpdateChatMessages(ch.ID, ch.Messages); err != nil {
				e.logger.Error(ctx, "Failed to persist chat %s: %v", ch.ID, err)
			}
		}
		defer commit()

		for delta, err := range e.llm.CompleteStream(ctx, history) {
			if err != nil {
				commit()
				yield("", &session.ServiceError{Stage: "chat", Err: err})
				return
			}
			ch.AppendDelta(session.RoleAssistant, delta)
			if !yield(delta, nil) {
				e.logger.Warn(ctx, "Chat stream for %s abandoned by consumer; partial turn kept", ch.ID)
				return
			}
		}
	}
}
