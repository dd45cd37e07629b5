package revision

import (
	"context"
	"iter"

	"github.com/interviewkit/interview-flow/internal/pipeline"
	"github.com/interviewkit/interview-flow/internal/session"
)

const revisionInstruction = `When revising the summary, follow these rules:
- Preserve the "# Interview with [Interviewee's Name]" title in heading level 1 format unless the revision explicitly asks to change it.
- Keep the summary organized into sections with heading level 2 labels.
- Keep the summary in markdown format.
- Maintain factual accuracy; never introduce details that are not supported by the transcript.
- Apply only the requested change and leave the rest of the summary intact.
- Only generate the revised summary; avoid any unnecessary leading or trailing sentences.`

// Revise streams a full replacement for the session's summary. The model
// context is rebuilt from the transcript and the most recent summary rather
// than from any chat history, so the same request always sees the same
// state. The prior summary is restored if the stream fails before draining.
func (r *implReviser) Revise(ctx context.Context, sess *session.Session, request string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		prior := sess.Summary
		messages := []session.Message{
			{Role: session.RoleSystem, Content: pipeline.SystemPrompt},
			{Role: session.RoleSystem, Content: "Transcript: " + sess.Transcript},
			{Role: session.RoleSystem, Content: "Most Recent Summary: " + prior},
			{Role: session.RoleSystem, Content: revisionInstruction},
			{Role: session.RoleUser, Content: "Can you make these revisions to the summary: " + request},
		}

		sess.Summary = ""
		committed := false
		commit := func() {
			if committed {
				return
			}
			committed = true
			if err := r.store.UpdateSummary(sess.ID, sess.Summary); err != nil {
				r.logger.Error(ctx, "Failed to persist revised summary for %s: %v", sess.ID, err)
			}
		}

		for delta, err := range r.llm.CompleteStream(ctx, messages) {
			if err != nil {
				sess.Summary = prior
				yield("", &session.ServiceError{Stage: "revise", Err: err})
				return
			}
			sess.Summary += delta
			if !yield(delta, nil) {
				r.logger.Warn(ctx, "Revision stream for %s abandoned by consumer; partial summary kept", sess.ID)
				commit()
				return
			}
		}
		commit()
	}
}
