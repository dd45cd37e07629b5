package pipeline

import (
	"context"
	"iter"
)

// Pipeline drives the full summarize flow: document extraction,
// transcription, alignment, and the streamed narrative summary. The
// returned sequence yields summary deltas in generation order, may be
// consumed at most once, and ends with a single SESSION_META fragment once
// the new session has been committed.
type Pipeline interface {
	Summarize(ctx context.Context, transcriptPath, recordingPath string, supplementary []string) iter.Seq2[string, error]
}
