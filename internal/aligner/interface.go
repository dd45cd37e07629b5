package aligner

import "context"

// Aligner merges a reference transcript (reliable structure and speaker
// turns) with a machine transcription (higher text quality) into a single
// annotated transcript.
type Aligner interface {
	Align(ctx context.Context, reference, machine string) (string, error)
}
