package transcriber

import "context"

// Segment is one timestamped portion of transcribed audio, times in seconds
// relative to the start of the transcribed file.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcriber is a pluggable transcription backend. Implementations are
// subject to the payload limit enforced by Service, not by themselves.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
}

// Service turns a full-length recording into a formatted machine transcript,
// chunking oversized files before handing them to the backend.
type Service interface {
	TranscribeRecording(ctx context.Context, recordingPath string) (string, error)
}
