package watcher

import "context"

// Watcher monitors the intake directory for transcript/recording pairs and
// dispatches each completed pair exactly once.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// PairHandler processes one matched transcript/recording pair.
type PairHandler func(ctx context.Context, transcriptPath, recordingPath string) error
