package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/interviewkit/interview-flow/internal/logger"
)

// New creates a Watcher over intakeDir. Completed pairs are handed to
// handler with at most maxConcurrent running at once; inputs of a pair that
// was handled successfully are moved into archivedDir.
func New(intakeDir, archivedDir string, handler PairHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(intakeDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		intakeDir:   intakeDir,
		archivedDir: archivedDir,
		handler:     handler,
		logger:      log,
		watcher:     fsw,
		semaphore:   make(chan struct{}, maxConcurrent),
		inFlight:    make(map[string]bool),
	}, nil
}
