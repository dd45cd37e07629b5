package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/internal/pipeline"
)

// settleDelay gives the OS time to finish writing a file dropped into the
// intake directory before the pair is dispatched.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	intakeDir   string
	archivedDir string
	handler     PairHandler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	semaphore   chan struct{}
	wg          sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
}

// Start watches the intake directory until the context is cancelled. A pair
// is a transcript and a recording sharing the same base name; it is
// dispatched when its second half appears. Pairs already sitting in the
// directory at startup are dispatched immediately.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Intake watcher started (max concurrent: %d). Monitoring: %s", cap(w.semaphore), w.intakeDir)

	w.scanExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight intake pairs to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "Intake watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			time.Sleep(settleDelay)
			w.tryDispatch(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) scanExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.intakeDir)
	if err != nil {
		w.logger.Error(ctx, "Failed to scan intake directory: %v", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.tryDispatch(ctx, filepath.Join(w.intakeDir, entry.Name()))
	}
}

// tryDispatch checks whether path completes a transcript/recording pair and,
// if it does, hands the pair to the handler on its own goroutine.
func (w *implWatcher) tryDispatch(ctx context.Context, path string) {
	transcript, recording, ok := w.matchPair(path)
	if !ok {
		w.logger.Debug(ctx, "No pair yet for %s", filepath.Base(path))
		return
	}

	stem := pairStem(transcript)
	w.mu.Lock()
	if w.inFlight[stem] {
		w.mu.Unlock()
		return
	}
	w.inFlight[stem] = true
	w.mu.Unlock()

	w.logger.Info(ctx, "Intake pair ready: %s", filepath.Base(stem))

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()
		defer func() {
			w.mu.Lock()
			delete(w.inFlight, stem)
			w.mu.Unlock()
		}()

		if err := w.handler(ctx, transcript, recording); err != nil {
			w.logger.Error(ctx, "Failed to process pair %s: %v", filepath.Base(stem), err)
			return
		}
		w.archive(ctx, transcript, recording)
	}()
}

// matchPair resolves the transcript and recording for the pair path belongs
// to, returning false until both halves exist on disk.
func (w *implWatcher) matchPair(path string) (transcript, recording string, ok bool) {
	stem := pairStem(path)

	entries, err := os.ReadDir(w.intakeDir)
	if err != nil {
		return "", "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		candidate := filepath.Join(w.intakeDir, entry.Name())
		if pairStem(candidate) != stem {
			continue
		}
		if strings.EqualFold(filepath.Ext(candidate), ".docx") {
			transcript = candidate
		} else if pipeline.ValidateInputs("x.docx", candidate) == nil {
			recording = candidate
		}
	}
	return transcript, recording, transcript != "" && recording != ""
}

func (w *implWatcher) archive(ctx context.Context, paths ...string) {
	if err := os.MkdirAll(w.archivedDir, 0o755); err != nil {
		w.logger.Error(ctx, "Failed to create archive directory: %v", err)
		return
	}
	for _, p := range paths {
		dest := filepath.Join(w.archivedDir, filepath.Base(p))
		if err := os.Rename(p, dest); err != nil {
			w.logger.Warn(ctx, "Failed to archive %s: %v", filepath.Base(p), err)
		}
	}
}

func pairStem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
