package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/interviewkit/interview-flow/internal/logger"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestWatcher(t *testing.T, intake, archived string, handler PairHandler) *implWatcher {
	t.Helper()
	return &implWatcher{
		intakeDir:   intake,
		archivedDir: archived,
		handler:     handler,
		logger:      logger.New("error"),
		semaphore:   make(chan struct{}, 2),
		inFlight:    make(map[string]bool),
	}
}

func TestMatchPair(t *testing.T) {
	intake := t.TempDir()
	w := newTestWatcher(t, intake, t.TempDir(), nil)

	docx := filepath.Join(intake, "interview.docx")
	writeFile(t, docx)

	if _, _, ok := w.matchPair(docx); ok {
		t.Error("pair matched with only the transcript present")
	}

	recording := filepath.Join(intake, "interview.MP4")
	writeFile(t, recording)
	writeFile(t, filepath.Join(intake, "unrelated.txt"))

	transcript, rec, ok := w.matchPair(docx)
	if !ok {
		t.Fatal("pair not matched with both halves present")
	}
	if transcript != docx || rec != recording {
		t.Errorf("matched (%q, %q), want (%q, %q)", transcript, rec, docx, recording)
	}
}

func TestScanExistingDispatchesAndArchives(t *testing.T) {
	intake := t.TempDir()
	archived := filepath.Join(t.TempDir(), "archived")

	var mu sync.Mutex
	var handled [][2]string
	handler := func(ctx context.Context, transcript, recording string) error {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, [2]string{transcript, recording})
		return nil
	}

	writeFile(t, filepath.Join(intake, "interview.docx"))
	writeFile(t, filepath.Join(intake, "interview.mp4"))

	w := newTestWatcher(t, intake, archived, handler)
	w.scanExisting(context.Background())
	w.wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 {
		t.Fatalf("handler ran %d times, want 1", len(handled))
	}
	for _, name := range []string{"interview.docx", "interview.mp4"} {
		if _, err := os.Stat(filepath.Join(archived, name)); err != nil {
			t.Errorf("%s not archived: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(intake, name)); !os.IsNotExist(err) {
			t.Errorf("%s still in intake", name)
		}
	}
}

func TestFailedPairStaysInIntake(t *testing.T) {
	intake := t.TempDir()
	archived := filepath.Join(t.TempDir(), "archived")

	handler := func(ctx context.Context, transcript, recording string) error {
		return fmt.Errorf("transcription failed")
	}

	writeFile(t, filepath.Join(intake, "interview.docx"))
	writeFile(t, filepath.Join(intake, "interview.mp4"))

	w := newTestWatcher(t, intake, archived, handler)
	w.scanExisting(context.Background())
	w.wg.Wait()

	for _, name := range []string{"interview.docx", "interview.mp4"} {
		if _, err := os.Stat(filepath.Join(intake, name)); err != nil {
			t.Errorf("%s removed from intake after failure", name)
		}
	}
}

func TestPairDispatchedOnce(t *testing.T) {
	intake := t.TempDir()

	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	handler := func(ctx context.Context, transcript, recording string) error {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return nil
	}

	docx := filepath.Join(intake, "interview.docx")
	writeFile(t, docx)
	writeFile(t, filepath.Join(intake, "interview.mp4"))

	w := newTestWatcher(t, intake, t.TempDir(), handler)
	ctx := context.Background()
	w.tryDispatch(ctx, docx)
	w.tryDispatch(ctx, docx)
	close(release)
	w.wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("handler ran %d times for one pair, want 1", calls)
	}
}
