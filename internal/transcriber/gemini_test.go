package transcriber

import (
	"sync"
	"testing"

	"github.com/interviewkit/interview-flow/internal/logger"
)

func TestTranscriberRotateKey(t *testing.T) {
	tr := NewGemini([]string{"a", "b", "c"}, "model", logger.New("error")).(*implTranscriber)

	if tr.key() != "a" {
		t.Errorf("initial key = %q, want a", tr.key())
	}
	tr.rotateKey()
	if tr.key() != "b" {
		t.Errorf("key after rotate = %q, want b", tr.key())
	}
	tr.rotateKey()
	tr.rotateKey()
	if tr.key() != "a" {
		t.Errorf("key after wrap = %q, want a", tr.key())
	}
}

// Concurrent summarize runs share one transcriber; rotation and key reads
// from separate goroutines must not race (run with -race).
func TestTranscriberRotateKeyConcurrent(t *testing.T) {
	keys := []string{"a", "b", "c"}
	tr := NewGemini(keys, "model", logger.New("error")).(*implTranscriber)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				tr.rotateKey()
				_ = tr.key()
			}
		}()
	}
	wg.Wait()

	got := tr.key()
	valid := false
	for _, k := range keys {
		if got == k {
			valid = true
		}
	}
	if !valid {
		t.Errorf("key after concurrent rotation = %q, not in the configured set", got)
	}
}
