package chat

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"testing"

	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/internal/session"
	"github.com/interviewkit/interview-flow/internal/store"
)

type fakeLLM struct {
	deltas    []string
	streamErr error
	requests  [][]session.Message
}

func (f *fakeLLM) Complete(ctx context.Context, messages []session.Message) (string, error) {
	return "", fmt.Errorf("not used")
}

func (f *fakeLLM) CompleteStream(ctx context.Context, messages []session.Message) iter.Seq2[string, error] {
	f.requests = append(f.requests, messages)
	return func(yield func(string, error) bool) {
		for _, d := range f.deltas {
			if !yield(d, nil) {
				return
			}
		}
		if f.streamErr != nil {
			yield("", f.streamErr)
		}
	}
}

func newTestEngine(t *testing.T, client *fakeLLM) (Engine, store.Store, *session.Chat) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "chat.bolt"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	sess := &session.Session{ID: session.NewID(), Name: "Jane Doe", Transcript: "aligned"}
	ch, err := st.CreateSession(sess, []session.Message{
		{Role: session.RoleSystem, Content: "You are an assistant."},
		{Role: session.RoleAssistant, Content: "Welcome."},
	})
	if err != nil {
		t.Fatal(err)
	}

	return New(client, st, logger.New("error")), st, ch
}

func TestAskStreamsAndCommits(t *testing.T) {
	client := &fakeLLM{deltas: []string{"The events ", "began in March."}}
	eng, st, ch := newTestEngine(t, client)

	var got string
	for delta, err := range eng.Ask(context.Background(), ch, "When did it start?") {
		if err != nil {
			t.Fatalf("Ask() error = %v", err)
		}
		got += delta
	}
	if got != "The events began in March." {
		t.Errorf("streamed reply = %q", got)
	}

	stored, err := st.GetChat(ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	n := len(stored.Messages)
	if n != 4 {
		t.Fatalf("stored history has %d messages, want 4", n)
	}
	if stored.Messages[n-2].Role != session.RoleUser || stored.Messages[n-2].Content != "When did it start?" {
		t.Error("user prompt not recorded before the reply")
	}
	last := stored.Messages[n-1]
	if last.Role != session.RoleAssistant || last.Content != "The events began in March." {
		t.Errorf("assistant turn = %+v, want single concatenated message", last)
	}
}

func TestAskRequestExcludesOwnReply(t *testing.T) {
	client := &fakeLLM{deltas: []string{"a", "b"}}
	eng, _, ch := newTestEngine(t, client)

	for _, err := range eng.Ask(context.Background(), ch, "question") {
		if err != nil {
			t.Fatal(err)
		}
	}

	if len(client.requests) != 1 {
		t.Fatalf("got %d model requests, want 1", len(client.requests))
	}
	req := client.requests[0]
	last := req[len(req)-1]
	if last.Role != session.RoleUser || last.Content != "question" {
		t.Errorf("request ends with %+v, want the user prompt", last)
	}
}

func TestAskAbandonedKeepsPartialTurn(t *testing.T) {
	client := &fakeLLM{deltas: []string{"first ", "second ", "third"}}
	eng, st, ch := newTestEngine(t, client)

	for range eng.Ask(context.Background(), ch, "question") {
		break
	}

	stored, err := st.GetChat(ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	last := stored.Messages[len(stored.Messages)-1]
	if last.Role != session.RoleAssistant || last.Content != "first " {
		t.Errorf("partial turn = %+v, want only the consumed delta", last)
	}
}

func TestAskStreamFailureKeepsPartialTurn(t *testing.T) {
	client := &fakeLLM{deltas: []string{"partial "}, streamErr: fmt.Errorf("connection reset")}
	eng, st, ch := newTestEngine(t, client)

	var turnErr error
	for _, err := range eng.Ask(context.Background(), ch, "question") {
		if err != nil {
			turnErr = err
		}
	}

	var serviceErr *session.ServiceError
	if !errors.As(turnErr, &serviceErr) {
		t.Fatalf("error = %v, want ServiceError", turnErr)
	}
	if serviceErr.Stage != "chat" {
		t.Errorf("Stage = %q, want chat", serviceErr.Stage)
	}

	stored, err := st.GetChat(ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	last := stored.Messages[len(stored.Messages)-1]
	if last.Role != session.RoleAssistant || last.Content != "partial " {
		t.Errorf("partial turn = %+v, want the text produced before the failure", last)
	}
}
