package aligner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/interviewkit/interview-flow/internal/logger"
	"github.com/interviewkit/interview-flow/internal/session"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(ctx context.Context, messages []session.Message) (string, error) {
	f.prompts = append(f.prompts, messages[len(messages)-1].Content)
	return f.response, f.err
}

func (f *fakeLLM) CompleteStream(ctx context.Context, messages []session.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {}
}

func TestAlignSendsBothTranscripts(t *testing.T) {
	client := &fakeLLM{response: "Interviewee: Jane Doe\nInterview Date: N/A\nDuration: N/A\n\n[Jane Doe 00:00:05]:\nIt began in March."}
	a := New(client, logger.New("error"))

	reference := "Jane Doe 00:00:05\nIt began in March"
	machine := "[00:00:04 - 00:00:08] It began in March."

	got, err := a.Align(context.Background(), reference, machine)
	if err != nil {
		t.Fatalf("Align() error = %v", err)
	}
	if got != client.response {
		t.Errorf("Align() = %q, want model output unchanged", got)
	}

	if len(client.prompts) != 1 {
		t.Fatalf("Complete called %d times, want 1", len(client.prompts))
	}
	prompt := client.prompts[0]
	for _, fragment := range []string{reference, machine, "Never invent timestamps", `write "N/A"`} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}

func TestAlignPropagatesFailure(t *testing.T) {
	client := &fakeLLM{err: fmt.Errorf("model unavailable")}
	a := New(client, logger.New("error"))

	_, err := a.Align(context.Background(), "ref", "machine")
	var serviceErr *session.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("Align() error = %v, want ServiceError", err)
	}
	if serviceErr.Stage != "align" {
		t.Errorf("Stage = %q, want %q", serviceErr.Stage, "align")
	}
}
