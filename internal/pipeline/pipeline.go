package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"path/filepath"
	"strings"
	"time"

	"github.com/interviewkit/interview-flow/internal/session"
)

// supportedRecordingExts are the media containers the transcription side
// accepts. Checked before any external call is made.
var supportedRecordingExts = map[string]bool{
	".mp4": true, ".mov": true, ".m4a": true, ".m4v": true,
	".mp3": true, ".wav": true, ".webm": true, ".mkv": true,
	".avi": true, ".flv": true,
}

// ValidateInputs rejects wrong-typed uploads before any stage runs.
func ValidateInputs(transcriptPath, recordingPath string) error {
	if strings.ToLower(filepath.Ext(transcriptPath)) != ".docx" {
		return &session.InputError{Field: "transcript", Reason: "must be a .docx file"}
	}
	if !supportedRecordingExts[strings.ToLower(filepath.Ext(recordingPath))] {
		return &session.InputError{Field: "recording", Reason: "unsupported media container"}
	}
	return nil
}

// sessionMeta is the trailing out-of-band fragment carrying server-assigned
// identifiers back to the caller after all state is committed.
type sessionMeta struct {
	ID       string            `json:"id"`
	ChatID   string            `json:"chat_id"`
	Name     string            `json:"name"`
	Messages []session.Message `json:"messages"`
}

// MetaPrefix marks the single out-of-band fragment appended after the
// summary stream and all persistence side effects complete.
const MetaPrefix = "SESSION_META::"

// Summarize runs the staged flow. Stages are strictly sequential: extract,
// transcribe, align, supplementary context, streamed summary, then title and
// greeting. The session and its default chat are persisted only after the
// summary stream drained successfully; a failure at any stage leaves nothing
// behind.
func (p *implPipeline) Summarize(ctx context.Context, transcriptPath, recordingPath string, supplementary []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		start := time.Now()

		if err := ValidateInputs(transcriptPath, recordingPath); err != nil {
			yield("", err)
			return
		}

		p.logger.Info(ctx, "Parsing transcript: %s", filepath.Base(transcriptPath))
		reference, err := p.extractor.Text(transcriptPath)
		if err != nil {
			yield("", &session.ServiceError{Stage: "extract", Err: err})
			return
		}

		p.logger.Info(ctx, "Transcribing recording: %s", filepath.Base(recordingPath))
		machine, err := p.recorder.TranscribeRecording(ctx, recordingPath)
		if err != nil {
			yield("", &session.ServiceError{Stage: "transcribe", Err: err})
			return
		}

		aligned, err := p.aligner.Align(ctx, reference, machine)
		if err != nil {
			yield("", err)
			return
		}

		extraContext := p.extractor.Supplementary(ctx, supplementary)
		if extraContext == "" {
			extraContext = "None provided."
		}

		sess := &session.Session{
			ID:         session.NewID(),
			Name:       "Untitled",
			Transcript: aligned,
		}
		messages := []session.Message{
			{Role: session.RoleSystem, Content: SystemPrompt},
			{Role: session.RoleSystem, Content: "Transcript: " + aligned},
		}

		p.logger.Info(ctx, "Generating summary...")
		var summary strings.Builder
		prompt := []session.Message{
			{Role: session.RoleUser, Content: fmt.Sprintf(summaryPrompt, aligned, extraContext)},
		}
		for delta, err := range p.llm.CompleteStream(ctx, prompt) {
			if err != nil {
				yield("", &session.ServiceError{Stage: "summarize", Err: err})
				return
			}
			summary.WriteString(delta)
			if !yield(delta, nil) {
				// Consumer stopped before the stream drained. An initial
				// summarize only persists on completion, so nothing is
				// committed here.
				p.logger.Warn(ctx, "Summary stream abandoned by consumer; session not created")
				return
			}
		}
		sess.Summary = summary.String()

		name, err := p.generateTitle(ctx, sess.Summary)
		if err != nil {
			yield("", &session.ServiceError{Stage: "summarize", Err: err})
			return
		}
		sess.Name = name

		greeting, err := p.llm.Complete(ctx, []session.Message{
			{Role: session.RoleUser, Content: greetingPrompt},
		})
		if err != nil {
			yield("", &session.ServiceError{Stage: "summarize", Err: err})
			return
		}

		messages = append(messages,
			session.Message{Role: session.RoleSystem, Content: "Initial Summary: " + sess.Summary},
			session.Message{Role: session.RoleAssistant, Content: greeting},
		)

		chat, err := p.store.CreateSession(sess, messages)
		if err != nil {
			yield("", fmt.Errorf("persist session: %w", err))
			return
		}

		p.logger.Info(ctx, "Session %s created in %s", sess.ID, time.Since(start).Round(time.Second))

		meta, err := json.Marshal(sessionMeta{
			ID:       sess.ID,
			ChatID:   chat.ID,
			Name:     sess.Name,
			Messages: chat.Messages,
		})
		if err != nil {
			yield("", fmt.Errorf("encode session meta: %w", err))
			return
		}
		yield(MetaPrefix+string(meta), nil)
	}
}

// generateTitle derives the session label from the finished summary,
// preferring the interviewee's name. The docket convention, when enabled,
// produces "<docket>: <name>" with UNKNOWN placeholders.
func (p *implPipeline) generateTitle(ctx context.Context, summary string) (string, error) {
	prompt := titlePrompt
	if p.cfg.Summary.DocketTitles {
		prompt = titleDocketPrompt
	}

	title, err := p.llm.Complete(ctx, []session.Message{
		{Role: session.RoleUser, Content: fmt.Sprintf(prompt, summary)},
	})
	if err != nil {
		return "", fmt.Errorf("generate title: %w", err)
	}

	title = strings.TrimSpace(title)
	title = strings.Trim(title, `"`)
	if title == "" {
		title = "Untitled"
	}
	return title, nil
}
