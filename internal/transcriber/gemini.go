package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"google.golang.org/genai"
)

const transcribePrompt = `Transcribe the attached interview recording.

Return ONLY a JSON array of segments, no markdown fences, no commentary.
Each segment must have this exact shape:
  {"start": <seconds from recording start>, "end": <seconds>, "text": "<spoken text>"}

Rules:
- Segments must be in chronological order and must not overlap.
- Keep segments short, roughly one sentence or speaker breath each.
- Transcribe verbatim; do not summarize or clean up grammar.`

// Transcribe uploads the audio file and asks Gemini for timestamped
// segments. Rotates API keys on 429 / quota errors.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	attempts := len(t.apiKeys)
	var lastErr error

	for range attempts {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  t.key(),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			t.rotateKey()
			continue
		}

		file, err := client.Files.UploadFromPath(ctx, audioPath, &genai.UploadFileConfig{
			MIMEType: mimeForExt(audioPath),
		})
		if err != nil {
			if isQuotaError(err) {
				t.logger.Warn(ctx, "Gemini key rate limited during upload, rotating...")
				t.rotateKey()
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("upload audio: %w", err)
		}

		contents := []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromURI(file.URI, file.MIMEType),
				genai.NewPartFromText(transcribePrompt),
			}, genai.RoleUser),
		}

		result, err := client.Models.GenerateContent(ctx, t.model, contents, nil)
		if err != nil {
			if isQuotaError(err) {
				t.logger.Warn(ctx, "Gemini key rate limited, rotating...")
				t.rotateKey()
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("generate transcription: %w", err)
		}

		text := candidateText(result)
		if text == "" {
			return nil, fmt.Errorf("empty transcription response")
		}
		return parseSegments(text)
	}

	return nil, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// key and rotateKey guard the rotation index: one transcriber instance is
// shared by concurrent summarize runs.
func (t *implTranscriber) key() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apiKeys[t.currentKey]
}

func (t *implTranscriber) rotateKey() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentKey = (t.currentKey + 1) % len(t.apiKeys)
}

// parseSegments decodes the model's JSON segment list, tolerating the model
// wrapping its answer in a markdown fence despite instructions.
func parseSegments(text string) ([]Segment, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var segments []Segment
	if err := json.Unmarshal([]byte(text), &segments); err != nil {
		return nil, fmt.Errorf("parse segments: %w", err)
	}
	return segments, nil
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func mimeForExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".avi":
		return "video/x-msvideo"
	case ".flv":
		return "video/x-flv"
	default:
		return "application/octet-stream"
	}
}
