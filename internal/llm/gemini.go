package llm

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	"github.com/interviewkit/interview-flow/internal/session"
)

// Complete sends the messages and returns the full response text.
// Rotates API keys on 429 / quota errors.
func (c *implClient) Complete(ctx context.Context, messages []session.Message) (string, error) {
	contents, cfg := convertMessages(messages)

	attempts := len(c.apiKeys)
	var lastErr error

	for range attempts {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.key(),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, c.model, contents, cfg)
		if err != nil {
			if isQuotaError(err) {
				c.logger.Warn(ctx, "Gemini key rate limited, rotating...")
				c.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		text := responseText(result)
		if text == "" {
			return "", fmt.Errorf("empty response from Gemini")
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// CompleteStream yields response deltas as the model produces them. The key
// in use when the stream opens is kept for its whole lifetime; a quota error
// mid-stream rotates the key for subsequent calls but fails this one.
func (c *implClient) CompleteStream(ctx context.Context, messages []session.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		contents, cfg := convertMessages(messages)

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.key(),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			yield("", fmt.Errorf("create client: %w", err))
			return
		}

		for resp, err := range client.Models.GenerateContentStream(ctx, c.model, contents, cfg) {
			if err != nil {
				if isQuotaError(err) {
					c.rotateKey()
				}
				yield("", fmt.Errorf("stream content: %w", err))
				return
			}

			delta := responseText(resp)
			if delta == "" {
				// Empty fragments are valid keep-alives, not termination.
				continue
			}
			if !yield(delta, nil) {
				return
			}
		}
	}
}

func (c *implClient) key() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKeys[c.currentKey]
}

func (c *implClient) rotateKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}

// convertMessages maps chat history onto the Gemini request shape: system
// messages are folded into the system instruction, user turns stay user
// turns, assistant turns become model turns. The API rejects a request with
// no contents, so a history of only system messages is sent as a single
// user content instead of an instruction over nothing.
func convertMessages(messages []session.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	var systemParts []string
	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case session.RoleSystem:
			systemParts = append(systemParts, m.Content)
		case session.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	if len(contents) == 0 {
		return []*genai.Content{
			genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser),
		}, nil
	}

	var cfg *genai.GenerateContentConfig
	if len(systemParts) > 0 {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser),
		}
	}
	return contents, cfg
}

func responseText(resp *genai.GenerateContentResponse) string {
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
