package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"mediaresolve/internal/upstream"
)

// maxTitles caps how many batch titles are included in one classification
// request; past this point additional titles add cost without adding signal.
const maxTitles = 15

// Config captures the runtime settings required to talk to the classifier.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps the chat-completion classification service.
type Client struct {
	cfg    Config
	openai *openai.Client
}

// NewClient constructs a classification client. Returns nil when no API key
// is configured; callers treat a nil client as "classification unavailable".
func NewClient(cfg Config) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil
	}
	timeout := 20 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = strings.TrimRight(base, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		cfg:    cfg,
		openai: openai.NewClientWithConfig(clientCfg),
	}
}

// ClassifyCollection asks the service to describe the shared characteristics
// of the supplied titles. Transport failures are tagged ErrUnavailable and
// undecodable payloads ErrMalformed so the caller can fall back either way.
func (c *Client) ClassifyCollection(ctx context.Context, titles []string) (Collection, error) {
	var empty Collection
	if c == nil {
		return empty, upstream.Wrap(upstream.ErrUnavailable, "classifier not configured", nil)
	}

	trimmed := make([]string, 0, maxTitles)
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		trimmed = append(trimmed, title)
		if len(trimmed) == maxTitles {
			break
		}
	}
	if len(trimmed) == 0 {
		return empty, errors.New("classify: no titles supplied")
	}

	resp, err := c.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: collectionPrompt},
			{Role: openai.ChatMessageRoleUser, Content: strings.Join(trimmed, "\n")},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return empty, upstream.Wrap(upstream.ErrUnavailable, "classifier request", err)
	}
	if len(resp.Choices) == 0 {
		return empty, upstream.Wrap(upstream.ErrMalformed, "classifier returned no choices", nil)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var parsed Collection
	if err := decodeJSONPayload(content, &parsed); err != nil {
		return empty, upstream.Wrap(upstream.ErrMalformed, "parse classifier payload", err)
	}

	parsed.MediaType = strings.ToLower(strings.TrimSpace(parsed.MediaType))
	parsed.Language = strings.TrimSpace(parsed.Language)
	parsed.Region = strings.TrimSpace(parsed.Region)
	parsed.Genre = strings.TrimSpace(parsed.Genre)
	parsed.Description = strings.TrimSpace(parsed.Description)
	if parsed.Confidence <= 0 {
		parsed.Confidence = 0.7
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return parsed, nil
}

// decodeJSONPayload unmarshals model output, tolerating code fences around
// the JSON object. Some providers wrap JSON even when json_object is
// requested.
func decodeJSONPayload(content string, target any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errors.New("empty payload")
	}
	if err := json.Unmarshal([]byte(trimmed), target); err == nil {
		return nil
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	return json.Unmarshal([]byte(trimmed), target)
}
