// Package remote implements the hosted-model sentiment backend on top
// of an OpenAI-compatible chat completion endpoint.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/opinelab/opine/pkg/opine/internalerr"
	"github.com/opinelab/opine/pkg/opine/sentiment"
)

// DefaultTimeout bounds a single classification call. The remote call
// is the only blocking operation in the pipeline; a timeout is a
// recoverable failure, not a fatal one.
const DefaultTimeout = 15 * time.Second

const systemPrompt = `You classify product feedback sentiment.
Reply with ONLY a JSON object: {"label":"positive|neutral|negative","score":<confidence 0..1>,"polarity":<-1..1>}`

// chatClient is the slice of the OpenAI client we use; factored out so
// tests can stub the transport.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds the remote backend settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Classifier calls a hosted model to label feedback. Failures surface
// as ErrNetwork so callers can fall back to the local backend.
type Classifier struct {
	client  chatClient
	model   string
	timeout time.Duration
}

// New creates a remote classifier. An empty API key or model is a
// configuration error: the caller asked for the remote backend but
// cannot reach it.
func New(cfg Config) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: remote backend requires an API key", internalerr.ErrConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: remote backend requires a model name", internalerr.ErrConfig)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Classifier{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

// Name implements sentiment.Classifier.
func (c *Classifier) Name() string { return "remote" }

// Classify implements sentiment.Classifier.
func (c *Classifier) Classify(ctx context.Context, text string) (sentiment.Result, error) {
	if strings.TrimSpace(text) == "" {
		// No point in a network round trip for empty input.
		return sentiment.Result{Label: sentiment.Neutral, Score: 0, Backend: c.Name()}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		return sentiment.Result{}, fmt.Errorf("%w: %v", internalerr.ErrNetwork, err)
	}
	if len(resp.Choices) == 0 {
		return sentiment.Result{}, fmt.Errorf("%w: empty completion", internalerr.ErrNetwork)
	}

	return parseReply(resp.Choices[0].Message.Content, c.Name())
}

type replyJSON struct {
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
	Polarity float64 `json:"polarity"`
}

// parseReply decodes the model's JSON verdict. Models occasionally wrap
// JSON in code fences; strip those before decoding.
func parseReply(content, backend string) (sentiment.Result, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var reply replyJSON
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &reply); err != nil {
		return sentiment.Result{}, fmt.Errorf("%w: malformed completion: %v", internalerr.ErrNetwork, err)
	}

	var label sentiment.Label
	switch strings.ToLower(reply.Label) {
	case "positive":
		label = sentiment.Positive
	case "negative":
		label = sentiment.Negative
	case "neutral":
		label = sentiment.Neutral
	default:
		return sentiment.Result{}, fmt.Errorf("%w: unknown label %q", internalerr.ErrNetwork, reply.Label)
	}

	if reply.Score < 0 {
		reply.Score = 0
	}
	if reply.Score > 1 {
		reply.Score = 1
	}
	if reply.Polarity < -1 {
		reply.Polarity = -1
	}
	if reply.Polarity > 1 {
		reply.Polarity = 1
	}

	return sentiment.Result{
		Label:    label,
		Score:    reply.Score,
		Polarity: reply.Polarity,
		Backend:  backend,
	}, nil
}
