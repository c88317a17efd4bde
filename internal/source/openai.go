package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/chaz8081/padfeed/internal/clock"
)

// DefaultPrompt asks for one short joke with no preamble.
const DefaultPrompt = "Tell me one short, funny joke. Reply with the joke only, nothing else."

// Config holds chat-completion endpoint settings.
type Config struct {
	BaseURL     string // OpenAI-compatible API root, e.g. https://api.siliconflow.cn/v1
	APIKey      string
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration // whole-request bound, including reading the body
}

// DefaultConfig returns the endpoint defaults; APIKey is left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.siliconflow.cn/v1",
		Model:       "deepseek-ai/DeepSeek-V3",
		Prompt:      DefaultPrompt,
		Temperature: 0.7,
		MaxTokens:   150,
		Timeout:     30 * time.Second,
	}
}

// OpenAI fetches content from an OpenAI-compatible chat-completion API.
type OpenAI struct {
	client *openai.Client
	config Config
	clock  clock.Clock
}

var _ Source = (*OpenAI)(nil)

// NewOpenAI creates a chat-completion source. A zero Timeout falls back to
// the default so a stalled endpoint cannot block the polling loop forever.
func NewOpenAI(cfg Config, clk clock.Clock) *OpenAI {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAI{
		client: openai.NewClientWithConfig(oc),
		config: cfg,
		clock:  clk,
	}
}

// Fetch requests one completion and returns its trimmed text.
func (o *OpenAI) Fetch(ctx context.Context) (ContentItem, error) {
	requestedAt := o.clock.Now()
	if o.config.APIKey == "" {
		return ContentItem{}, ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	slog.Debug("[SOURCE] requesting completion", "model", o.config.Model)
	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: o.config.Prompt,
			},
		},
		Temperature: o.config.Temperature,
		MaxTokens:   o.config.MaxTokens,
	})
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		return ContentItem{}, fmt.Errorf("%w: chat completion after %s: %v", ErrFetch, elapsed, err)
	}

	if len(resp.Choices) == 0 {
		return ContentItem{}, fmt.Errorf("%w: response has no choices", ErrFetch)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return ContentItem{}, fmt.Errorf("%w: empty completion", ErrFetch)
	}

	slog.Info("[SOURCE] fetched", "elapsed", elapsed, "text", text)
	return ContentItem{Text: text, RequestedAt: requestedAt}, nil
}
