package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/domain"
	"github.com/gtmhub/searchd/internal/metrics"
)

// Generator is a chat-completion provider using the OpenAI-compatible API.
// One instance is built per role (intent classification, answer synthesis),
// each with its own model and timeout.
type Generator struct {
	client  *openai.Client
	model   string
	op      string // metrics label: "classify" / "synthesize"
	timeout time.Duration
	logger  *zap.Logger
}

// GeneratorConfig holds text-generation provider settings.
type GeneratorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Op      string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewGenerator creates an OpenAI-compatible chat-completion provider.
func NewGenerator(cfg *GeneratorConfig) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		op:      cfg.Op,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Generate implements domain.Generator: one completion with a fixed system
// prompt and a max_tokens ceiling, under a bounded per-call timeout.
func (g *Generator) Generate(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens: maxTokens,
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, g.op, "error").Inc()
		return "", parseGenerationAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, g.op, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrGenerationProviderError)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.model, g.op, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.model, g.op).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// parseGenerationAPIError wraps provider failures with
// domain.ErrGenerationProviderError so degradable callers can match them.
func parseGenerationAPIError(err error) error {
	wrap := domain.ErrGenerationProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("generation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("generation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("generation request failed: %w", wrap)
}
