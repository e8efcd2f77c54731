package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/metrics"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

// FallbackAnswer replaces the model output whenever generation fails for any reason.
const FallbackAnswer = "I'm having trouble connecting to the knowledge base right now."

var ErrEmptyResponse = errors.New("model returned an empty response")

type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Client never returns an error: transport, status, decode and empty output all become FallbackAnswer.
type Client struct {
	provider Provider
	timeout  time.Duration
	logger   *logger_i.Logger
}

func NewClient(provider Provider) *Client {
	return &Client{
		provider: provider,
		timeout:  config.LLMRequestTimeout,
		logger:   logger_i.NewLogger("llm_client"),
	}
}

func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) string {
	log := c.logger.WithTrace(ctx)
	if c.provider == nil {
		log.Error("no llm provider configured")
		metrics.CountLLMFallback()
		return FallbackAnswer
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.provider.Generate(ctx, prompt, maxTokens)
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(start))
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		log.Error("llm generation failed, using fallback", "error", err, "maxTokens", maxTokens)
		metrics.CountLLMFallback()
		return FallbackAnswer
	}
	return strings.TrimSpace(text)
}
