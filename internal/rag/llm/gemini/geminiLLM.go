package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/rag/llm"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger = logger_i.NewLogger("llm_gemini")

func NewGeminiClient(ctx context.Context, modelName string, apikey string) (llm.Provider, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if c == nil {
		return nil, errors.New("genai returned no client")
	}
	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName}, nil
}

// Generate sends the fully assembled prompt; the answer prompts already carry their instructions.
func (c *llmClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	log := logger.WithTrace(ctx)

	contentConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
		Temperature:     genai.Ptr(config.ModelTemperature),
		TopP:            genai.Ptr(config.ModelTopP),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), contentConfig)
	if err != nil {
		log.Error("Gemini generate failed", "error", err)
		return "", err
	}
	if result == nil {
		return "", llm.ErrEmptyResponse
	}
	return result.Text(), nil
}
