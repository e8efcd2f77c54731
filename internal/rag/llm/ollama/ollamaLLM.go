package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/customHttpClient"
	"github.com/akolanti/SyllabusQA/internal/rag/llm"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

var logger = logger_i.NewLogger("llm_ollama")

type llmClient struct {
	baseURL   string
	modelName string
	client    *http.Client
}

// NewOllamaClient talks to the non streaming /api/generate endpoint. The request deadline comes
// from the caller's context, the http client timeout is only a backstop.
func NewOllamaClient(baseURL, modelName string) llm.Provider {
	return &llmClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		modelName: modelName,
		client:    customHttpClient.NewPooledClient(config.LLMRequestTimeout),
	}
}

type generateOptions struct {
	Temperature   float32 `json:"temperature"`
	NumPredict    int     `json:"num_predict"`
	TopP          float32 `json:"top_p"`
	RepeatPenalty float32 `json:"repeat_penalty"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func (c *llmClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	log := logger.WithTrace(ctx)
	body, err := json.Marshal(generateRequest{
		Model:  c.modelName,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature:   config.ModelTemperature,
			NumPredict:    maxTokens,
			TopP:          config.ModelTopP,
			RepeatPenalty: config.ModelRepeatPenalty,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+config.OllamaGeneratePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("calling ollama generate", "model", c.modelName, "num_predict", maxTokens)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("ollama error: %s", result.Error)
	}
	return result.Response, nil
}
