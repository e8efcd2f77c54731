package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/data/store"
	"github.com/akolanti/SyllabusQA/internal/rag"
	"github.com/akolanti/SyllabusQA/internal/rag/embedding"
	"github.com/akolanti/SyllabusQA/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/SyllabusQA/internal/rag/embedding/ollamaEmbedding"
	"github.com/akolanti/SyllabusQA/internal/rag/ingest"
	"github.com/akolanti/SyllabusQA/internal/rag/llm"
	"github.com/akolanti/SyllabusQA/internal/rag/llm/gemini"
	"github.com/akolanti/SyllabusQA/internal/rag/llm/ollama"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
	"github.com/joho/godotenv"
)

var ErrMissingGeminiKey = errors.New("gemini provider needs gemini.key")

// App is everything a binary needs after startup.
type App struct {
	Settings config.Settings
	Service  rag.Service
	History  store.HistoryStore
}

// LoadSettings reads .env (if any) and the layered settings, then installs the logger at the configured level.
func LoadSettings(configPath string) (config.Settings, error) {
	if err := godotenv.Load(); err != nil {
		logger_i.NewLogger("bootstrap").Debug("no .env file loaded", "error", err)
	}
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return settings, err
	}
	logger_i.Init(settings.LogLevel)
	return settings, nil
}

// NewProviders builds the embedder and the generation backend for the configured provider.
func NewProviders(ctx context.Context, settings config.Settings) (embedding.Embedder, llm.Provider, error) {
	log := logger_i.NewLogger("bootstrap").With("provider", settings.Provider)

	switch settings.Provider {
	case config.ProviderGemini:
		if settings.Gemini.Key == "" {
			return nil, nil, ErrMissingGeminiKey
		}
		em, err := googleEmbedding.NewGoogleEmbedder(ctx, settings.Gemini.EmbeddingModel, settings.Gemini.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini embedder: %w", err)
		}
		provider, err := gemini.NewGeminiClient(ctx, settings.Gemini.Model, settings.Gemini.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini llm: %w", err)
		}
		log.Info("providers ready", "model", settings.Gemini.Model, "embedding_model", settings.Gemini.EmbeddingModel)
		return em, provider, nil

	case config.ProviderOllama, "":
		em := ollamaEmbedding.NewProvider(
			ollamaEmbedding.WithBaseURL(settings.Ollama.BaseURL),
			ollamaEmbedding.WithModel(settings.Ollama.EmbeddingModel),
		)
		if ok, err := em.HasModel(ctx); err != nil {
			log.Warn("could not reach ollama, answers will use the fallback until it is up", "error", err)
		} else if !ok {
			log.Warn("embedding model is not pulled", "model", settings.Ollama.EmbeddingModel)
		}
		log.Info("providers ready", "model", settings.Ollama.Model, "embedding_model", settings.Ollama.EmbeddingModel)
		return em, ollama.NewOllamaClient(settings.Ollama.BaseURL, settings.Ollama.Model), nil

	default:
		return nil, nil, fmt.Errorf("unknown provider %q", settings.Provider)
	}
}

// Build wires the loader, providers, retrieval service and history store.
func Build(ctx context.Context, settings config.Settings) (*App, error) {
	em, provider, err := NewProviders(ctx, settings)
	if err != nil {
		return nil, err
	}
	service := rag.NewService(ingest.NewLoader(settings.DatasetRoot), em, provider, settings)
	return &App{
		Settings: settings,
		Service:  service,
		History:  store.NewHistoryStore(ctx, settings.Redis),
	}, nil
}
