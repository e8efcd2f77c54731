package rag_test

import (
	"context"
	"strings"
	"sync"

	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
)

// MockLoader implements rag.CorpusLoader
type MockLoader struct {
	OnLoad func(ctx context.Context, classFolder, subjectFilter string) (*commonModels.Corpus, bool)
}

func (m *MockLoader) Load(ctx context.Context, classFolder, subjectFilter string) (*commonModels.Corpus, bool) {
	if m.OnLoad != nil {
		return m.OnLoad(ctx, classFolder, subjectFilter)
	}
	return commonModels.NewCorpus(), false
}

// MockEmbedder implements embedding.Embedder. By default a text is embedded as keyword counts,
// which is enough to make retrieval order predictable.
type MockEmbedder struct {
	OnEmbedQuery     func(ctx context.Context, text string) ([]float32, error)
	OnEmbedDocuments func(ctx context.Context, texts []string) ([][]float32, error)
}

var mockVocabulary = []string{"sun", "moon", "water", "plant"}

func keywordVector(text string) []float32 {
	lower := strings.ToLower(text)
	v := make([]float32, len(mockVocabulary)+1)
	for i, word := range mockVocabulary {
		v[i] = float32(strings.Count(lower, word))
	}
	v[len(mockVocabulary)] = 0.01
	return v
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if m.OnEmbedQuery != nil {
		return m.OnEmbedQuery(ctx, text)
	}
	return keywordVector(text), nil
}

func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnEmbedDocuments != nil {
		return m.OnEmbedDocuments(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = keywordVector(t)
	}
	return out, nil
}

type GenerateCall struct {
	Prompt    string
	MaxTokens int
}

// MockLLM implements llm.Provider and records every call
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string, maxTokens int) (string, error)

	mu    sync.Mutex
	Calls []GenerateCall
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, GenerateCall{Prompt: prompt, MaxTokens: maxTokens})
	m.mu.Unlock()
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt, maxTokens)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockLLM) LastCall() GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return GenerateCall{}
	}
	return m.Calls[len(m.Calls)-1]
}

// CorpusOf groups chunks the way the loader does.
func CorpusOf(chunks ...commonModels.Chunk) *commonModels.Corpus {
	c := commonModels.NewCorpus()
	for _, ch := range chunks {
		if _, ok := c.Documents[ch.Source]; !ok {
			c.DocumentOrder = append(c.DocumentOrder, ch.Source)
		}
		c.Chunks = append(c.Chunks, ch)
		c.Documents[ch.Source] = append(c.Documents[ch.Source], ch)
	}
	return c
}
