package rag

import (
	"context"
	"time"

	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
	"github.com/akolanti/SyllabusQA/internal/metrics"
	"github.com/akolanti/SyllabusQA/internal/rag/index"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

func (s *service) executeLoadStep(ctx context.Context, log *logger_i.Logger, folder, filter string) (*commonModels.Corpus, bool) {
	log.Debug("loading corpus", "folder", folder, "filter", filter)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("corpus_load", time.Since(start)) }()

	return s.loader.Load(ctx, folder, filter)
}

func (s *service) executeIndexStep(ctx context.Context, log *logger_i.Logger, corpus *commonModels.Corpus) (*index.Index, error) {
	log.Debug("building index", "chunks", corpus.Len())
	return index.Build(ctx, s.embedder, corpus, s.batchSize)
}

func (s *service) executeSearchStep(ctx context.Context, snap *snapshot, query string, k int) (index.SearchResult, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return snap.index.Search(ctx, query, k)
}

func (s *service) executeLLMStep(ctx context.Context, prompt string, maxTokens int) string {
	return s.llm.Generate(ctx, prompt, maxTokens)
}
