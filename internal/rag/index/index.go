package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
	"github.com/akolanti/SyllabusQA/internal/metrics"
	"github.com/akolanti/SyllabusQA/internal/rag/embedding"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

var logger = logger_i.NewLogger("Embedding Index")

// Index is an exact in-memory nearest neighbour index. vectors[i] always belongs to chunks[i].
type Index struct {
	embedder embedding.Embedder
	chunks   []commonModels.Chunk
	vectors  [][]float32
}

type Hit struct {
	Chunk    commonModels.Chunk
	Position int
	Score    float32
}

type SearchResult struct {
	Hits      []Hit
	Sources   []string
	NoContext bool
}

func (r SearchResult) Texts() []string {
	texts := make([]string, 0, len(r.Hits))
	for _, h := range r.Hits {
		texts = append(texts, h.Chunk.Text)
	}
	return texts
}

// Empty is the index of an empty corpus; every search on it reports NoContext.
func Empty() *Index {
	return &Index{}
}

// Build embeds every chunk of the corpus in batches of batchSize.
func Build(ctx context.Context, embedder embedding.Embedder, corpus *commonModels.Corpus, batchSize int) (*Index, error) {
	log := logger.WithTrace(ctx)
	if corpus.Len() == 0 {
		return &Index{embedder: embedder}, nil
	}
	if batchSize <= 0 {
		batchSize = config.EmbeddingBatchSize
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding_build", time.Since(start)) }()

	chunks := corpus.Chunks
	vectors := make([][]float32, 0, len(chunks))
	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-i)
		for _, c := range chunks[i:end] {
			texts = append(texts, c.Text)
		}

		log.Debug("embedding batch", "from", i, "to", end)
		batch, err := embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d-%d failed: %w", i, end, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedding batch %d-%d returned %d vectors", i, end, len(batch))
		}
		vectors = append(vectors, batch...)
	}

	log.Info("index built", "chunks", len(chunks), "took", time.Since(start))
	return &Index{embedder: embedder, chunks: chunks, vectors: vectors}, nil
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.vectors)
}

// Search ranks every chunk by cosine similarity to the query and returns the best k.
// NoContext is only set for an empty index; k <= 0 gives an empty result without it.
// Equal scores keep corpus order.
func (ix *Index) Search(ctx context.Context, query string, k int) (SearchResult, error) {
	if ix.Len() == 0 {
		return SearchResult{NoContext: true}, nil
	}
	if k <= 0 {
		return SearchResult{}, nil
	}

	start := time.Now()
	queryVector, err := ix.embedder.EmbedQuery(ctx, query)
	metrics.CaptureExecutionMetrics("embedding_query", time.Since(start))
	if err != nil {
		return SearchResult{}, fmt.Errorf("embedding query: %w", err)
	}

	scored := make([]Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		scored[i] = Hit{Chunk: ix.chunks[i], Position: i, Score: CosineSimilarity(queryVector, v)}
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	if k < len(scored) {
		scored = scored[:k]
	}

	return SearchResult{Hits: scored, Sources: distinctSources(scored)}, nil
}

func distinctSources(hits []Hit) []string {
	seen := make(map[string]struct{}, len(hits))
	var sources []string
	for _, h := range hits {
		if _, ok := seen[h.Chunk.Source]; ok {
			continue
		}
		seen[h.Chunk.Source] = struct{}{}
		sources = append(sources, h.Chunk.Source)
	}
	return sources
}

// CosineSimilarity is 0 for vectors of different length or zero norm.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denominator := math.Sqrt(normA) * math.Sqrt(normB)
	if denominator == 0 {
		return 0
	}
	return float32(dot / denominator)
}
