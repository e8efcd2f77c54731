package embedding

import "context"

// Embedder turns text into vectors. Documents and queries are separate calls because some
// providers embed them with different task types.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}
