package googleEmbedding

import (
	"fmt"

	"github.com/akolanti/SyllabusQA/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))

	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			log.Error("Rate limit hit! ", "error", err)
			return true
		}
	}
	return false
}

// collectVectors keeps the index contract: one vector per input, in input order.
func collectVectors(res *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if res == nil {
		return nil, fmt.Errorf("google returned no response for %d inputs", want)
	}
	if len(res.Embeddings) != want {
		return nil, fmt.Errorf("google returned %d embeddings for %d inputs", len(res.Embeddings), want)
	}
	vectors := make([][]float32, 0, want)
	for i, e := range res.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("google returned an empty embedding at position %d", i)
		}
		vectors = append(vectors, e.Values)
	}
	return vectors, nil
}
