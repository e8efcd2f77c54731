package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/rag/intent"
)

func (s *service) answerGeneral(ctx context.Context, snap *snapshot, query string) Answer {
	log := s.logger.WithTrace(ctx)

	contextText := Messages.NoContext
	var sources []string
	res, err := s.executeSearchStep(ctx, snap, query, config.GeneralTopK)
	if err != nil {
		log.Warn("retrieval failed, answering without context", "error", err)
	} else if len(res.Hits) > 0 {
		contextText = strings.Join(res.Texts(), "\n")
		sources = res.Sources
	}

	prompt := fmt.Sprintf(generalPrompt, contextText, query)
	return Answer{
		Text:    s.executeLLMStep(ctx, prompt, config.GeneralMaxTokens),
		Mode:    intent.ModeGeneral,
		Sources: sources,
	}
}

// answerTargeted uses the whole named document when the query names one, otherwise a wider search.
// A named document that is not loaded is answered without calling the model.
func (s *service) answerTargeted(ctx context.Context, snap *snapshot, query string, in intent.Intent) Answer {
	log := s.logger.WithTrace(ctx)
	answer := Answer{Mode: intent.ModeTargeted, TargetDocument: in.TargetDocument}

	var content string
	if in.TargetDocument != "" {
		chunks, ok := snap.corpus.Lookup(in.TargetDocument)
		if !ok {
			log.Info("requested document is not loaded", "document", in.TargetDocument)
			answer.Text = fmt.Sprintf(Messages.DocumentNotFound, in.TargetDocument)
			return answer
		}
		texts := make([]string, 0, len(chunks))
		for _, c := range chunks {
			texts = append(texts, c.Text)
		}
		content = strings.Join(texts, " ")
		if len(chunks) > 0 {
			answer.Sources = []string{chunks[0].Source}
		}
	} else {
		res, err := s.executeSearchStep(ctx, snap, query, config.TargetedTopK)
		if err != nil {
			log.Warn("retrieval failed, answering without context", "error", err)
		} else {
			content = strings.Join(res.Texts(), "\n")
			answer.Sources = res.Sources
		}
	}
	if content == "" {
		content = Messages.NoContext
	}

	prompt := fmt.Sprintf(targetedPrompt, truncateRunes(content, config.TargetedContentLimit), query)
	answer.Text = s.executeLLMStep(ctx, prompt, config.TargetedMaxTokens)
	return answer
}

func truncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
