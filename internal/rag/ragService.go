package rag

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
	"github.com/akolanti/SyllabusQA/internal/metrics"
	"github.com/akolanti/SyllabusQA/internal/rag/embedding"
	"github.com/akolanti/SyllabusQA/internal/rag/index"
	"github.com/akolanti/SyllabusQA/internal/rag/intent"
	"github.com/akolanti/SyllabusQA/internal/rag/llm"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

/*
The handlers and the cli only see Service. The private service owns the loader, the embedder and
the llm client, plus the one piece of mutable state: the current snapshot of selection, corpus and
index. A snapshot is never modified after it is published, a selection builds a new one.
*/

type Service interface {
	Classes() []string
	Subjects() []string
	SelectCorpus(ctx context.Context, class, subject string) (SelectResult, error)
	Ask(ctx context.Context, question string) (Answer, error)
	Answer(ctx context.Context, query string) Answer
	Status() Status
}

// CorpusLoader is satisfied by *ingest.Loader.
type CorpusLoader interface {
	Load(ctx context.Context, classFolder, subjectFilter string) (*commonModels.Corpus, bool)
}

// Catalog is satisfied by config.Settings.
type Catalog interface {
	ClassFolder(name string) (string, bool)
	SubjectFilter(name string) (string, bool)
	ClassNames() []string
	SubjectNames() []string
}

type Answer struct {
	Text           string
	Mode           intent.Mode
	Sources        []string
	TargetDocument string
	// Selection is the class and subject of the snapshot that answered.
	Selection commonModels.Selection
}

type SelectResult struct {
	OK        bool
	Message   string
	Documents int
	Chunks    int
}

type Status struct {
	Selection commonModels.Selection
	Ready     bool
	Loading   bool
	Documents int
	Chunks    int
}

type snapshot struct {
	selection commonModels.Selection
	corpus    *commonModels.Corpus
	index     *index.Index
	loading   bool
}

func emptySnapshot(sel commonModels.Selection, loading bool) *snapshot {
	return &snapshot{selection: sel, corpus: commonModels.NewCorpus(), index: index.Empty(), loading: loading}
}

type service struct {
	loader    CorpusLoader
	embedder  embedding.Embedder
	llm       *llm.Client
	catalog   Catalog
	batchSize int
	logger    *logger_i.Logger

	selectMu sync.Mutex
	mu       sync.RWMutex
	current  *snapshot
}

func NewService(loader CorpusLoader, em embedding.Embedder, provider llm.Provider, catalog Catalog) Service {
	return NewServiceWithClient(loader, em, llm.NewClient(provider), catalog)
}

func NewServiceWithClient(loader CorpusLoader, em embedding.Embedder, client *llm.Client, catalog Catalog) Service {
	return &service{
		loader:    loader,
		embedder:  em,
		llm:       client,
		catalog:   catalog,
		batchSize: config.EmbeddingBatchSize,
		logger:    logger_i.NewLogger("RAG Service"),
		current:   emptySnapshot(commonModels.Selection{}, false),
	}
}

func (s *service) Classes() []string {
	return s.catalog.ClassNames()
}

func (s *service) Subjects() []string {
	return s.catalog.SubjectNames()
}

func (s *service) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *service) publish(snap *snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
	metrics.SetCorpusSize(snap.corpus.DocumentCount(), snap.corpus.Len())
}

// SelectCorpus replaces the active corpus and index. The old corpus is dropped before loading starts,
// so a failed load leaves nothing selected.
func (s *service) SelectCorpus(ctx context.Context, class, subject string) (SelectResult, error) {
	log := s.logger.WithTrace(ctx).With("class", class, "subject", subject)
	class, subject = strings.TrimSpace(class), strings.TrimSpace(subject)
	if class == "" || subject == "" {
		return SelectResult{Message: Messages.MissingSelection}, ErrMissingSelection
	}
	folder, ok := s.catalog.ClassFolder(class)
	if !ok {
		return SelectResult{Message: fmt.Sprintf(Messages.UnknownClass, class)}, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	filter, ok := s.catalog.SubjectFilter(subject)
	if !ok {
		return SelectResult{Message: fmt.Sprintf(Messages.UnknownSubject, subject)}, fmt.Errorf("%w: %s", ErrUnknownSubject, subject)
	}

	s.selectMu.Lock()
	defer s.selectMu.Unlock()

	start := time.Now()
	defer func() { metrics.CaptureOperationMetrics("select", time.Since(start)) }()

	sel := commonModels.Selection{Class: class, Subject: subject, ClassFolder: folder, SubjectFilter: filter}
	s.publish(emptySnapshot(sel, true))

	corpus, loaded := s.executeLoadStep(ctx, log, folder, filter)
	if !loaded {
		log.Warn("no syllabus content found")
		s.publish(emptySnapshot(sel, false))
		metrics.SelectionOutcome(false)
		return SelectResult{Message: fmt.Sprintf(Messages.NoData, class, subject)}, nil
	}

	idx, err := s.executeIndexStep(ctx, log, corpus)
	if err != nil {
		log.Error("index build failed", "error", err)
		s.publish(emptySnapshot(sel, false))
		metrics.SelectionOutcome(false)
		return SelectResult{Message: fmt.Sprintf(Messages.NoData, class, subject)}, nil
	}

	s.publish(&snapshot{selection: sel, corpus: corpus, index: idx})
	metrics.SelectionOutcome(true)
	log.Info("selection ready", "documents", corpus.DocumentCount(), "chunks", corpus.Len())
	return SelectResult{
		OK:        true,
		Message:   fmt.Sprintf(Messages.Ready, class, subject),
		Documents: corpus.DocumentCount(),
		Chunks:    corpus.Len(),
	}, nil
}

// Ask answers against the corpus that was active when the call started.
func (s *service) Ask(ctx context.Context, question string) (Answer, error) {
	if strings.TrimSpace(question) == "" {
		return Answer{Text: Messages.EmptyQuestion}, ErrEmptyQuestion
	}
	snap := s.snapshot()
	if snap.corpus.Len() == 0 {
		return Answer{Text: Messages.SelectFirst, Selection: snap.selection}, nil
	}
	return s.answer(ctx, snap, question), nil
}

func (s *service) Answer(ctx context.Context, query string) Answer {
	return s.answer(ctx, s.snapshot(), query)
}

func (s *service) answer(ctx context.Context, snap *snapshot, query string) Answer {
	start := time.Now()
	defer func() { metrics.CaptureOperationMetrics("answer", time.Since(start)) }()

	in := intent.Classify(query)
	metrics.CountIntent(string(in.Mode))
	s.logger.WithTrace(ctx).Debug("query routed", "mode", in.Mode, "matched", in.Matched, "target", in.TargetDocument)

	var a Answer
	if in.Targeted() {
		a = s.answerTargeted(ctx, snap, query, in)
	} else {
		a = s.answerGeneral(ctx, snap, query)
	}
	a.Selection = snap.selection
	return a
}

func (s *service) Status() Status {
	snap := s.snapshot()
	return Status{
		Selection: snap.selection,
		Ready:     snap.corpus.Len() > 0,
		Loading:   snap.loading,
		Documents: snap.corpus.DocumentCount(),
		Chunks:    snap.corpus.Len(),
	}
}
