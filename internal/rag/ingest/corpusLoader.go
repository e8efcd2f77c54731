package ingest

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
	"github.com/akolanti/SyllabusQA/internal/metrics"
)

// Loader reads the zipped pdf collections of one class folder into a Corpus.
type Loader struct {
	DatasetRoot  string
	Extract      Extractor
	ChunkSize    int
	ChunkOverlap int
}

func NewLoader(datasetRoot string) *Loader {
	return &Loader{
		DatasetRoot:  datasetRoot,
		Extract:      ExtractPDFText,
		ChunkSize:    config.ChunkSize,
		ChunkOverlap: config.ChunkOverlap,
	}
}

// Load builds a fresh corpus from <DatasetRoot>/<classFolder>. Only archives whose name contains
// subjectFilter (case-insensitive) are read; an empty filter keeps all. Archives and members that
// fail are logged and skipped. The bool reports whether at least one chunk was produced.
func (l *Loader) Load(ctx context.Context, classFolder, subjectFilter string) (*commonModels.Corpus, bool) {
	log := logger.WithTrace(ctx).With("class", classFolder, "subject", subjectFilter)
	corpus := commonModels.NewCorpus()

	classPath := filepath.Join(l.DatasetRoot, classFolder)
	archives, err := l.listArchives(classPath, subjectFilter)
	if err != nil {
		log.Error("class folder is not readable", "path", classPath, "error", err)
		return corpus, false
	}
	log.Info("loading archives", "count", len(archives))

	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			log.Warn("load cancelled", "error", err)
			return commonModels.NewCorpus(), false
		}
		docs, err := l.readArchive(filepath.Join(classPath, archive), classFolder, subjectFilter)
		if err != nil {
			log.Error("skipping archive", "archive", archive, "error", err)
			continue
		}
		for _, doc := range docs {
			chunks, err := l.chunkDocument(doc)
			if err != nil {
				log.Error("skipping document", "name", doc.Name, "error", err)
				continue
			}
			corpus.Add(doc.Name, chunks)
		}
	}

	log.Info("corpus loaded", "documents", corpus.DocumentCount(), "chunks", corpus.Len())
	return corpus, corpus.Len() > 0
}

func (l *Loader) listArchives(classPath, subjectFilter string) ([]string, error) {
	entries, err := os.ReadDir(classPath)
	if err != nil {
		return nil, err
	}
	filter := strings.ToLower(subjectFilter)

	// os.ReadDir returns entries sorted by file name
	var archives []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, config.ArchiveExtension) {
			continue
		}
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}
		archives = append(archives, entry.Name())
	}
	return archives, nil
}

func (l *Loader) readArchive(path, classFolder, subjectFilter string) ([]commonModels.RawDocument, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	archive := filepath.Base(path)
	var docs []commonModels.RawDocument
	for _, member := range r.File {
		if member.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(member.Name), config.DocumentExtension) {
			continue
		}
		data, err := readMember(member)
		if err != nil {
			logger.Error("skipping unreadable member", "archive", archive, "member", member.Name, "error", err)
			metrics.IngestedDocument(false)
			continue
		}
		text, err := l.Extract(member.Name, data)
		if err != nil {
			logger.Error("skipping member", "archive", archive, "member", member.Name, "error", err)
			metrics.IngestedDocument(false)
			continue
		}
		metrics.IngestedDocument(true)
		docs = append(docs, commonModels.RawDocument{
			Name:    member.Name,
			Class:   classFolder,
			Subject: subjectFilter,
			Archive: archive,
			Text:    text,
		})
	}
	return docs, nil
}

func readMember(member *zip.File) ([]byte, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (l *Loader) chunkDocument(doc commonModels.RawDocument) ([]commonModels.Chunk, error) {
	parts, err := SplitText(NormalizeText(doc.Text), l.ChunkSize, l.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	chunks := make([]commonModels.Chunk, 0, len(parts))
	for i, text := range parts {
		chunks = append(chunks, commonModels.Chunk{
			Text:   text,
			Source: doc.Name,
			Index:  i,
		})
	}
	return chunks, nil
}
