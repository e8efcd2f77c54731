package ingest

import (
	"errors"

	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

// ErrInvalidChunkConfig is returned when size <= 0 or overlap is outside [0, size).
var ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

// Extractor turns the bytes of one archive member into plain text.
type Extractor func(name string, data []byte) (string, error)

var logger = logger_i.NewLogger("Ingestion")
