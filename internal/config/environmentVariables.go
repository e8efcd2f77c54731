package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, history falls back to the in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//serverTimeouts
	//write timeout has to outlive a full re-embedding of a class plus a 60s llm call
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Minute
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":5000"

	//ingestion
	DatasetRoot        = "datasets"
	ArchiveExtension   = ".zip"
	DocumentExtension  = ".pdf"
	ChunkSize          = 500
	ChunkOverlap       = 50
	PageExtractTimeout = 10 * time.Second

	//embedding index
	EmbeddingBatchSize = 64
	GeneralTopK        = 5
	TargetedTopK       = 10

	//answer assembly
	TargetedContentLimit = 6000
	GeneralMaxTokens     = 500
	TargetedMaxTokens    = 1000

	//llm
	LLMRequestTimeout  = 60 * time.Second
	EmbeddingTimeout   = 30 * time.Second
	OllamaGeneratePath = "/api/generate"
	OllamaEmbedPath    = "/api/embed"
	OllamaTagsPath     = "/api/tags"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis has 16 DB we can use
	RedisHistoryStore = 2
	RedisHistoryKey   = "chat_history"
	RedisHistoryTTL   = 24 * time.Hour
	HistoryReadLimit  = 20

	//the list is trimmed on every push so it cannot grow past this
	RedisHistoryMaxEntries = 100
)

const (
	ModelTemperature   float32 = 0.1
	ModelTopP          float32 = 0.8
	ModelRepeatPenalty float32 = 1.1

	GeminiEmbeddingDimensionality int32 = 768
)
