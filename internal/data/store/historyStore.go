package store

import (
	"context"
	"time"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/data/redisStore"
	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

// HistoryStore keeps the chat transcript shown by the ui. Entries come back oldest first.
type HistoryStore interface {
	Append(ctx context.Context, entry commonModels.ChatEntry) error
	Recent(ctx context.Context, limit int) ([]commonModels.ChatEntry, error)
	Clear(ctx context.Context) error
}

// NewHistoryStore prefers redis and falls back to memory when redis is disabled or offline.
func NewHistoryStore(ctx context.Context, settings config.RedisSettings) HistoryStore {
	log := logger_i.NewLogger("HistoryStore")
	if !settings.Enabled {
		log.Info("redis disabled, keeping history in memory")
		return NewInMemoryHistoryStore()
	}
	rs := redisStore.GetRedisStore(ctx, settings, config.RedisHistoryStore)
	if rs == nil {
		if config.FALLBACK_REDIS_TO_INTERNALSTORE {
			log.Warn("redis unavailable, keeping history in memory")
			return NewInMemoryHistoryStore()
		}
		log.Error("redis unavailable and fallback disabled, history will not be kept")
		return noopHistoryStore{}
	}
	return NewRedisHistoryStore(rs, config.RedisHistoryKey, config.RedisHistoryTTL)
}

type noopHistoryStore struct{}

func (noopHistoryStore) Append(context.Context, commonModels.ChatEntry) error { return nil }
func (noopHistoryStore) Recent(context.Context, int) ([]commonModels.ChatEntry, error) {
	return []commonModels.ChatEntry{}, nil
}
func (noopHistoryStore) Clear(context.Context) error { return nil }

func stamp(entry commonModels.ChatEntry) commonModels.ChatEntry {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return entry
}
