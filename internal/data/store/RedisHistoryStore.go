package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/data/redisStore"
	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

type RedisHistoryStore struct {
	store  *redisStore.Store
	key    string
	ttl    time.Duration
	logger *logger_i.Logger
}

func NewRedisHistoryStore(rs *redisStore.Store, key string, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{
		store:  rs,
		key:    key,
		ttl:    ttl,
		logger: logger_i.NewLogger("RedisHistoryStore"),
	}
}

func (s *RedisHistoryStore) Append(ctx context.Context, entry commonModels.ChatEntry) error {
	log := s.logger.WithTrace(ctx).With("entry", entry.Id)
	data, err := json.Marshal(stamp(entry))
	if err != nil {
		return fmt.Errorf("marshalling chat entry: %w", err)
	}
	if err := s.store.ListPush(ctx, s.key, data, config.RedisHistoryMaxEntries, s.ttl); err != nil {
		log.Error("error saving chat entry", "error", err)
		return err
	}
	log.Debug("saved chat entry")
	return nil
}

func (s *RedisHistoryStore) Recent(ctx context.Context, limit int) ([]commonModels.ChatEntry, error) {
	log := s.logger.WithTrace(ctx)
	raw, err := s.store.ListGetLast(ctx, s.key, int64(limit))
	if s.store.IsNil(err) {
		return []commonModels.ChatEntry{}, nil
	}
	if err != nil {
		log.Error("error reading history", "error", err)
		return nil, err
	}

	entries := make([]commonModels.ChatEntry, 0, len(raw))
	for _, item := range raw {
		var entry commonModels.ChatEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			log.Warn("skipping malformed history entry", "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *RedisHistoryStore) Clear(ctx context.Context) error {
	if err := s.store.Del(ctx, s.key); err != nil && !s.store.IsNil(err) {
		s.logger.WithTrace(ctx).Error("error clearing history", "error", err)
		return err
	}
	return nil
}
