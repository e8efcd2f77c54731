package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/data/redisStore"
	"github.com/akolanti/SyllabusQA/internal/data/store"
	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisHistory(t *testing.T) (*store.RedisHistoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedisHistoryStore(redisStore.NewTestStore(client), config.RedisHistoryKey, time.Hour), mr
}

func TestHistoryStores(t *testing.T) {
	redisHistory, _ := newRedisHistory(t)
	stores := map[string]store.HistoryStore{
		"redis":    redisHistory,
		"inMemory": store.NewInMemoryHistoryStore(),
	}

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	for name, hs := range stores {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				err := hs.Append(ctx, commonModels.ChatEntry{
					Id:       fmt.Sprintf("q%d", i),
					Class:    "Class 3",
					Subject:  "EVS",
					Question: fmt.Sprintf("question %d", i),
					Answer:   "answer",
					Sources:  []string{"evs_ch1.pdf"},
				})
				if err != nil {
					t.Fatalf("Append failed: %v", err)
				}
			}

			t.Run("Recent keeps insertion order", func(t *testing.T) {
				got, err := hs.Recent(ctx, 3)
				if err != nil {
					t.Fatalf("Recent failed: %v", err)
				}
				if len(got) != 3 {
					t.Fatalf("got %d entries, want 3", len(got))
				}
				for i, want := range []string{"q2", "q3", "q4"} {
					if got[i].Id != want {
						t.Errorf("entry %d = %s; want %s", i, got[i].Id, want)
					}
				}
				if got[0].CreatedAt.IsZero() {
					t.Error("CreatedAt was not stamped")
				}
				if len(got[0].Sources) != 1 || got[0].Sources[0] != "evs_ch1.pdf" {
					t.Errorf("sources not preserved: %v", got[0].Sources)
				}
			})

			t.Run("limit larger than history", func(t *testing.T) {
				got, _ := hs.Recent(ctx, 50)
				if len(got) != 5 {
					t.Errorf("got %d entries, want 5", len(got))
				}
			})

			t.Run("Clear", func(t *testing.T) {
				if err := hs.Clear(ctx); err != nil {
					t.Fatalf("Clear failed: %v", err)
				}
				got, err := hs.Recent(ctx, 10)
				if err != nil {
					t.Fatalf("Recent failed: %v", err)
				}
				if len(got) != 0 {
					t.Errorf("expected empty history, got %d", len(got))
				}
				if err := hs.Clear(ctx); err != nil {
					t.Errorf("clearing twice failed: %v", err)
				}
			})
		})
	}
}

func TestRedisHistoryStore_TTLAndMalformed(t *testing.T) {
	hs, mr := newRedisHistory(t)
	ctx := context.Background()

	if err := hs.Append(ctx, commonModels.ChatEntry{Id: "a", Question: "q"}); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(config.RedisHistoryKey); ttl != time.Hour {
		t.Errorf("ttl = %v; want 1h", ttl)
	}

	if _, err := mr.RPush(config.RedisHistoryKey, "{not json"); err != nil {
		t.Fatal(err)
	}
	got, err := hs.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 1 || got[0].Id != "a" {
		t.Errorf("malformed entry should be skipped, got %+v", got)
	}

	mr.FastForward(2 * time.Hour)
	got, _ = hs.Recent(ctx, 10)
	if len(got) != 0 {
		t.Errorf("history should expire, got %d entries", len(got))
	}
}

func TestNewHistoryStore_Fallback(t *testing.T) {
	ctx := context.Background()
	disabled := store.NewHistoryStore(ctx, config.RedisSettings{Addr: "127.0.0.1:1", Enabled: false})
	if _, ok := disabled.(*store.InMemoryHistoryStore); !ok {
		t.Errorf("disabled redis should give in-memory store, got %T", disabled)
	}

	mr := miniredis.RunT(t)
	online := store.NewHistoryStore(ctx, config.RedisSettings{Addr: mr.Addr(), Enabled: true})
	if _, ok := online.(*store.RedisHistoryStore); !ok {
		t.Errorf("reachable redis should give redis store, got %T", online)
	}
}

func TestRedisHistoryStore_CapsList(t *testing.T) {
	hs, mr := newRedisHistory(t)
	ctx := context.Background()

	total := config.RedisHistoryMaxEntries + 15
	for i := 0; i < total; i++ {
		if err := hs.Append(ctx, commonModels.ChatEntry{Id: fmt.Sprintf("q%d", i)}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	stored, err := mr.List(config.RedisHistoryKey)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != config.RedisHistoryMaxEntries {
		t.Fatalf("list holds %d entries; want %d", len(stored), config.RedisHistoryMaxEntries)
	}

	got, err := hs.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if want := fmt.Sprintf("q%d", total-1); len(got) != 1 || got[0].Id != want {
		t.Errorf("newest entry = %+v; want %s", got, want)
	}
}

func TestStore_ListPushTrim(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rs := redisStore.NewTestStore(client)
	ctx := context.Background()

	tests := []struct {
		name   string
		maxLen int64
		want   []string
	}{
		{"trimmed to newest", 3, []string{"c", "d", "e"}},
		{"no cap keeps all", 0, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "list_" + tt.name
			for _, v := range []string{"a", "b", "c", "d", "e"} {
				if err := rs.ListPush(ctx, key, v, tt.maxLen, time.Minute); err != nil {
					t.Fatal(err)
				}
			}
			got, err := rs.ListGetAll(ctx, key)
			if err != nil {
				t.Fatal(err)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("list = %v; want %v", got, tt.want)
			}
		})
	}
}
