package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists the full dateKey -> Entry mapping for one identity.
// The mapping is always read and written as a single value; there are no
// partial updates, so concurrent writers race and the later write wins.
type Store interface {
	Load(ctx context.Context) (map[string]Entry, error)
	Save(ctx context.Context, entries map[string]Entry) error
}

// RedisStore keeps the serialized mood mapping under one namespaced key per
// anonymous identity.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore builds a store scoped to the application namespace and the
// caller's identity token subject.
func NewRedisStore(rdb *redis.Client, namespace, identity string) *RedisStore {
	return &RedisStore{
		rdb: rdb,
		key: fmt.Sprintf("unbem:%s:moods:%s", namespace, identity),
	}
}

func (s *RedisStore) Load(ctx context.Context) (map[string]Entry, error) {
	b, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]Entry{}, nil
		}
		return nil, err
	}
	entries := map[string]Entry{}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("corrupt mood data: %w", err)
	}
	return entries, nil
}

func (s *RedisStore) Save(ctx context.Context, entries map[string]Entry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.rdb.Set(ctx, s.key, b, 0).Err()
}
