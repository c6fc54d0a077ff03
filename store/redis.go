package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "oauth:tokens:"
	stateKeyPrefix = "oauth:state:"
)

// RedisTokenStore keeps one JSON-encoded record per user key with no TTL:
// refresh tokens outlive access tokens and the manager decides staleness.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
	}
}

func (s *RedisTokenStore) Put(ctx context.Context, record TokenRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tokenKeyPrefix+record.UserID, payload, 0).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, userID string) (*TokenRecord, error) {
	raw, err := s.client.Get(ctx, tokenKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	var record TokenRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RedisTokenStore) IsReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	return s.client.Ping(ctx).Err()
}

func (s *RedisTokenStore) Name() string {
	return "TokenStore[redis]"
}

func (s *RedisTokenStore) Shutdown(ctx context.Context) error {
	return s.client.Close()
}

// RedisStateStore records each state once with a short TTL and deletes it on
// the first Consume, so a replayed callback fails state validation.
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStateStore) Save(ctx context.Context, state string) error {
	return s.client.SetNX(ctx, stateKeyPrefix+state, "1", s.ttl).Err()
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	_, err := s.client.Get(ctx, stateKeyPrefix+state).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_ = s.client.Del(ctx, stateKeyPrefix+state).Err()
	return true, nil
}
