package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

const (
	keyPrefix      = "community:state:"
	defaultTimeout = 5 * time.Second
)

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// StateStorage keeps state documents as plain Redis strings.
// Key format: community:state:<key>
type StateStorage struct {
	client *redis.Client
}

var _ ports.Storage = (*StateStorage)(nil)

// NewStateStorage wraps the given Redis client.
func NewStateStorage(client *redis.Client) *StateStorage {
	return &StateStorage{client: client}
}

// Open dials Redis, validates connectivity with a ping bounded by
// cfg.Timeout, and returns a storage owning the client.
func Open(ctx context.Context, cfg Config) (*StateStorage, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewStateStorage(client), nil
}

func (s *StateStorage) Close() error {
	return s.client.Close()
}

func (s *StateStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load: %w", err)
	}
	return data, nil
}

// Save stores the document without expiry.
func (s *StateStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (s *StateStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis remove: %w", err)
	}
	return nil
}

func (s *StateStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
