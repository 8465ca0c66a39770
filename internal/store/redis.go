package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/config"
)

// RedisStore keeps each partition in its own redis hash: documents are
// hash fields keyed by document key, so a partition can only be reached
// by name and cross-partition lookups are structurally impossible.
type RedisStore struct {
	logger zerolog.Logger
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewRedisStore(logger zerolog.Logger, client *redis.Client) *RedisStore {
	return &RedisStore{
		logger: logger,
		client: client,
	}
}

func (s *RedisStore) Put(ctx context.Context, partition, key string, doc []byte) error {
	err := s.client.HSet(ctx, partition, key, doc).Err()
	if err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	s.logger.Debug().
		Str("partition", partition).
		Str("key", key).
		Msg("put document")
	return nil
}

func (s *RedisStore) Get(ctx context.Context, partition, key string) ([]byte, error) {
	doc, err := s.client.HGet(ctx, partition, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDocNotFound
		}
		return nil, fmt.Errorf("redis hget failed: %w", err)
	}
	return doc, nil
}

func (s *RedisStore) ListAll(ctx context.Context, partition string) ([][]byte, error) {
	fields, err := s.client.HGetAll(ctx, partition).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	docs := make([][]byte, 0, len(fields))
	for _, doc := range fields {
		docs = append(docs, []byte(doc))
	}
	s.logger.Debug().
		Str("partition", partition).
		Int("count", len(docs)).
		Msg("listed partition")
	return docs, nil
}

func (s *RedisStore) Update(ctx context.Context, partition, key string, doc []byte) error {
	exists, err := s.client.HExists(ctx, partition, key).Result()
	if err != nil {
		return fmt.Errorf("redis hexists failed: %w", err)
	}
	if !exists {
		return ErrDocNotFound
	}

	err = s.client.HSet(ctx, partition, key, doc).Err()
	if err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	s.logger.Debug().
		Str("partition", partition).
		Str("key", key).
		Msg("updated document")
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, partition, key string) error {
	removed, err := s.client.HDel(ctx, partition, key).Result()
	if err != nil {
		return fmt.Errorf("redis hdel failed: %w", err)
	}
	if removed == 0 {
		return ErrDocNotFound
	}
	s.logger.Debug().
		Str("partition", partition).
		Str("key", key).
		Msg("deleted document")
	return nil
}
