package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(zerolog.Nop(), client)
}

func TestRedisStore_PutGet(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tasks:alice", "t1", []byte(`{"title":"a"}`)))

	doc, err := s.Get(ctx, "tasks:alice", "t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"a"}`, string(doc))
}

func TestRedisStore_GetMissing(t *testing.T) {
	s := setupRedisStore(t)

	_, err := s.Get(context.Background(), "tasks:alice", "missing")
	assert.ErrorIs(t, err, ErrDocNotFound)
}

func TestRedisStore_ListAllIsolatesPartitions(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tasks:alice", "t1", []byte(`{"n":1}`)))
	require.NoError(t, s.Put(ctx, "tasks:alice", "t2", []byte(`{"n":2}`)))
	require.NoError(t, s.Put(ctx, "tasks:bob", "t3", []byte(`{"n":3}`)))

	docs, err := s.ListAll(ctx, "tasks:alice")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = s.ListAll(ctx, "tasks:bob")
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = s.ListAll(ctx, "tasks:carol")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRedisStore_UpdateMissing(t *testing.T) {
	s := setupRedisStore(t)

	err := s.Update(context.Background(), "tasks:alice", "missing", []byte(`{}`))
	assert.ErrorIs(t, err, ErrDocNotFound)
}

func TestRedisStore_UpdateExisting(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "users", "u1", []byte(`{"full_name":"before"}`)))
	require.NoError(t, s.Update(ctx, "users", "u1", []byte(`{"full_name":"after"}`)))

	doc, err := s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"full_name":"after"}`, string(doc))
}

func TestRedisStore_DeleteIsNotIdempotent(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tasks:alice", "t1", []byte(`{}`)))

	require.NoError(t, s.Delete(ctx, "tasks:alice", "t1"))

	_, err := s.Get(ctx, "tasks:alice", "t1")
	assert.ErrorIs(t, err, ErrDocNotFound)

	err = s.Delete(ctx, "tasks:alice", "t1")
	assert.ErrorIs(t, err, ErrDocNotFound)
}
