package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubNumberSource struct {
	number string
	err    error
	calls  int
}

func (s *stubNumberSource) NextOrderNumber(_ context.Context) (string, error) {
	s.calls++
	return s.number, s.err
}

// unreachableClient connects nowhere so every command fails immediately
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestSequenceKey(t *testing.T) {
	day := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "order:seq:20260829", sequenceKey(day))
}

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20260829-0001", formatOrderNumber(day, 1))
	assert.Equal(t, "ORD-20260829-0042", formatOrderNumber(day, 42))
	assert.Equal(t, "ORD-20260829-12345", formatOrderNumber(day, 12345))
}

func TestRedisOrderNumberAllocator_FallsBackWhenRedisUnavailable(t *testing.T) {
	fallback := &stubNumberSource{number: "ORD-20260829-0007"}
	allocator := NewRedisOrderNumberAllocator(unreachableClient(), fallback, zap.NewNop())

	number, err := allocator.NextOrderNumber(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ORD-20260829-0007", number)
	assert.Equal(t, 1, fallback.calls)
}

func TestRedisOrderNumberAllocator_FallbackErrorPropagates(t *testing.T) {
	fallback := &stubNumberSource{err: assert.AnError}
	allocator := NewRedisOrderNumberAllocator(unreachableClient(), fallback, zap.NewNop())

	_, err := allocator.NextOrderNumber(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}
