package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCmdable struct {
	redis.Cmdable
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newMemoryCmdable() *memoryCmdable {
	return &memoryCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.failGet != nil {
		return redis.NewStringResult("", m.failGet)
	}
	val, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (m *memoryCmdable) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestSearchCache(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryCmdable()
	cache := NewSearchCache(backend, "explore:")

	_, found, err := cache.Get(ctx, "golang")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "golang", []byte(`{"tweets":[]}`), 30*time.Second))
	assert.Equal(t, 30*time.Second, backend.ttls["explore:golang"])

	payload, found, err := cache.Get(ctx, "golang")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"tweets":[]}`, string(payload))
}

func TestSearchCache_BackendError(t *testing.T) {
	backend := newMemoryCmdable()
	backend.failGet = errors.New("connection refused")
	cache := NewSearchCache(backend, "explore:")

	_, found, err := cache.Get(context.Background(), "golang")
	assert.Error(t, err)
	assert.False(t, found)
}
