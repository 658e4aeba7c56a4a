package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type exampleRecord struct {
	ID   string
	Name string
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[[]exampleRecord]("members", DefaultExpiration, DefaultCleanupInterval)
	records := []exampleRecord{{ID: "1", Name: "张三"}}
	cache.Set(context.Background(), "all", records, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "all")
	require.True(t, ok)
	require.Equal(t, records, got)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("members", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "all")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("members", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("all", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "all")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expires(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("members", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "all", "x", 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "all")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("members", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "a", "1", DefaultExpiration)
	cache.Set(context.Background(), "b", "2", DefaultExpiration)

	cache.Delete(context.Background())
	cache.Delete(context.Background(), "a")

	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
	_, ok = cache.Get(context.Background(), "b")
	require.True(t, ok)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string]("members", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "a", "1", DefaultExpiration)

	cache.Flush(context.Background())

	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
}
