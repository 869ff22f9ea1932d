package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemCache(t *testing.T) {
	mc := NewMemCache(time.Minute)
	defer mc.Close()

	t.Run("missing key", func(t *testing.T) {
		assert.Nil(t, mc.Get("missing"))
	})

	t.Run("set and get", func(t *testing.T) {
		mc.Set("key", 42, time.Minute)
		assert.Equal(t, 42, mc.Get("key"))
	})

	t.Run("expired key", func(t *testing.T) {
		mc.Set("short", "value", time.Millisecond)
		time.Sleep(5 * time.Millisecond)
		assert.Nil(t, mc.Get("short"))
	})

	t.Run("clear", func(t *testing.T) {
		mc.Set("a", 1, time.Minute)
		mc.Set("b", 2, time.Minute)

		mc.Clear()

		assert.Nil(t, mc.Get("a"))
		assert.Nil(t, mc.Get("b"))
	})
}

func TestMemCache_CleanupWorker(t *testing.T) {
	mc := NewMemCache(10 * time.Millisecond)
	defer mc.Close()

	mc.Set("short", "value", time.Millisecond)

	assert.Eventually(t, func() bool {
		_, exists := mc.memoryCache.Load("short")
		return !exists
	}, time.Second, 10*time.Millisecond)
}
