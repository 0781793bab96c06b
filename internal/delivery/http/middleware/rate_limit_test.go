package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreWindowBoundary(t *testing.T) {
	store := newMemoryStore()
	now := time.Now()
	const key = "form:contact:203.0.113.9"

	t.Run("Should allow up to the limit with decreasing remaining", func(t *testing.T) {
		for i, wantRemaining := range []int{2, 1, 0} {
			result := store.check(key, 3, time.Minute, now)
			assert.True(t, result.Allowed, "request %d", i+1)
			assert.Equal(t, wantRemaining, result.Remaining, "request %d", i+1)
		}
	})

	t.Run("Should deny the next request within the window", func(t *testing.T) {
		result := store.check(key, 3, time.Minute, now.Add(10*time.Second))
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
		assert.Contains(t, result.Message, "Rate limit exceeded")
		assert.Contains(t, result.Message, "seconds")
	})

	t.Run("Should start a fresh window after the reset", func(t *testing.T) {
		result := store.check(key, 3, time.Minute, now.Add(time.Minute+time.Second))
		assert.True(t, result.Allowed)
		assert.Equal(t, 2, result.Remaining)
	})
}

func TestMemoryStoreKeyIsolation(t *testing.T) {
	store := newMemoryStore()
	now := time.Now()

	// Exhaust one address
	for i := 0; i < 3; i++ {
		store.check("form:contact:198.51.100.1", 3, time.Minute, now)
	}
	denied := store.check("form:contact:198.51.100.1", 3, time.Minute, now)
	assert.False(t, denied.Allowed)

	// A different address is unaffected
	other := store.check("form:contact:198.51.100.2", 3, time.Minute, now)
	assert.True(t, other.Allowed)
	assert.Equal(t, 2, other.Remaining)

	// As is the same address on a different form
	otherForm := store.check("form:subsidy-support:198.51.100.1", 2, time.Minute, now)
	assert.True(t, otherForm.Allowed)
}

func TestMemoryStoreLazySweep(t *testing.T) {
	store := newMemoryStore()
	now := time.Now()

	store.check("form:contact:a", 3, time.Minute, now)
	store.check("form:contact:b", 3, time.Minute, now)
	assert.Len(t, store.windows, 2)

	// Any later check purges every expired window first
	store.check("form:contact:c", 3, time.Minute, now.Add(2*time.Minute))
	assert.Len(t, store.windows, 1)
}

func TestMemoryStoreDenialDoesNotExtendWindow(t *testing.T) {
	store := newMemoryStore()
	now := time.Now()
	const key = "form:contact:x"

	first := store.check(key, 1, time.Minute, now)
	assert.True(t, first.Allowed)

	denied := store.check(key, 1, time.Minute, now.Add(30*time.Second))
	assert.False(t, denied.Allowed)
	assert.Equal(t, first.ResetAt, denied.ResetAt)
}

func TestClientAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", "/api/contact", nil)
		return c
	}

	t.Run("Should take the first forwarded-for entry", func(t *testing.T) {
		c := newCtx()
		c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		assert.Equal(t, "203.0.113.9", clientAddress(c))
	})

	t.Run("Should fall back to the real-IP header", func(t *testing.T) {
		c := newCtx()
		c.Request.Header.Set("X-Real-IP", "198.51.100.7")
		assert.Equal(t, "198.51.100.7", clientAddress(c))
	})

	t.Run("Should default to unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", clientAddress(newCtx()))
	})

	t.Run("Should strip unsafe characters from the header value", func(t *testing.T) {
		c := newCtx()
		c.Request.Header.Set("X-Real-IP", "1.2.3.4<evil>")
		assert.Equal(t, "1.2.3.4evil", clientAddress(c))
	})
}
