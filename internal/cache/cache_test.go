package cache

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegematch/college-match-finder/internal/monitoring"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache(time.Minute)

	key := c.generateKey("some-request-body")
	c.Set(key, []byte("response"))

	data, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, []byte("response"), data)

	_, found = c.Get(c.generateKey("different-body"))
	assert.False(t, found)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("key", []byte("data"))
	_, found := c.Get("key")
	require.True(t, found)

	time.Sleep(25 * time.Millisecond)

	_, found = c.Get("key")
	assert.False(t, found)
}

func TestCache_ClearAndSize(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	assert.Equal(t, 2, c.Size())

	c.Delete("a")
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCache_Stats(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []byte("1"))

	stats := c.Stats()
	assert.Equal(t, 1, stats["total_items"])
	assert.Equal(t, 1, stats["active_items"])
	assert.Equal(t, 60.0, stats["ttl_seconds"])
}

func newCachedRouter(c *Cache, metrics *monitoring.Metrics, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(c.Middleware(metrics))
	r.POST("/match", func(ctx *gin.Context) {
		*hits++
		ctx.JSON(http.StatusOK, gin.H{"count": 1})
	})
	r.POST("/other", func(ctx *gin.Context) {
		*hits++
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestCache_MiddlewareCachesMatchResponses(t *testing.T) {
	c := NewCache(time.Minute)
	metrics := monitoring.NewMetrics()
	hits := 0
	r := newCachedRouter(c, metrics, &hits)

	body := []byte(`{"home_state":"CA"}`)

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodPost, "/match", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, 1, hits)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodPost, "/match", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, 1, hits, "identical request body served from cache")
	assert.Equal(t, w1.Body.String(), w2.Body.String())

	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest(http.MethodPost, "/match", bytes.NewReader([]byte(`{"home_state":"TX"}`))))
	require.Equal(t, http.StatusOK, w3.Code)
	assert.Equal(t, 2, hits, "different body misses the cache")
}

func TestCache_MiddlewareSkipsOtherRoutes(t *testing.T) {
	c := NewCache(time.Minute)
	metrics := monitoring.NewMetrics()
	hits := 0
	r := newCachedRouter(c, metrics, &hits)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/other", bytes.NewReader([]byte(`{}`))))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2, hits, "non-match routes are never cached")
	assert.Equal(t, 0, c.Size())
}
