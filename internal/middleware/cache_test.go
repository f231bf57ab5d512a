package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cricket-ticket-booking/internal/config"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          30 * time.Second,
		KeyStrategy:  "route_query",
		Prefix:       "catalog",
		MaxBodyBytes: 1 << 20,
	}
}

func catalogContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	c.SetPath("/v1/matches")
	return c, rec
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"total":0}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, got)
	assert.Equal(t, `{"total":0}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	cfg := testCacheConfig()
	a, _ := catalogContext("/v1/matches?q=mumbai")
	b, _ := catalogContext("/v1/matches?q=delhi")
	assert.NotEqual(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, b))

	cfg.KeyStrategy = "route"
	assert.Equal(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, b))
}

func TestRedisCacheHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cfg := testCacheConfig()
	c, rec := catalogContext("/v1/matches?category=league")
	key := cacheKeyFrom(cfg, c)

	payload, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, []byte(`{"items":[]}`))
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal(string(payload))

	h := NewRedisCache(cfg, db)(func(c echo.Context) error {
		t.Fatal("handler must not run on a cache hit")
		return nil
	})
	require.NoError(t, h(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"items":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheMissStoresResponse(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cfg := testCacheConfig()
	c, rec := catalogContext("/v1/matches")
	key := cacheKeyFrom(cfg, c)

	payload, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, []byte(`{"items":[]}`))
	require.NoError(t, err)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSetEx(key, payload, cfg.TTL).SetVal("OK")

	h := NewRedisCache(cfg, db)(func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/json", []byte(`{"items":[]}`))
	})
	require.NoError(t, h(c))

	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, `{"items":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheSkipsErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cfg := testCacheConfig()
	c, rec := catalogContext("/v1/matches/99")
	mock.ExpectGet(cacheKeyFrom(cfg, c)).RedisNil()

	h := NewRedisCache(cfg, db)(func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheDisabled(t *testing.T) {
	cfg := testCacheConfig()
	cfg.Enabled = false
	c, rec := catalogContext("/v1/matches")
	called := false
	h := NewRedisCache(cfg, nil)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

// memStore is an in-memory CacheStore.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (m *memStore) SetEx(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value.([]byte)...)
	return redis.NewStatusResult("OK", nil)
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRedisCacheSeparatesPathParams(t *testing.T) {
	store := newMemStore()
	e := echo.New()
	e.GET("/v1/matches/:id", func(c echo.Context) error {
		if c.Param("id") == "99" {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id")})
	}, NewRedisCache(testCacheConfig(), store))

	rec := serve(e, "/v1/matches/1")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"id":"1"}`, rec.Body.String())

	rec = serve(e, "/v1/matches/2")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"id":"2"}`, rec.Body.String())

	rec = serve(e, "/v1/matches/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, "/v1/matches/2")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"id":"2"}`, rec.Body.String())
	assert.Equal(t, 2, store.len())
}

func TestRedisCacheSkipsOversizedBodies(t *testing.T) {
	store := newMemStore()
	cfg := testCacheConfig()
	cfg.MaxBodyBytes = 8
	e := echo.New()
	e.GET("/v1/matches", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/json", []byte(`{"items":["a","b","c"]}`))
	}, NewRedisCache(cfg, store))

	for i := 0; i < 2; i++ {
		rec := serve(e, "/v1/matches")
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
		assert.Equal(t, `{"items":["a","b","c"]}`, rec.Body.String())
	}
	assert.Zero(t, store.len())
}
