package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/sizzer/salon-booking/internal/config"
)

func TestRedisCacheHitServesStoredResponse(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}

	calls := 0
	e := echo.New()
	e.GET("/salons", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"call": calls})
	}, NewRedisCache(cfg, rdb))

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/salons", nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/salons", nil))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls, "handler should run once")
}

func TestRedisCacheKeyVariesWithQuery(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "cache",
	}

	calls := 0
	e := echo.New()
	e.GET("/salons", func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, strconv.Itoa(calls))
	}, NewRedisCache(cfg, rdb))

	for _, q := range []string{"?city=Austin", "?city=Boston"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salons"+q, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, calls, "different queries must not share entries")
}

func TestRedisCacheSkipsUncachedMethods(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "cache",
	}

	e := echo.New()
	e.POST("/salons", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, NewRedisCache(cfg, rdb))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/salons", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
