package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-backend/internal/auth"
	"github.com/shareit/shareit-backend/internal/booking"
	"github.com/shareit/shareit-backend/internal/config"
	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/request"
	"github.com/shareit/shareit-backend/internal/user"
)

func newTestRouter(cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := user.NewService(user.NewMemoryRepository())
	items := item.NewMemoryRepository()
	bookings := booking.NewService(booking.NewMemoryRepository(items, users), items, users)

	cfg.Logger = zerolog.Nop()
	cfg.UserService = users
	cfg.BookingService = bookings
	cfg.RequestService = request.NewService(request.NewMemoryRepository(), users, items)
	cfg.ItemService = item.NewService(items, users, bookings, cfg.RequestService)
	return NewRouter(cfg)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(Config{})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	r = newTestRouter(Config{Health: func(context.Context) error { return errors.New("db down") }})
	w = serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(Config{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(Config{})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdentityRequiredOnBookings(t *testing.T) {
	r := newTestRouter(Config{})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/bookings", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Item search is public.
	w = serve(r, httptest.NewRequest(http.MethodGet, "/items/search?text=x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRateLimitPerCaller(t *testing.T) {
	r := newTestRouter(Config{RateLimit: config.RateLimitConfig{RPS: 0.001, Burst: 2}})

	get := func(path, caller string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if caller != "" {
			req.Header.Set(auth.HeaderUserID, caller)
		}
		return serve(r, req).Code
	}

	assert.NotEqual(t, http.StatusTooManyRequests, get("/bookings", "1"))
	assert.NotEqual(t, http.StatusTooManyRequests, get("/bookings", "1"))
	assert.Equal(t, http.StatusTooManyRequests, get("/bookings", "1"))

	// Another caller has its own bucket.
	assert.NotEqual(t, http.StatusTooManyRequests, get("/bookings", "2"))

	// Public routes are keyed by client IP, independently of any header.
	assert.Equal(t, http.StatusOK, get("/users", "1"))
	assert.Equal(t, http.StatusOK, get("/users", "7"))
	assert.Equal(t, http.StatusTooManyRequests, get("/users", "8"))

	// Health checks are never limited.
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	}
}

func TestRateLimitKeyedByTokenInJWTMode(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	r := newTestRouter(Config{
		Identity:  auth.AuthRequired(jwtManager),
		RateLimit: config.RateLimitConfig{RPS: 0.001, Burst: 2},
	})

	token, err := jwtManager.GenerateAccessToken(1)
	require.NoError(t, err)
	other, err := jwtManager.GenerateAccessToken(2)
	require.NoError(t, err)

	get := func(token, header string) int {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set(auth.HeaderUserID, header)
		return serve(r, req).Code
	}

	assert.NotEqual(t, http.StatusTooManyRequests, get(token, "10"))
	assert.NotEqual(t, http.StatusTooManyRequests, get(token, "11"))
	// Rotating the header does not buy a fresh bucket.
	assert.Equal(t, http.StatusTooManyRequests, get(token, "12"))

	assert.NotEqual(t, http.StatusTooManyRequests, get(other, "12"))
}

func TestRateLimiterEvictsIdleBuckets(t *testing.T) {
	l := newRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1})
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("user:1"))
	assert.False(t, l.allow("user:1"))
	assert.True(t, l.allow("user:2"))
	assert.Equal(t, 2, l.size())

	now = now.Add(l.idleTTL / 2)
	assert.True(t, l.allow("user:2"))

	now = now.Add(l.idleTTL / 2)
	assert.True(t, l.allow("user:3"))
	// user:1 went idle and was dropped. user:2 was seen half a period ago.
	assert.Equal(t, 2, l.size())
	assert.Equal(t, minIdleTTL, l.idleTTL)
}
