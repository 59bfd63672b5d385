package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
	"github.com/careerpath/admin-backend/internal/response"
	"github.com/careerpath/admin-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}

// ─── Auth ───────────────────────────────────────────────────────────

func newAuthRouter(t *testing.T) (*gin.Engine, *service.JWTVerifier) {
	t.Helper()
	store := docstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, config.Collection.Users, "admin", map[string]any{"role": model.RoleAdmin}))
	require.NoError(t, store.Set(ctx, config.Collection.Users, "student", map[string]any{"role": "student"}))

	verifier := service.NewJWTVerifier("secret", time.Hour)
	authService := service.NewAuthService(verifier, repository.NewUserRepository(store))

	r := gin.New()
	r.GET("/admin", Authenticate(authService), RequireAdmin(authService), func(c *gin.Context) {
		c.String(http.StatusOK, GetAdmin(c).ID)
	})
	return r, verifier
}

func TestAuth(t *testing.T) {
	r, verifier := newAuthRouter(t)
	token := func(uid string) string {
		s, err := verifier.Issue(uid, "")
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name       string
		header     string
		query      string
		upgrade    bool
		wantStatus int
		wantCode   response.ErrCode
	}{
		{name: "missing", wantStatus: http.StatusUnauthorized, wantCode: response.ErrTokenRequired},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: response.ErrTokenRequired},
		{name: "invalid", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantCode: response.ErrTokenInvalid},
		{name: "no profile", header: "Bearer " + token("ghost"), wantStatus: http.StatusNotFound, wantCode: response.ErrAccountNotFound},
		{name: "not admin", header: "Bearer " + token("student"), wantStatus: http.StatusForbidden, wantCode: response.ErrAdminAccessOnly},
		{name: "admin", header: "Bearer " + token("admin"), wantStatus: http.StatusOK},
		{name: "query token ignored on plain request", query: token("admin"), wantStatus: http.StatusUnauthorized, wantCode: response.ErrTokenRequired},
		{name: "query token on upgrade", query: token("admin"), upgrade: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/admin"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.upgrade {
				req.Header.Set("Upgrade", "websocket")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
			} else {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

// ─── Idempotency ────────────────────────────────────────────────────

func newIdempotentRouter(t *testing.T, status int) (*gin.Engine, *miniredis.Miniredis, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	r := gin.New()
	r.POST("/things", Idempotency(rdb, time.Hour), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": calls})
	})
	return r, mr, &calls
}

func post(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccess(t *testing.T) {
	r, _, calls := newIdempotentRouter(t, http.StatusCreated)

	first := post(r, "k1")
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(HeaderIdempotentReplayed))

	second := post(r, "k1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(HeaderIdempotentReplayed))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls)

	post(r, "k2")
	post(r, "")
	assert.Equal(t, 3, *calls)
}

func TestIdempotency_FailureReleasesKey(t *testing.T) {
	r, mr, calls := newIdempotentRouter(t, http.StatusConflict)

	post(r, "k1")
	assert.False(t, mr.Exists(config.CacheKey.IdempotencyKey("", http.MethodPost, "/things", "k1")))

	post(r, "k1")
	assert.Equal(t, 2, *calls)
}

func TestIdempotency_InFlight(t *testing.T) {
	r, mr, calls := newIdempotentRouter(t, http.StatusCreated)
	require.NoError(t, mr.Set(config.CacheKey.IdempotencyKey("", http.MethodPost, "/things", "k1"), "pending"))

	w := post(r, "k1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, response.ErrIdempotencyInFlight, errorCode(t, w))
	assert.Zero(t, *calls)
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	r, _, calls := newIdempotentRouter(t, http.StatusCreated)

	w := post(r, strings.Repeat("k", maxIdempotencyKeyLen+1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, *calls)
}

func TestIdempotency_RedisDownFailsOpen(t *testing.T) {
	r, mr, calls := newIdempotentRouter(t, http.StatusCreated)
	mr.Close()

	w := post(r, "k1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
}

// ─── Rate limiting ──────────────────────────────────────────────────

func TestRateLimiter_Allow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(ctx, 2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("1.1.1.1"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, time.Hour)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		return w
	}
	assert.Equal(t, http.StatusOK, do().Code)
	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, response.ErrRateLimitExceeded, errorCode(t, w))
}

// ─── Timeout and caching ────────────────────────────────────────────

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
		c.String(http.StatusGatewayTimeout, c.Request.Context().Err().Error())
	})
	r.GET("/ws", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.String(http.StatusOK, "%v", ok)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, context.DeadlineExceeded.Error(), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Upgrade", "websocket")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "false", w.Body.String())
}

func TestNoStore(t *testing.T) {
	r := gin.New()
	r.GET("/", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

// ─── Brotli ─────────────────────────────────────────────────────────

func TestBrotli(t *testing.T) {
	large := strings.Repeat("career ", 500)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	get := func(path, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", accept)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get("/large", "gzip, br;q=0.9")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
	body, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, large, string(body))

	w = get("/small", "br")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())

	w = get("/large", "gzip")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, large, w.Body.String())
}

func TestAcceptsBrotli(t *testing.T) {
	for header, want := range map[string]bool{
		"":               false,
		"gzip":           false,
		"br":             true,
		"gzip, BR;q=0.5": true,
		"brotli":         false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", header)
		assert.Equal(t, want, acceptsBrotli(req), header)
	}
}
