package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

type stubTokenService struct {
	adapter.TokenService
	valid  string
	userID uuid.UUID
}

func (s *stubTokenService) ParseAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != s.valid {
		return nil, errors.New("invalid token")
	}
	return &adapter.TokenClaims{UserID: s.userID, Email: "user@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func newAuthRouter(service adapter.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(service).Authenticate(), func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "email": email})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	service := &stubTokenService{valid: "good-token", userID: uuid.New()}
	router := newAuthRouter(service)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusOK},
		{name: "invalid token", header: "Bearer bad-token", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "query token fallback", query: "?access_token=good-token", wantStatus: http.StatusOK},
		{name: "invalid query token", query: "?access_token=bad-token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(rl *RateLimiter) *gin.Engine {
		router := gin.New()
		router.POST("/login", rl.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	hit := func(router *gin.Engine) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("blocks after max attempts", func(t *testing.T) {
		router := newRouter(NewRateLimiter(RateLimiterConfig{Enabled: true, MaxAttempts: 2, WindowDuration: time.Minute}))

		for i := 0; i < 2; i++ {
			if code := hit(router); code != http.StatusOK {
				t.Fatalf("attempt %d: expected 200, got %d", i+1, code)
			}
		}
		if code := hit(router); code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", code)
		}
	})

	t.Run("disabled limiter never blocks", func(t *testing.T) {
		router := newRouter(NewRateLimiter(RateLimiterConfig{Enabled: false, MaxAttempts: 1}))
		for i := 0; i < 5; i++ {
			if code := hit(router); code != http.StatusOK {
				t.Fatalf("attempt %d: expected 200, got %d", i+1, code)
			}
		}
	})

	t.Run("budget refills over the window", func(t *testing.T) {
		rl := NewRateLimiter(RateLimiterConfig{Enabled: true, MaxAttempts: 1, WindowDuration: 10 * time.Millisecond})
		if !rl.allow("key") {
			t.Fatal("expected first attempt to pass")
		}
		if rl.allow("key") {
			t.Fatal("expected second attempt to be blocked")
		}
		time.Sleep(20 * time.Millisecond)
		if !rl.allow("key") {
			t.Error("expected attempt after window to pass")
		}

		time.Sleep(20 * time.Millisecond)
		rl.Cleanup()
		rl.mu.Lock()
		remaining := len(rl.visitors)
		rl.mu.Unlock()
		if remaining != 0 {
			t.Errorf("expected cleanup to remove idle visitors, got %d", remaining)
		}
	})

	t.Run("rejection carries retry after", func(t *testing.T) {
		router := newRouter(NewRateLimiter(RateLimiterConfig{Enabled: true, MaxAttempts: 2, WindowDuration: time.Minute}))
		hit(router)
		hit(router)

		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "30" {
			t.Errorf("expected 429 with Retry-After 30, got %d %q", w.Code, w.Header().Get("Retry-After"))
		}
	})

	t.Run("clients are limited separately", func(t *testing.T) {
		rl := NewRateLimiter(RateLimiterConfig{Enabled: true, MaxAttempts: 1, WindowDuration: time.Minute})
		if !rl.allow("10.0.0.1 /login") || !rl.allow("10.0.0.2 /login") {
			t.Error("expected each client to get its own budget")
		}
	})
}

func TestRequestLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLog())
	router.GET("/teapot", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	for _, path := range []string{"/teapot", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if path == "/teapot" && w.Code != http.StatusTeapot {
			t.Errorf("expected handler status to pass through, got %d", w.Code)
		}
		if path == "/missing" && w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for unknown route, got %d", w.Code)
		}
	}
}
