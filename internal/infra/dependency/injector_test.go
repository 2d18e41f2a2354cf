package dependency

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

func newTestEngine(t *testing.T, withRedis bool) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Wrap(gdb).Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment: "test",
			RateLimit:   config.RateLimitConfig{Enabled: true, MaxAttempts: 2, Window: time.Minute},
		},
		JWT:    config.JWTConfig{Secret: "test-secret"},
		Email:  config.EmailConfig{AppBaseURL: "http://localhost:5173"},
		Worker: config.WorkerConfig{EmailPollInterval: time.Second, EmailBatchSize: 5},
	}

	deps := Dependencies{DB: gdb, EmailSender: email.NewLogSender()}
	if withRedis {
		server := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: server.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		deps.Redis = client
	}

	injector, err := NewInjector(cfg, deps)
	if err != nil {
		t.Fatalf("failed to build injector: %v", err)
	}
	if injector.EmailWorker == nil || injector.RateLimiter == nil {
		t.Fatal("expected background components to be wired")
	}

	return injector.Router.Setup(cfg.Server.Environment)
}

func request(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestInjector_EndToEnd(t *testing.T) {
	for _, withRedis := range []bool{false, true} {
		t.Run(fmt.Sprintf("redis=%v", withRedis), func(t *testing.T) {
			engine := newTestEngine(t, withRedis)

			w := request(t, engine, http.MethodGet, "/health", "", nil)
			var health map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &health)
			wantRedis := "disabled"
			if withRedis {
				wantRedis = "connected"
			}
			if health["database"] != "connected" || health["redis"] != wantRedis {
				t.Errorf("unexpected health: %v", health)
			}

			w = request(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
				"email":    "ana@example.com",
				"name":     "Ana",
				"password": "secret123",
			})
			if w.Code != http.StatusCreated {
				t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
			}
			var authResp dto.AuthResponse
			_ = json.Unmarshal(w.Body.Bytes(), &authResp)

			if w := request(t, engine, http.MethodGet, "/api/v1/summary", "", nil); w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401 without token, got %d", w.Code)
			}

			w = request(t, engine, http.MethodGet, "/api/v1/users/me", authResp.AccessToken, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("me: expected 200, got %d", w.Code)
			}

			w = request(t, engine, http.MethodPost, "/api/v1/transactions", authResp.AccessToken, map[string]any{
				"amount":   25.5,
				"category": "Food",
				"type":     "expense",
				"date":     "2024-05-01",
			})
			if w.Code != http.StatusCreated {
				t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
			}

			w = request(t, engine, http.MethodGet, "/api/v1/summary", authResp.AccessToken, nil)
			var summary dto.SummaryResponse
			_ = json.Unmarshal(w.Body.Bytes(), &summary)
			if summary.TotalExpenses != "25.50" || summary.Balance != "-25.50" {
				t.Errorf("unexpected summary: %+v", summary)
			}
		})
	}
}

func TestInjector_SignInRateLimit(t *testing.T) {
	engine := newTestEngine(t, false)

	body := map[string]string{"email": "nobody@example.com", "password": "whatever1"}
	for i := 0; i < 2; i++ {
		if w := request(t, engine, http.MethodPost, "/api/v1/auth/login", "", body); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, w.Code)
		}
	}
	if w := request(t, engine, http.MethodPost, "/api/v1/auth/login", "", body); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after limit, got %d", w.Code)
	}

	// Other routes keep their own budget.
	w := request(t, engine, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "nobody@example.com"})
	if w.Code != http.StatusOK {
		t.Errorf("expected forgot-password to be allowed, got %d", w.Code)
	}
}
