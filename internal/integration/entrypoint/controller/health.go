package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() bool

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// HealthController reports liveness together with the state of the backing stores.
type HealthController struct {
	database HealthChecker
	redis    HealthChecker
}

// NewHealthController builds the controller. A nil redis checker reports redis as "disabled".
func NewHealthController(database, redis HealthChecker) *HealthController {
	return &HealthController{database: database, redis: redis}
}

// Check handles GET /health. It always answers 200 so the process stays
// routable while a dependency recovers.
func (h *HealthController) Check(c *gin.Context) {
	redis := "disabled"
	if h.redis != nil {
		redis = probe(h.redis)
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  probe(h.database),
		Redis:     redis,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func probe(check HealthChecker) string {
	if check != nil && check() {
		return "connected"
	}
	return "disconnected"
}
