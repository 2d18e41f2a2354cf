// Package router maps the HTTP API onto its controllers.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Handlers is everything the routes dispatch to.
type Handlers struct {
	Health       *controller.HealthController
	Auth         *controller.AuthController
	User         *controller.UserController
	Transaction  *controller.TransactionController
	Summary      *controller.SummaryController
	Category     *controller.CategoryController
	SignInLimit  *middleware.RateLimiter
	RequireLogin *middleware.AuthMiddleware
}

// Router owns the gin engine serving the API.
type Router struct {
	h      Handlers
	engine *gin.Engine
}

// NewRouter creates a new Router instance.
func NewRouter(h Handlers) *Router {
	return &Router{h: h}
}

// Setup builds the engine. Request logging is skipped in the "test" environment.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(middleware.RequestLog())
	}

	r.engine.GET("/health", r.h.Health.Check)
	r.mountAPI(r.engine.Group("/api/v1"))
	return r.engine
}

func (r *Router) mountAPI(v1 *gin.RouterGroup) {
	h := r.h
	limited := h.SignInLimit.Middleware()

	v1.GET("/health", h.Health.Check)

	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", limited, h.Auth.Login)
	auth.POST("/google", limited, h.Auth.GoogleSignIn)
	auth.POST("/forgot-password", limited, h.Auth.ForgotPassword)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/logout", h.Auth.Logout)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	private := v1.Group("", h.RequireLogin.Authenticate())

	private.GET("/users/me", h.User.Me)
	private.DELETE("/users/me", limited, h.User.DeleteAccount)

	tx := private.Group("/transactions")
	tx.GET("", h.Transaction.List)
	tx.POST("", h.Transaction.Create)
	tx.POST("/bulk-delete", h.Transaction.BulkDelete)
	tx.POST("/bulk-categorize", h.Transaction.BulkCategorize)
	tx.GET("/:id", h.Transaction.Get)
	tx.PATCH("/:id", h.Transaction.Update)
	tx.DELETE("/:id", h.Transaction.Delete)

	private.GET("/summary", h.Summary.Get)
	private.GET("/summary/stream", h.Summary.Stream)

	private.GET("/categories", h.Category.List)
	private.POST("/categories/suggest", h.Category.Suggest)
}
