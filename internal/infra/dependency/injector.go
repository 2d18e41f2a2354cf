// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
	"github.com/expense-tracker/backend/internal/infra/cache"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/events"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Dependencies are the external resources the application is built on.
// DB is required. Every other field is optional: a nil Redis keeps change
// notifications in-process, a nil EventExporter disables exporting, and nil
// external adapters are built from the configuration.
type Dependencies struct {
	DB                *gorm.DB
	Redis             *redis.Client
	EventExporter     adapter.TransactionEventPublisher
	EmailSender       adapter.EmailSender
	IdentityVerifier  adapter.IdentityVerifier
	CategorySuggester adapter.CategorySuggester
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
	RateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, deps Dependencies) (*Injector, error) {
	database := db.Wrap(deps.DB)

	// Create repositories
	userRepo := persistence.NewUserRepository(deps.DB)
	tokenRepo := persistence.NewTokenRepository(deps.DB)
	transactionRepo := persistence.NewTransactionRepository(deps.DB)
	emailJobRepo := persistence.NewEmailJobRepository(deps.DB)

	// Create change notification plumbing
	var (
		notifier interface {
			adapter.TransactionEventPublisher
			adapter.TransactionEventSubscriber
		}
		redisHealthChecker controller.HealthChecker
	)
	if deps.Redis != nil {
		notifier = events.NewRedisNotifier(deps.Redis)
		redisHealthChecker = cache.HealthChecker(deps.Redis)
	} else {
		notifier = events.NewBroker(events.DefaultSubscriberBuffer)
	}
	publisher := events.NewMultiPublisher(notifier, deps.EventExporter)

	// Create adapters/services
	passwords := adapters.NewPasswordHasher()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewResetTokenService(tokenRepo)
	mailer := email.NewService(emailJobRepo, cfg.Email.AppBaseURL)

	identityVerifier := deps.IdentityVerifier
	if identityVerifier == nil {
		identityVerifier = adapters.NewGoogleIdentityVerifier(cfg.Google.ClientID)
	}

	categorySuggester := deps.CategorySuggester
	if categorySuggester == nil {
		categorySuggester = adapters.NewGeminiCategorySuggester(cfg.Gemini.APIKey, cfg.Gemini.Model)
	}

	emailSender := deps.EmailSender
	if emailSender == nil {
		sender, err := newEmailSender(&cfg.Email)
		if err != nil {
			return nil, err
		}
		emailSender = sender
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(emailJobRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Worker.EmailPollInterval,
		BatchSize:    cfg.Worker.EmailBatchSize,
		Retention:    cfg.Worker.EmailRetention,
	})

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwords, tokenService, mailer, cfg.Email.AppBaseURL)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwords, tokenService)
	googleSignInUseCase := auth.NewGoogleSignInUseCase(userRepo, identityVerifier, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, mailer, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwords, resetTokenService, tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwords, tokenService, transactionRepo, publisher)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, publisher)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, publisher)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, publisher)
	bulkDeleteTransactionsUseCase := transaction.NewBulkDeleteTransactionsUseCase(transactionRepo, publisher)
	bulkCategorizeTransactionsUseCase := transaction.NewBulkCategorizeTransactionsUseCase(transactionRepo, publisher)

	// Create summary use cases
	getSummaryUseCase := summary.NewGetSummaryUseCase(transactionRepo)
	watchSummaryUseCase := summary.NewWatchSummaryUseCase(getSummaryUseCase, notifier)

	// Create category use cases
	listCategoriesUseCase := category.NewListSuggestedCategoriesUseCase()
	suggestCategoryUseCase := category.NewSuggestCategoryUseCase(categorySuggester)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck, redisHealthChecker)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		googleSignInUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	userController := controller.NewUserController(getCurrentUserUseCase, deleteAccountUseCase)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		bulkDeleteTransactionsUseCase,
		bulkCategorizeTransactionsUseCase,
	)

	summaryController := controller.NewSummaryController(getSummaryUseCase, watchSummaryUseCase)

	categoryController := controller.NewCategoryController(listCategoriesUseCase, suggestCategoryUseCase)

	// Create middleware
	signInRateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Enabled:        cfg.Server.RateLimit.Enabled,
		MaxAttempts:    cfg.Server.RateLimit.MaxAttempts,
		WindowDuration: cfg.Server.RateLimit.Window,
	})
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(router.Handlers{
		Health:       healthController,
		Auth:         authController,
		User:         userController,
		Transaction:  transactionController,
		Summary:      summaryController,
		Category:     categoryController,
		SignInLimit:  signInRateLimiter,
		RequireLogin: authMiddleware,
	})

	return &Injector{
		Config:      cfg,
		DB:          deps.DB,
		Router:      r,
		EmailWorker: emailWorker,
		RateLimiter: signInRateLimiter,
	}, nil
}

func newEmailSender(cfg *config.EmailConfig) (adapter.EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		return email.NewLogSender(), nil
	}

	sender, err := email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail, cfg.ResendBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create email sender: %w", err)
	}
	return sender, nil
}
