// Command api serves the Expense Tracker HTTP API and runs its background workers.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/infra/cache"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/events"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited properly")
}

func run() error {
	// A .env file is optional; real deployments use the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogger(cfg.Server.LogLevel)

	slog.Info("Starting Expense Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	if err := database.Migrate(); err != nil {
		return err
	}

	redisClient, err := openRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	exporter, closeExporter := openExporter(cfg)
	defer closeExporter()

	injector, err := dependency.NewInjector(cfg, dependency.Dependencies{
		DB:            database.DB(),
		Redis:         redisClient,
		EventExporter: exporter,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      injector.Router.Setup(cfg.Server.Environment),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		// Summary streams close with the root context instead of holding up Shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(gCtx, srv, cfg) })
	if cfg.Worker.EmailEnabled {
		g.Go(func() error { return injector.EmailWorker.Run(gCtx) })
	}
	if cfg.Worker.RateLimitCleanup > 0 {
		g.Go(func() error {
			injector.RateLimiter.StartCleanup(gCtx, cfg.Worker.RateLimitCleanup)
			return nil
		})
	}
	return g.Wait()
}

// setupLogger installs a JSON slog handler. The level was checked by Validate.
func setupLogger(level string) {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(level))
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

// openRedis returns nil when Redis is not configured; change notifications
// then stay inside this process.
func openRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled() {
		slog.Info("REDIS_URL not set, change notifications are in-process only")
		return nil, nil
	}
	return cache.NewRedisClient(ctx, &cfg.Redis)
}

// openExporter connects the AMQP exporter. An unreachable broker is not fatal.
func openExporter(cfg *config.Config) (adapter.TransactionEventPublisher, func()) {
	noop := func() {}
	if !cfg.AMQP.Enabled() {
		return nil, noop
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		slog.Warn("AMQP unavailable, transaction events will not be exported", "error", err)
		return nil, noop
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			slog.Error("Failed to close AMQP connection", "error", err)
		}
	}
}

// serve runs srv until ctx ends, then drains it within the shutdown timeout.
func serve(ctx context.Context, srv *http.Server, cfg *config.Config) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
