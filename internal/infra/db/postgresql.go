// Package db opens the gorm connection and owns the schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

const (
	connectTimeout   = 5 * time.Second
	healthTimeout    = 2 * time.Second
	slowQueryWarning = 500 * time.Millisecond
)

// Database is the shared gorm handle.
type Database struct {
	db *gorm.DB
}

// NewPostgresConnection opens and pings PostgreSQL. Driver errors are
// translated so repositories can match gorm.ErrDuplicatedKey.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:         queryLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	d := &Database{db: gdb}
	err = d.withPool(func(pool *sql.DB) error {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
		pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		return ping(pool, connectTimeout)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return d, nil
}

// queryLogger reports slow queries and errors through slog; everything else is silent.
func queryLogger() logger.Interface {
	return logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             slowQueryWarning,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Wrap adopts an already opened connection, as tests do with sqlite.
func Wrap(gdb *gorm.DB) *Database {
	return &Database{db: gdb}
}

// DB returns the gorm handle.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// HealthCheck pings with a short timeout. It backs GET /health.
func (d *Database) HealthCheck() bool {
	err := d.withPool(func(pool *sql.DB) error { return ping(pool, healthTimeout) })
	if err != nil {
		slog.Error("Database health check failed", "error", err)
		return false
	}
	return true
}

// Close closes the connection pool.
func (d *Database) Close() error {
	err := d.withPool(func(pool *sql.DB) error { return pool.Close() })
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	slog.Info("Database connection closed")
	return nil
}

// Models lists every persisted model; users come first because the other
// tables reference them.
func Models() []any {
	return []any{
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.PasswordResetTokenModel{},
		&model.TransactionModel{},
		&model.EmailJobModel{},
	}
}

// Migrate creates or updates the tables of every model.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

func (d *Database) withPool(fn func(*sql.DB) error) error {
	pool, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get connection pool: %w", err)
	}
	return fn(pool)
}

func ping(pool *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
