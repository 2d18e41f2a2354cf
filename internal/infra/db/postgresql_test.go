package db

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDatabase_MigrateAndHealth(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	database := Wrap(gdb)

	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	for _, table := range []string{"users", "refresh_tokens", "password_reset_tokens", "transactions", "email_jobs"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	if !database.HealthCheck() {
		t.Error("expected healthy database")
	}

	if err := database.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if database.HealthCheck() {
		t.Error("expected closed database to be unhealthy")
	}
}
