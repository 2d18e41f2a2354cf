package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is a shared in-memory SQLite database migrated with the application models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens and migrates the database on first use and returns the same
// instance afterwards. models maps table names to model pointers.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	// One connection keeps every session on the same in-memory database.
	conn, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	conn.SetMaxOpenConns(1)

	gdb, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}

	list := make([]any, 0, len(models))
	for _, m := range models {
		list = append(list, m)
	}
	if err := gdb.AutoMigrate(list...); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &Db{DbConn: gdb, models: models}
}

// Reset deletes every row, soft-deleted ones included.
func (d *Db) Reset() error {
	for table, m := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Model returns the model registered for table.
func (d *Db) Model(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
