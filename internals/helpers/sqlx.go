package helper

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// SQLX wraps gorm's pool in a sqlx handle for read-model queries.
// The driver name only picks the bind style: $n for postgres, ? for sqlite.
func SQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlx: underlying pool: %w", err)
	}
	driver := "sqlite3"
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		driver = "pgx"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}
