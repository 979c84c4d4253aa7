package database

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"
)

// UseTestDB points DB at a fresh in-memory sqlite database with foreign keys on,
// migrates it, and restores the previous DB when the test ends.
func UseTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	// Each new connection to a shared in-memory database must see the same data.
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	prev := DB
	DB = db
	t.Cleanup(func() {
		DB = prev
		_ = sqlDB.Close()
	})
	return db
}
