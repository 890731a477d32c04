// Package storagetest поднимает SQLite в памяти со схемой сервиса для тестов репозиториев.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/m04kA/StudioBookingService/internal/infra/storage/schema"
	"github.com/m04kA/StudioBookingService/pkg/psqlbuilder"
)

var dbCounter atomic.Int64

// NewSQLite открывает отдельную базу в памяти и применяет схему
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:storagetest_%d?mode=memory&cache=shared&_foreign_keys=on", dbCounter.Add(1))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := schema.ApplySQLite(context.Background(), db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// Builder билдер запросов для SQLite
func Builder() psqlbuilder.Builder {
	return psqlbuilder.ForDriver("sqlite3")
}

// SeedClass вставляет активный класс напрямую через SQL и возвращает его ID.
// capacity <= 0 оставляет max_capacity пустым.
func SeedClass(t *testing.T, db *sql.DB, name string, capacity int) string {
	t.Helper()

	id := uuid.NewString()
	var capValue interface{}
	if capacity > 0 {
		capValue = capacity
	}
	_, err := db.Exec(
		`INSERT INTO classes (id, name, max_capacity, active, price_single, created_at, updated_at)
		 VALUES (?, ?, ?, 1, 1500, ?, ?)`,
		id, name, capValue, time.Now().UTC(), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return id
}

// SeedSlot вставляет активный слот класса и возвращает его ID
func SeedSlot(t *testing.T, db *sql.DB, classID string, day int, start, end string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO time_slots (id, class_id, day_of_week, start_time, end_time, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		id, classID, day, start, end, time.Now().UTC(), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return id
}
