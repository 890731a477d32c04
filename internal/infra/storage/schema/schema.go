package schema

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/m04kA/StudioBookingService/pkg/dbmetrics"
)

//go:embed sqlite.sql
var sqliteSchema string

// ApplySQLite создаёт таблицы в SQLite (локальный режим и тесты).
// Для Postgres используются миграции из каталога migrations/.
func ApplySQLite(ctx context.Context, db dbmetrics.DBExecutor) error {
	for _, stmt := range strings.Split(sqliteSchema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return nil
}
