package class

import (
	"github.com/m04kA/StudioBookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Scanner строка результата (*sql.Row или *sql.Rows)
type Scanner interface {
	Scan(dest ...interface{}) error
}
