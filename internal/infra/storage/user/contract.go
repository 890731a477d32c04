package user

import (
	"github.com/m04kA/StudioBookingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

// Scanner строка результата (*sql.Row или *sql.Rows)
type Scanner interface {
	Scan(dest ...interface{}) error
}
