package list_classes

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListClasses(ctx context.Context, activeOnly bool) ([]*models.ClassResponse, error)
	GetClass(ctx context.Context, id string) (*models.ClassResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
