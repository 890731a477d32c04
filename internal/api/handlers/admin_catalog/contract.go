package admin_catalog

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListClasses(ctx context.Context, activeOnly bool) ([]*models.ClassResponse, error)
	CreateClass(ctx context.Context, req *models.ClassRequest) (*models.ClassResponse, error)
	UpdateClass(ctx context.Context, id string, req *models.ClassRequest) (*models.ClassResponse, error)
	ListSlots(ctx context.Context) ([]*models.SlotResponse, error)
	CreateSlot(ctx context.Context, req *models.SlotRequest) (*models.SlotResponse, error)
	UpdateSlot(ctx context.Context, id string, req *models.SlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
