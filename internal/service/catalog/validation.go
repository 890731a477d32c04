package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/service/catalog/models"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return types.TimeString(fl.Field().String()).Validate() == nil
	})
	_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		return domain.PackageTier(fl.Field().String()).IsKnown()
	})
	return v
}

func validateClassRequest(req *models.ClassRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = trimmedOrNil(req.Description)

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateSlotRequest(req *models.SlotRequest) error {
	req.ClassID = strings.TrimSpace(req.ClassID)
	req.Instructor = trimmedOrNil(req.Instructor)

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// trimmedOrNil обрезает пробелы, пустую строку превращает в nil
func trimmedOrNil(s *string) *string {
	if v := strings.TrimSpace(ptr.Value(s)); v != "" {
		return ptr.Ptr(v)
	}
	return nil
}
