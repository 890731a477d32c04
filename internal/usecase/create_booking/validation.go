package create_booking

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/StudioBookingService/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return types.TimeString(fl.Field().String()).Validate() == nil
	})
	return v
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.ClassRef = strings.TrimSpace(req.ClassRef)

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Клиент выбирает время сам, в админке оно берётся из слота
	if req.ByAdmin {
		if req.TimeSlotID == nil || *req.TimeSlotID == "" {
			return fmt.Errorf("%w: time slot is required for admin bookings", ErrInvalidInput)
		}
	} else if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	return nil
}

// isClassID ссылка на класс в виде UUID, иначе это название класса
func isClassID(ref string) bool {
	if len(ref) != 36 {
		return false
	}
	_, err := uuid.Parse(ref)
	return err == nil
}
