package create_booking

import (
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     *string // ID учётной записи (пусто для записи администратором)
	ClassRef   string  `validate:"required,max=120"` // ID класса или его название
	TimeSlotID *string `validate:"omitempty,max=64"`

	Date types.Date       `validate:"required,datetime=2006-01-02"`
	Time types.TimeString `validate:"omitempty,hhmm"`

	PackageType string `validate:"omitempty,max=32"`

	CustomerName  string  `validate:"required,max=200"`
	CustomerEmail string  `validate:"required,email,max=255"`
	CustomerPhone string  `validate:"required,max=32"`
	Notes         *string `validate:"omitempty,max=1000"`

	// ByAdmin запись из админки: время берётся из слота, слот обязателен
	ByAdmin bool
	// MarkPaid админ отмечает оплату наличными
	MarkPaid bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               string
	ClassID          string
	ClassName        string
	TimeSlotID       *string
	BookingDate      types.Date
	BookingTime      types.TimeString
	PackageType      domain.PackageTier
	Price            float64
	PriceUnknown     bool // цена не найдена, сумму согласуют вручную
	Status           domain.BookingStatus
	PaymentStatus    domain.PaymentStatus
	PaymentReference *string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	Notes            *string
	CreatedAt        time.Time
}

// Options бизнес-настройки записи
type Options struct {
	DefaultCapacity int
	// StrictCapacity проверка мест и вставка в одной serializable транзакции
	StrictCapacity bool
	Location       *time.Location
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		ClassID:          b.ClassID,
		ClassName:        b.ClassName,
		TimeSlotID:       b.TimeSlotID,
		BookingDate:      b.BookingDate,
		BookingTime:      b.BookingTime,
		PackageType:      b.PackageType,
		Price:            b.Price,
		PriceUnknown:     b.NeedsPriceFollowUp(),
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		PaymentReference: b.PaymentReference,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    b.CustomerPhone,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
	}
}
