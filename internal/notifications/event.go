package notifications

import (
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// BookingCreatedEvent снимок бронирования для уведомлений.
// Передаётся через очередь, поэтому содержит всё нужное для писем и SMS.
type BookingCreatedEvent struct {
	MessageID     string    `json:"message_id"`
	BookingID     string    `json:"booking_id"`
	ClassName     string    `json:"class_name"`
	BookingDate   string    `json:"booking_date"`
	BookingTime   string    `json:"booking_time"`
	PackageType   string    `json:"package_type"`
	Price         float64   `json:"price"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBookingCreatedEvent собирает событие из бронирования
func NewBookingCreatedEvent(b *domain.Booking, messageID string) BookingCreatedEvent {
	ev := BookingCreatedEvent{
		MessageID:     messageID,
		BookingID:     b.ID,
		ClassName:     b.ClassName,
		BookingDate:   b.BookingDate.String(),
		BookingTime:   b.BookingTime.String(),
		PackageType:   string(b.PackageType),
		Price:         b.Price,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		CreatedAt:     b.CreatedAt,
	}
	if b.Notes != nil {
		ev.Notes = *b.Notes
	}
	return ev
}
