package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/StudioBookingService/pkg/types"
)

// ErrUnknownStatus возвращается при разборе неизвестного статуса
var ErrUnknownStatus = errors.New("domain: unknown status")

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus converts a stored value into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusConfirmed, StatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("%w: booking status %q", ErrUnknownStatus, s)
	}
}

// Label human readable badge text
func (s BookingStatus) Label() string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// PaymentStatus represents whether a booking has been paid for
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// ParsePaymentStatus converts a stored value into a PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid:
		return PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("%w: payment status %q", ErrUnknownStatus, s)
	}
}

// Label human readable badge text
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Payment pending"
	case PaymentPaid:
		return "Paid"
	}
	return "Unknown"
}

// BadgeClass css class of the status badge
func (s PaymentStatus) BadgeClass() string {
	switch s {
	case PaymentPending:
		return "badge-warning"
	case PaymentPaid:
		return "badge-success"
	}
	return "badge-neutral"
}

// Booking represents a reservation of one class occurrence
type Booking struct {
	ID         string
	UserID     *string
	ClassID    string
	TimeSlotID *string

	// Denormalized data for history
	ClassName string

	BookingDate types.Date
	BookingTime types.TimeString
	PackageType PackageTier
	Price       float64

	Status           BookingStatus
	PaymentStatus    PaymentStatus
	PaymentReference *string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies a spot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsPaid returns true if the payment has been recorded
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// NeedsPriceFollowUp is true when no price could be resolved at creation.
// Such bookings are not free, the amount is agreed manually.
func (b *Booking) NeedsPriceFollowUp() bool {
	return b.Price <= 0
}

// IsUpcoming booking date is today or later and it is not cancelled
func (b *Booking) IsUpcoming(today types.Date) bool {
	return !b.BookingDate.Before(today) && b.IsActive()
}

// IsSameDay booking date equals today in studio-local time
func (b *Booking) IsSameDay(today types.Date) bool {
	return b.BookingDate == today
}

// CanBeCancelledByCustomer customers may cancel upcoming bookings except on the day itself
func (b *Booking) CanBeCancelledByCustomer(today types.Date) bool {
	return b.IsUpcoming(today) && !b.IsSameDay(today)
}

// AccountReference payment reference shown on the customer's statement
func (b *Booking) AccountReference(prefix string) string {
	id := b.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return prefix + id
}
