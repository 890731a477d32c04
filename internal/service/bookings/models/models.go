package models

import (
	"strings"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// Request модели

// Requester кто обращается к бронированию
type Requester struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// Owns бронирование принадлежит пользователю (по учётной записи или email)
func (r Requester) Owns(b *domain.Booking) bool {
	if b.UserID != nil && r.UserID != "" && *b.UserID == r.UserID {
		return true
	}
	return r.Email != "" && strings.EqualFold(b.CustomerEmail, r.Email)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               string  `json:"id"`
	ClassID          string  `json:"classId"`
	ClassName        string  `json:"className"`
	TimeSlotID       *string `json:"timeSlotId,omitempty"`
	BookingDate      string  `json:"bookingDate"` // "2026-03-02"
	BookingTime      string  `json:"bookingTime"` // "17:30"
	DisplayDate      string  `json:"displayDate"` // "Mon, 2 Mar 2026"
	DisplayTime      string  `json:"displayTime"` // "5:30 PM"
	PackageType      string  `json:"packageType"`
	PackageLabel     string  `json:"packageLabel"`
	Price            float64 `json:"price"`
	PriceDisplay     string  `json:"priceDisplay"` // "KES 1,500" или "TBD"
	PriceUnknown     bool    `json:"priceUnknown"`
	Status           string  `json:"status"`
	StatusLabel      string  `json:"statusLabel"`
	PaymentStatus    string  `json:"paymentStatus"`
	PaymentLabel     string  `json:"paymentLabel"`
	PaymentBadge     string  `json:"paymentBadge"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	CustomerName     string  `json:"customerName"`
	CustomerEmail    string  `json:"customerEmail"`
	CustomerPhone    string  `json:"customerPhone"`
	Notes            *string `json:"notes,omitempty"`
	CancelledAt      *string `json:"cancelledAt,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

// BookingCard бронирование в списке "Мои записи"
type BookingCard struct {
	BookingResponse
	CanCancel     bool `json:"canCancel"`
	SameDayNotice bool `json:"sameDayNotice"` // "Same-day cancellations are not allowed"
}

// MyBookingsResponse записи клиента
type MyBookingsResponse struct {
	Email    string        `json:"email"`
	Upcoming []BookingCard `json:"upcoming"`
	Past     []BookingCard `json:"past"`
}

// RosterSlot слот дня со списком записавшихся
type RosterSlot struct {
	SlotID      string            `json:"slotId"`
	ClassName   string            `json:"className"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	DisplayTime string            `json:"displayTime"` // "9:00 AM – 10:00 AM"
	Instructor  *string           `json:"instructor,omitempty"`
	Capacity    int               `json:"capacity"`
	Bookings    []BookingResponse `json:"bookings"`
}

// RosterResponse ростер на дату
type RosterResponse struct {
	Date        string            `json:"date"`
	DisplayDate string            `json:"displayDate"` // "Monday, 2 March 2026"
	Slots       []RosterSlot      `json:"slots"`
	Unassigned  []BookingResponse `json:"unassigned"` // записи без слота этого дня
}

// CancelOccurrenceResponse результат отмены занятия целиком
type CancelOccurrenceResponse struct {
	SlotID    string `json:"slotId"`
	Date      string `json:"date"`
	Cancelled int    `json:"cancelled"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		ClassID:          b.ClassID,
		ClassName:        b.ClassName,
		TimeSlotID:       b.TimeSlotID,
		BookingDate:      b.BookingDate.String(),
		BookingTime:      b.BookingTime.String(),
		DisplayDate:      b.BookingDate.Display(),
		DisplayTime:      b.BookingTime.Display(),
		PackageType:      string(b.PackageType),
		PackageLabel:     b.PackageType.Label(),
		Price:            b.Price,
		PriceDisplay:     domain.PriceDisplay(b.Price),
		PriceUnknown:     b.NeedsPriceFollowUp(),
		Status:           string(b.Status),
		StatusLabel:      b.Status.Label(),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentLabel:     b.PaymentStatus.Label(),
		PaymentBadge:     b.PaymentStatus.BadgeClass(),
		PaymentReference: b.PaymentReference,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    b.CustomerPhone,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}
	return resp
}

// FromDomainBookings конвертирует список бронирований
func FromDomainBookings(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainBooking(b))
	}
	return out
}

// NewBookingCard карточка для списка клиента
func NewBookingCard(b *domain.Booking, today types.Date) BookingCard {
	upcoming := b.IsUpcoming(today)
	return BookingCard{
		BookingResponse: FromDomainBooking(b),
		CanCancel:       b.CanBeCancelledByCustomer(today),
		SameDayNotice:   upcoming && b.IsSameDay(today),
	}
}
