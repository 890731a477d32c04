package create_booking

import (
	"strings"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	createBooking "github.com/m04kA/StudioBookingService/internal/usecase/create_booking"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClassID       string  `json:"classId"`
	ClassName     string  `json:"className"` // используется, если classId не передан
	TimeSlotID    *string `json:"timeSlotId,omitempty"`
	BookingDate   string  `json:"bookingDate"` // "2026-03-02"
	BookingTime   string  `json:"bookingTime"` // "17:30"
	PackageType   string  `json:"packageType"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Notes         *string `json:"notes,omitempty"`

	// Только для записи из админки
	MarkPaid bool `json:"markPaid,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               string  `json:"id"`
	ClassID          string  `json:"classId"`
	ClassName        string  `json:"className"`
	TimeSlotID       *string `json:"timeSlotId,omitempty"`
	BookingDate      string  `json:"bookingDate"`
	BookingTime      string  `json:"bookingTime"`
	DisplayDate      string  `json:"displayDate"`
	DisplayTime      string  `json:"displayTime"`
	PackageType      string  `json:"packageType"`
	Price            float64 `json:"price"`
	PriceDisplay     string  `json:"priceDisplay"`
	PriceUnknown     bool    `json:"priceUnknown"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	CustomerName     string  `json:"customerName"`
	CustomerEmail    string  `json:"customerEmail"`
	CustomerPhone    string  `json:"customerPhone"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат даты и времени проверяет use case.
func (r *CreateBookingRequest) ToUseCaseRequest(userID *string) *createBooking.Request {
	classRef := strings.TrimSpace(r.ClassID)
	if classRef == "" {
		classRef = r.ClassName
	}

	return &createBooking.Request{
		UserID:        userID,
		ClassRef:      classRef,
		TimeSlotID:    r.TimeSlotID,
		Date:          types.Date(strings.TrimSpace(r.BookingDate)),
		Time:          types.TimeString(strings.TrimSpace(r.BookingTime)),
		PackageType:   strings.TrimSpace(r.PackageType),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		ClassID:          resp.ClassID,
		ClassName:        resp.ClassName,
		TimeSlotID:       resp.TimeSlotID,
		BookingDate:      resp.BookingDate.String(),
		BookingTime:      resp.BookingTime.String(),
		DisplayDate:      resp.BookingDate.Display(),
		DisplayTime:      resp.BookingTime.Display(),
		PackageType:      string(resp.PackageType),
		Price:            resp.Price,
		PriceDisplay:     domain.PriceDisplay(resp.Price),
		PriceUnknown:     resp.PriceUnknown,
		Status:           string(resp.Status),
		PaymentStatus:    string(resp.PaymentStatus),
		PaymentReference: resp.PaymentReference,
		CustomerName:     resp.CustomerName,
		CustomerEmail:    resp.CustomerEmail,
		CustomerPhone:    resp.CustomerPhone,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
