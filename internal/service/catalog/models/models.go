package models

import (
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// Request модели

// ClassRequest данные формы класса (создание и редактирование)
type ClassRequest struct {
	Name        string             `json:"name" validate:"required,max=120"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	MaxCapacity *int               `json:"maxCapacity,omitempty" validate:"omitempty,min=1,max=500"`
	Active      *bool              `json:"active,omitempty"`
	Prices      map[string]float64 `json:"prices,omitempty" validate:"omitempty,dive,keys,tier,endkeys,gte=0"`
}

// SlotRequest данные формы слота (создание и редактирование)
type SlotRequest struct {
	ClassID    string  `json:"classId" validate:"required"`
	DayOfWeek  *int    `json:"dayOfWeek" validate:"required,min=0,max=6"`
	StartTime  string  `json:"startTime" validate:"required,hhmm"`
	EndTime    string  `json:"endTime" validate:"required,hhmm"`
	Instructor *string `json:"instructorName,omitempty" validate:"omitempty,max=120"`
	Active     *bool   `json:"active,omitempty"`
}

// Response модели

// ClassResponse класс с ценами по пакетам
type ClassResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	MaxCapacity *int               `json:"maxCapacity,omitempty"`
	Active      bool               `json:"active"`
	Prices      map[string]float64 `json:"prices"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
}

// SlotResponse слот с названием класса
type SlotResponse struct {
	ID          string  `json:"id"`
	ClassID     string  `json:"classId"`
	ClassName   string  `json:"className"`
	DayOfWeek   int     `json:"dayOfWeek"`
	DayName     string  `json:"dayName"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	DisplayTime string  `json:"displayTime"`
	Instructor  *string `json:"instructorName,omitempty"`
	Active      bool    `json:"active"`
}

// FromDomainClass конвертирует domain.ClassOffering в ClassResponse
func FromDomainClass(c *domain.ClassOffering) *ClassResponse {
	prices := make(map[string]float64, len(c.Prices))
	for tier, price := range c.Prices {
		prices[string(tier)] = price
	}
	return &ClassResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		MaxCapacity: c.MaxCapacity,
		Active:      c.Active,
		Prices:      prices,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainSlot конвертирует domain.ScheduledSlot в SlotResponse
func FromDomainSlot(s *domain.ScheduledSlot) *SlotResponse {
	return &SlotResponse{
		ID:          s.Slot.ID,
		ClassID:     s.Slot.ClassID,
		ClassName:   s.Class.Name,
		DayOfWeek:   s.Slot.DayOfWeek,
		DayName:     time.Weekday(s.Slot.DayOfWeek).String(),
		StartTime:   s.Slot.StartTime.String(),
		EndTime:     s.Slot.EndTime.String(),
		DisplayTime: s.Slot.StartTime.Display() + " – " + s.Slot.EndTime.Display(),
		Instructor:  s.Slot.Instructor,
		Active:      s.Slot.Active,
	}
}
