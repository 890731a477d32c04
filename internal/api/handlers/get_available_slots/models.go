package get_available_slots

import (
	catalogModels "github.com/m04kA/StudioBookingService/internal/service/catalog/models"
	getAvailableSlots "github.com/m04kA/StudioBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	DisplayDate  string          `json:"displayDate"` // "Monday, 2 March 2026"
	Weekday      int             `json:"weekday"`
	Slots        []AvailableSlot `json:"slots"`
	FromFallback bool            `json:"fromFallback"`
}

// AvailableSlot слот с остатком мест
type AvailableSlot struct {
	catalogModels.SlotResponse
	Capacity       int    `json:"capacity"`
	SpotsRemaining int    `json:"spotsRemaining"`
	Bookable       bool   `json:"bookable"`
	Label          string `json:"label"` // "Full", "3 spots remaining"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:         resp.Date.String(),
		DisplayDate:  resp.Date.LongDisplay(),
		Weekday:      resp.Weekday,
		Slots:        make([]AvailableSlot, 0, len(resp.Slots)),
		FromFallback: resp.FromFallback,
	}
	for i := range resp.Slots {
		a := &resp.Slots[i]
		out.Slots = append(out.Slots, AvailableSlot{
			SlotResponse:   *catalogModels.FromDomainSlot(&a.Slot),
			Capacity:       a.Capacity,
			SpotsRemaining: a.SpotsRemaining,
			Bookable:       a.IsBookable(),
			Label:          a.Label(),
		})
	}
	return out
}
