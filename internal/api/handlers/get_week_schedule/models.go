package get_week_schedule

import (
	"time"

	catalogModels "github.com/m04kA/StudioBookingService/internal/service/catalog/models"
	getWeekSchedule "github.com/m04kA/StudioBookingService/internal/usecase/get_week_schedule"
)

// WeekScheduleResponse HTTP response model
type WeekScheduleResponse struct {
	WeekStart    string        `json:"weekStart"`
	WeekEnd      string        `json:"weekEnd"`
	Label        string        `json:"label"` // "Mon, 2 Mar 2026 - Sun, 8 Mar 2026"
	Days         []DayColumn   `json:"days"`
	Classes      []ClassOption `json:"classes"`
	FromFallback bool          `json:"fromFallback"`
}

type DayColumn struct {
	Date     string          `json:"date"`
	DayName  string          `json:"dayName"`
	DayShort string          `json:"dayShort"`
	Entries  []ScheduleEntry `json:"entries"`
}

type ScheduleEntry struct {
	catalogModels.SlotResponse
	Capacity int `json:"capacity"`
}

type ClassOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeekSchedule.Response) *WeekScheduleResponse {
	out := &WeekScheduleResponse{
		WeekStart:    resp.WeekStart.String(),
		WeekEnd:      resp.WeekEnd.String(),
		Label:        resp.WeekStart.Display() + " - " + resp.WeekEnd.Display(),
		Days:         make([]DayColumn, 0, len(resp.Days)),
		Classes:      make([]ClassOption, 0, len(resp.Classes)),
		FromFallback: resp.FromFallback,
	}

	for _, d := range resp.Days {
		name := time.Weekday(d.Weekday).String()
		col := DayColumn{
			Date:     d.Date.String(),
			DayName:  name,
			DayShort: name[:3],
			Entries:  make([]ScheduleEntry, 0, len(d.Entries)),
		}
		for i := range d.Entries {
			e := &d.Entries[i]
			col.Entries = append(col.Entries, ScheduleEntry{
				SlotResponse: *catalogModels.FromDomainSlot(&e.Slot),
				Capacity:     e.DisplayCapacity,
			})
		}
		out.Days = append(out.Days, col)
	}

	for _, c := range resp.Classes {
		out.Classes = append(out.Classes, ClassOption{ID: c.ID, Name: c.Name})
	}
	return out
}
