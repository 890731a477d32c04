package notifications

import (
	"strings"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// EmailParams параметры шаблона письма-подтверждения
func EmailParams(ev BookingCreatedEvent) map[string]string {
	return map[string]string{
		"to_name":      ev.CustomerName,
		"to_email":     ev.CustomerEmail,
		"class_name":   orDefault(ev.ClassName, "Class"),
		"booking_date": ev.BookingDate,
		"booking_time": ev.BookingTime,
		"package_type": orDefault(ev.PackageType, string(domain.TierSingle)),
		"price":        domain.PriceDisplay(ev.Price),
		"booking_id":   ev.BookingID,
	}
}

// OperatorSMS текст SMS владельцу студии о новой записи
func OperatorSMS(ev BookingCreatedEvent) string {
	lines := []string{
		"NEW BOOKING - Ritual Studio",
		"",
		"Client: " + ev.CustomerName,
		"Phone: " + ev.CustomerPhone,
		"",
		"Class: " + orDefault(ev.ClassName, "Class"),
		"Date: " + types.Date(ev.BookingDate).Display(),
		"Time: " + types.FormatDisplayTime(ev.BookingTime),
		"Package: " + orDefault(ev.PackageType, string(domain.TierSingle)),
	}

	if ev.Price > 0 {
		lines = append(lines, "Amount: "+domain.FormatKES(ev.Price))
	}

	if ev.Notes != "" {
		lines = append(lines, "", "Notes: "+ev.Notes)
	}

	return strings.Join(lines, "\n")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
