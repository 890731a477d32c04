package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/StudioBookingService/internal/service/bookings/models"
)

const rosterSheet = "Roster"

var rosterColumns = []string{"Time", "Class", "Instructor", "Client", "Email", "Phone", "Package", "Price", "Payment", "Reference", "Notes"}

// RosterXLSX ростер дня: строка на каждую активную запись, сгруппировано по слотам.
// Записи без слота этого дня идут в конце под заголовком "Other bookings".
func RosterXLSX(roster *models.RosterResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(rosterColumns))

	// Заголовок
	_ = f.SetCellValue(rosterSheet, "A1", "Roster: "+roster.DisplayDate)
	_ = f.MergeCell(rosterSheet, "A1", lastCol+"1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(rosterSheet, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, name := range rosterColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(rosterSheet, cell, name)
	}
	_ = f.SetCellStyle(rosterSheet, "A2", lastCol+"2", headerStyle)

	groupStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	row := 3
	for _, slot := range roster.Slots {
		group := fmt.Sprintf("%s  %s  (%d/%d)", slot.DisplayTime, slot.ClassName, len(slot.Bookings), slot.Capacity)
		writeGroup(f, row, group, lastCol, groupStyle)
		row++

		instructor := ""
		if slot.Instructor != nil {
			instructor = *slot.Instructor
		}
		for _, b := range slot.Bookings {
			writeBooking(f, row, slot.DisplayTime, instructor, b)
			row++
		}
	}

	if len(roster.Unassigned) > 0 {
		writeGroup(f, row, "Other bookings", lastCol, groupStyle)
		row++
		for _, b := range roster.Unassigned {
			writeBooking(f, row, b.DisplayTime, "", b)
			row++
		}
	}

	_ = f.SetColWidth(rosterSheet, "A", "A", 22)
	_ = f.SetColWidth(rosterSheet, "B", lastCol, 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeGroup(f *excelize.File, row int, title, lastCol string, style int) {
	first := fmt.Sprintf("A%d", row)
	_ = f.SetCellValue(rosterSheet, first, title)
	_ = f.MergeCell(rosterSheet, first, fmt.Sprintf("%s%d", lastCol, row))
	_ = f.SetCellStyle(rosterSheet, first, first, style)
}

func writeBooking(f *excelize.File, row int, displayTime, instructor string, b models.BookingResponse) {
	notes := ""
	if b.Notes != nil {
		notes = *b.Notes
	}
	reference := ""
	if b.PaymentReference != nil {
		reference = *b.PaymentReference
	}

	values := []interface{}{
		displayTime,
		b.ClassName,
		instructor,
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		b.PackageLabel,
		b.PriceDisplay,
		b.PaymentLabel,
		reference,
		notes,
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetSheetRow(rosterSheet, cell, &values)
}
