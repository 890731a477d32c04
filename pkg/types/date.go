package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout формат календарной даты
const DateLayout = "2006-01-02"

// ErrInvalidDate возвращается при неверном формате даты
var ErrInvalidDate = errors.New("invalid date format")

// Date календарная дата без времени и часового пояса ("YYYY-MM-DD").
// Строки в таком формате сравниваются лексикографически.
type Date string

// ParseDate парсит "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(s), nil
}

// DateOf календарная дата момента t в его часовом поясе
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Midday полдень этой даты в часовом поясе loc.
// Полдень не может сместиться на соседний день при конвертации поясов.
func (d Date) Midday(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t.Add(12 * time.Hour)
}

// Weekday день недели 0=воскресенье..6=суббота
func (d Date) Weekday() int {
	return WeekdayOf(d)
}

// WeekdayOf день недели даты, 0=воскресенье..6=суббота
func WeekdayOf(d Date) int {
	return int(d.Midday(time.Local).Weekday())
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return DateOf(d.Midday(time.UTC).AddDate(0, 0, n))
}

// Validate проверяет формат
func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

func (d Date) IsZero() bool {
	return d == ""
}

func (d Date) Before(other Date) bool {
	return d < other
}

func (d Date) After(other Date) bool {
	return d > other
}

func (d Date) String() string {
	return string(d)
}

// Display дата вида "Mon, 2 Jan 2026"
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.Midday(time.UTC).Format("Mon, 2 Jan 2006")
}

// LongDisplay дата вида "Monday, 2 January 2026"
func (d Date) LongDisplay() string {
	if d.IsZero() {
		return ""
	}
	return d.Midday(time.UTC).Format("Monday, 2 January 2006")
}

// Value реализует driver.Valuer. Дата уходит в БД строкой.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}

// Scan реализует sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = Date(v.Format(DateLayout))
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
