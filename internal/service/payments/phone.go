package payments

import (
	"regexp"
	"strings"
)

var mpesaPhonePattern = regexp.MustCompile(`^254\d{9}$`)

// NormalizePhone приводит номер к виду 254XXXXXXXXX:
// убирает пробелы и "+", ведущий 0 заменяет на 254.
func NormalizePhone(raw string) string {
	phone := strings.Join(strings.Fields(raw), "")
	phone = strings.TrimPrefix(phone, "+")
	if strings.HasPrefix(phone, "0") {
		phone = "254" + phone[1:]
	}
	return phone
}

// ValidPhone номер принимается M-Pesa
func ValidPhone(phone string) bool {
	return mpesaPhonePattern.MatchString(phone)
}
