package domain

import (
	"strconv"
	"strings"
)

// CurrencyCode валюта студии
const CurrencyCode = "KES"

// FormatKES сумма вида "KES 12,000" (копейки выводятся, только если они есть)
func FormatKES(amount float64) string {
	return CurrencyCode + " " + groupThousands(amount)
}

// PriceDisplay "KES n" или "TBD", если цена не определена
func PriceDisplay(amount float64) string {
	if amount <= 0 {
		return "TBD"
	}
	return FormatKES(amount)
}

func groupThousands(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "00" {
		b.WriteByte('.')
		b.WriteString(frac)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
