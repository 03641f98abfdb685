package helper

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders 1350.5 as "₱1,350.50".
func FormatMoney(symbol string, amount decimal.Decimal) string {
	whole := amount.Round(2).Truncate(0)
	cents := amount.Round(2).Sub(whole).Abs().Shift(2).IntPart()

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		whole = whole.Abs()
	}
	return sign + symbol + moneyPrinter.Sprintf("%d", whole.IntPart()) + "." + twoDigits(cents)
}

func twoDigits(n int64) string {
	s := moneyPrinter.Sprintf("%d", n)
	if len(s) < 2 {
		s = strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

// SumDecimals adds amounts; an empty slice yields zero.
func SumDecimals(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
