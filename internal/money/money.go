// Package money formats dollar amounts for borrower-facing text.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// USD renders an amount as "$50,000", or "$1,896.20" when it carries cents.
func USD(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := d.Truncate(0)
	s := sign + "$" + printer.Sprintf("%d", whole.IntPart())

	cents := d.Sub(whole).Shift(2).IntPart()
	if cents != 0 {
		s += fmt.Sprintf(".%02d", cents)
	}
	return s
}

// Round2 rounds to whole cents.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
