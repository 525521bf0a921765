package ledger

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount renders an amount in minor units as a localized currency
// string, e.g. FormatAmount(123450, "USD", "en") is "$ 1,234.50".
func FormatAmount(amount int64, currencyCode, locale string) (string, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return "", fmt.Errorf("invalid currency '%s': %w", currencyCode, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("invalid locale '%s': %w", locale, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	value := float64(amount) / math.Pow10(scale)

	return message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(value))), nil
}
