package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a split does not name one.
const DefaultCurrency = "INR"

// ErrUnknownCurrency is returned for codes that are not ISO 4217 currencies.
var ErrUnknownCurrency = errors.New("unknown currency")

// NormalizeCurrency upper-cases code and substitutes DefaultCurrency for "".
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// CurrencyPlaces returns the number of minor-unit digits for the currency
// (2 for INR and USD, 0 for JPY, 3 for KWD).
func CurrencyPlaces(code string) (int32, error) {
	cur := money.GetCurrency(NormalizeCurrency(code))
	if cur == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return int32(cur.Fraction), nil
}

// FormatAmount renders amount in the currency's display format, e.g. "₹1,500.00".
// Unknown currencies fall back to the plain decimal string.
func FormatAmount(amount decimal.Decimal, code string) string {
	code = NormalizeCurrency(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.String()
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
