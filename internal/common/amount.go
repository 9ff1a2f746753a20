package common

import (
	"fmt"
	"strings"
	"unicode"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every amount shown to the user
const CurrencySymbol = "₹"

var acceptedSymbols = []string{CurrencySymbol, "$", "€", "£"}

// ParseAmount reads user input such as "1,250.50" or "₹ 100" into a positive
// amount rounded half-up to two decimal places.
func ParseAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	for _, symbol := range acceptedSymbols {
		if strings.HasPrefix(s, symbol) {
			s = strings.TrimPrefix(s, symbol)
			break
		}
	}
	s = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	amount, err := decimal.NewFromString(s)
	if err != nil || s == "" {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q, enter a number like 100 or 100.50", store.ErrValidation, input)
	}

	// Round rounds half away from zero, which is half-up for positive values
	amount = amount.Round(models.AmountPlaces)
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", store.ErrValidation)
	}
	return amount, nil
}

// FormatAmount renders an amount with the currency symbol and two decimals
func FormatAmount(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(models.AmountPlaces)
}
