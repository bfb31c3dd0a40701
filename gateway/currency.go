package gateway

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type currency struct {
	numeric  string
	exponent int32
}

var currencies = map[string]currency{
	"EUR": {numeric: "978", exponent: 2},
	"USD": {numeric: "840", exponent: 2},
	"GBP": {numeric: "826", exponent: 2},
	"CHF": {numeric: "756", exponent: 2},
	"JPY": {numeric: "392", exponent: 0},
}

// lookupCurrency accepts an alphabetic or numeric ISO 4217 code.
// Unknown numeric codes pass through with two decimals.
func lookupCurrency(code string) (currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c, ok := currencies[code]; ok {
		return c, nil
	}
	if len(code) == 3 && strings.Trim(code, "0123456789") == "" {
		for _, c := range currencies {
			if c.numeric == code {
				return c, nil
			}
		}
		return currency{numeric: code, exponent: 2}, nil
	}
	return currency{}, fmt.Errorf("%w: unknown currency %q", ErrInvalidParameters, code)
}

// minorUnits converts amount into the integer string Redsys expects in DS_MERCHANT_AMOUNT.
func (c currency) minorUnits(amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: amount must be positive", ErrInvalidParameters)
	}
	shifted := amount.Shift(c.exponent)
	if !shifted.Equal(shifted.Truncate(0)) {
		return "", fmt.Errorf("%w: amount %s has too many decimals", ErrInvalidParameters, amount)
	}
	return shifted.Truncate(0).String(), nil
}
