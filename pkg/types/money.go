package types

import "github.com/shopspring/decimal"

func init() {
	// The backend speaks plain JSON numbers for every currency field.
	decimal.MarshalJSONWithoutQuotes = true
}

// Zero is the zero currency amount.
var Zero = decimal.Zero

// Amount parses a currency value from its string form, returning zero on bad input.
func Amount(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

// ClampNonNegative floors an amount at zero.
func ClampNonNegative(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}
