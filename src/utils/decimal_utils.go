package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal coerces a raw cell to a decimal. Thousands separators are
// stripped first. Anything that still fails to parse (empty, "N/A", "--")
// coerces to zero; malformed cells must contribute zero to every aggregate
// rather than raise or drop the row.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsNumeric reports whether a raw cell parses as a number after the same
// normalization ParseDecimal applies. The activity-window extractor uses it
// to skip uniformly numeric columns when hunting for the date column.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	s = strings.ReplaceAll(s, ",", "")
	_, err := decimal.NewFromString(s)
	return err == nil
}
