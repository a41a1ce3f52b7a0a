package utils

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var (
	moneyScrubRe  = regexp.MustCompile(`[^0-9.\-]`)
	taxWithheldRe = regexp.MustCompile(`(?i)tax\s+withheld[^0-9.\-]*(-?[0-9][0-9,]*(?:\.[0-9]+)?)`)
)

// ParseMoney parses a currency-formatted string ("$1,234.56", "-$12.00")
// into a number. Every character that is not a digit, decimal point, or
// minus sign is stripped before parsing. Empty or unparseable input yields
// 0. Parenthesized negatives are NOT recognized: "(12.00)" parses as 12,
// a known limitation of the stripping approach.
func ParseMoney(text string) float64 {
	cleaned := moneyScrubRe.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ExtractWithheldTax scans free-text (typically a dividend description such
// as "NON-RES TAX WITHHELD $1.23") for a withheld-tax sub-amount. Returns 0
// when no such phrase is present.
func ExtractWithheldTax(description string) float64 {
	m := taxWithheldRe.FindStringSubmatch(description)
	if m == nil {
		return 0
	}
	return ParseMoney(m[1])
}
