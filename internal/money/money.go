// Package money normalizes raw scraped values into decimals and dates.
// Both parsers are total: malformed input yields a zero/sentinel value
// rather than an error, so a bad row never aborts an aggregation.
package money

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a currency string to a decimal. Currency symbols and
// thousands separators are stripped; anything that still fails to parse
// yields zero. Plain numeric strings pass through unchanged.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	neg := false
	// Accounting-style negatives: ($1,234.56)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if neg {
		return d.Neg()
	}
	return d
}

// dateFormats in the order the feed has been observed to use them.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

// ParseDate interprets an ISO-like date string. Malformed input returns the
// zero time, which window comparisons treat as excluded.
func ParseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
