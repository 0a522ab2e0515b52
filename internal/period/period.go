// Package period resolves symbolic window tokens to concrete date bounds.
// Every windowed view (grouping, velocity, investments, account activity)
// goes through Start so that "3 months" means the same thing everywhere.
package period

import (
	"fmt"
	"time"
)

// Tokens selectable in the dashboard period pickers.
const (
	Token1M  = "1M"
	Token3M  = "3M"
	Token6M  = "6M"
	Token12M = "12M"
	Token1Y  = "1Y"
	TokenYTD = "YTD"
	TokenAll = "All"
)

// Date-range tokens used by the transaction search filter.
const (
	Range30Days = "30days"
	Range90Days = "90days"
	RangeYTD    = "ytd"
)

// Start resolves a period token to its lower bound relative to now.
// ok is false for "All" and unrecognized tokens, meaning no lower bound.
func Start(now time.Time, token string) (start time.Time, ok bool) {
	switch token {
	case Token1M:
		return now.AddDate(0, -1, 0), true
	case Token3M:
		return now.AddDate(0, -3, 0), true
	case Token6M:
		return now.AddDate(0, -6, 0), true
	case Token12M, Token1Y:
		return now.AddDate(0, -12, 0), true
	case TokenYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// SearchStart resolves a search date-range token to its lower bound.
// ok is false for unrecognized tokens.
func SearchStart(now time.Time, token string) (start time.Time, ok bool) {
	switch token {
	case Range30Days:
		return now.AddDate(0, 0, -30), true
	case Range90Days:
		return now.AddDate(0, 0, -90), true
	case RangeYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// InWindow reports whether t falls at or after the window start for token.
// Zero dates (the invalid-date sentinel) are always excluded from bounded
// windows but included in "All".
func InWindow(t, now time.Time, token string) bool {
	start, ok := Start(now, token)
	if !ok {
		return true
	}
	return !t.Before(start)
}

// MonthKey buckets a date by calendar month as "YYYY-MM".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
