package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentPoint is one point in the portfolio value series. The upstream
// feed pre-slices the series per period token, so each point carries the
// Period it belongs to rather than being windowed by date downstream.
type InvestmentPoint struct {
	Date     time.Time       `json:"date"`
	RawValue decimal.Decimal `json:"raw_value"`
	Display  string          `json:"value,omitempty"`
	Period   string          `json:"period"`
	Index    int             `json:"data_point_index,omitempty"`
}
