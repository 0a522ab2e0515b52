package trend

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepfinance-dev/deepfinance/internal/model"
)

func TestLinearTrendPercent_Flat(t *testing.T) {
	assert.Equal(t, 0.0, LinearTrendPercent([]float64{100, 100, 100}))
}

func TestLinearTrendPercent_Rising(t *testing.T) {
	// Slope 10 over mean 110 = ~9.09% per step.
	got := LinearTrendPercent([]float64{100, 110, 120})
	assert.InDelta(t, 10.0/110*100, got, 0.001)
}

func TestLinearTrendPercent_Falling(t *testing.T) {
	assert.Less(t, LinearTrendPercent([]float64{120, 110, 100}), 0.0)
}

func TestLinearTrendPercent_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, LinearTrendPercent(nil))
	assert.Equal(t, 0.0, LinearTrendPercent([]float64{50}))
	// Mean <= 0 is not a meaningful base for a percentage.
	assert.Equal(t, 0.0, LinearTrendPercent([]float64{-10, 10}))
}

func TestForecast(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := Forecast([]float64{100, 200}, 10, 3, rng)
	require.Len(t, got, 3)

	// Each step compounds 10% growth off the last observed value, with
	// jitter bounded in [0.95, 1.05).
	for i, v := range got {
		center := 200.0
		for j := 0; j <= i; j++ {
			center *= 1.1
		}
		assert.GreaterOrEqual(t, v, center*0.95)
		assert.Less(t, v, center*1.05)
	}
}

func TestForecast_Deterministic(t *testing.T) {
	a := Forecast([]float64{100}, 0, 3, rand.New(rand.NewSource(42)))
	b := Forecast([]float64{100}, 0, 3, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestForecast_Empty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, Forecast(nil, 10, 3, rng))
	assert.Nil(t, Forecast([]float64{100}, 10, 0, rng))
}

var predictNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptxn(daysAgo int, amount, category, merchant string) model.Transaction {
	return model.Transaction{
		Date:     predictNow.AddDate(0, 0, -daysAgo),
		Amount:   dec(amount),
		Category: category,
		Merchant: merchant,
	}
}

func TestPredict(t *testing.T) {
	txns := []model.Transaction{
		// Two months inside the 90-day window.
		ptxn(50, "3000", "Income", ""),
		ptxn(48, "-1000", "Rent", ""),
		ptxn(47, "-100", "Food", "Safeway"),
		ptxn(10, "3000", "Income", ""),
		ptxn(8, "-1000", "Rent", ""),
		ptxn(7, "-200", "Food", "Safeway"),
		ptxn(6, "-20", "Transfer", ""),
		// Outside the window.
		ptxn(120, "-9999", "Food", "Safeway"),
	}

	rng := rand.New(rand.NewSource(7))
	got, ok := Predict(txns, predictNow, rng)
	require.True(t, ok)

	require.Len(t, got.Months, 2)
	assert.Equal(t, []float64{1100, 1200}, got.Spending)
	assert.Equal(t, []float64{3000, 3000}, got.Income)

	assert.Greater(t, got.SpendingTrendPct, 0.0)
	assert.Equal(t, 0.0, got.IncomeTrendPct)
	assert.Len(t, got.SpendingForecast, 3)
	assert.Len(t, got.IncomeForecast, 3)

	// Food doubled month over month; Rent stayed flat.
	assert.Equal(t, "Food", got.FastestCategory)
	assert.InDelta(t, 100.0, got.CategoryGrowth, 0.001)

	assert.Equal(t, "Safeway", got.TopMerchant)
	assert.Equal(t, 2, got.TopMerchantCount)

	// (6000 - 2300) / 6000.
	assert.InDelta(t, 61.666, got.SavingsRatePct, 0.01)
}

func TestPredict_InsufficientData(t *testing.T) {
	txns := []model.Transaction{ptxn(5, "-100", "Food", "")}
	_, ok := Predict(txns, predictNow, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestPredict_Insights(t *testing.T) {
	// Sharply rising spending with no income: low savings rate plus an
	// upward spending trend.
	txns := []model.Transaction{
		ptxn(70, "-100", "Food", ""),
		ptxn(40, "-200", "Food", ""),
		ptxn(10, "-400", "Food", ""),
	}
	got, ok := Predict(txns, predictNow, rand.New(rand.NewSource(1)))
	require.True(t, ok)

	var severities []string
	for _, in := range got.Insights {
		severities = append(severities, in.Severity)
	}
	assert.Contains(t, severities, SeverityWarning)
}
