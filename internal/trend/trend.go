// Package trend fits simple trends over monthly series and projects them
// forward for the predictive summary.
package trend

import (
	"math/rand"
)

// LinearTrendPercent fits an ordinary least-squares line over the series
// (index as x) and expresses the slope as a percentage of the series mean.
// Fewer than two points, or a non-positive mean, yields 0.
func LinearTrendPercent(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	slope := (n*sumXY - sumX*sumY) / denom

	mean := sumY / n
	if mean <= 0 {
		return 0
	}
	return slope / mean * 100
}

// Forecast projects the last value of the series forward horizon steps,
// compounding the monthly trend and applying a uniform [0.95, 1.05) jitter
// per step. The caller supplies the rand source so projections can be seeded.
// An empty series or non-positive horizon yields nil.
func Forecast(values []float64, trendPct float64, horizon int, rng *rand.Rand) []float64 {
	if len(values) == 0 || horizon <= 0 {
		return nil
	}

	base := values[len(values)-1]
	growth := 1 + trendPct/100
	out := make([]float64, horizon)
	factor := 1.0
	for i := range out {
		factor *= growth
		jitter := 0.95 + rng.Float64()*0.1
		out[i] = base * factor * jitter
	}
	return out
}
