package analytics

// Annotation flags a month-over-month spike or drop in a category series.
type Annotation struct {
	Month     string  `json:"month"`
	Category  string  `json:"category"`
	ChangePct float64 `json:"change_pct"`
}

// spikeThreshold is the relative month-over-month change that counts as a
// pattern change.
const spikeThreshold = 0.3

// DetectPatternChanges scans each category series for months whose value
// moved more than 30% relative to the previous month. Months following a
// zero value are skipped.
func DetectPatternChanges(res CategoryMonthResult) []Annotation {
	var out []Annotation
	for _, s := range res.Series {
		for i := 1; i < len(s.Values); i++ {
			prev := s.Values[i-1]
			if prev.IsZero() {
				continue
			}
			change, _ := s.Values[i].Sub(prev).Div(prev).Float64()
			if change > spikeThreshold || change < -spikeThreshold {
				out = append(out, Annotation{
					Month:     res.Months[i],
					Category:  s.Category,
					ChangePct: change * 100,
				})
			}
		}
	}
	return out
}
