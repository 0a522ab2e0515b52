// Package velocity computes transaction frequency and spending pattern
// statistics over short rolling windows.
package velocity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deepfinance-dev/deepfinance/internal/model"
)

// DayStat is one calendar day's transaction count and absolute volume.
type DayStat struct {
	Day    string          `json:"day"`
	Count  int             `json:"count"`
	Volume decimal.Decimal `json:"volume"`
}

// DailyStats summarizes transaction velocity over the window.
type DailyStats struct {
	Days            []DayStat       `json:"days"`
	TotalCount      int             `json:"total_count"`
	ActiveDays      int             `json:"active_days"`
	AvgPerDay       float64         `json:"avg_per_day"`
	PeakDay         string          `json:"peak_day"`
	PeakCount       int             `json:"peak_count"`
	TotalVolume     decimal.Decimal `json:"total_volume"`
	AvgVolumePerDay decimal.Decimal `json:"avg_volume_per_day"`
}

const dayKeyLayout = "2006-01-02"

// Daily buckets transactions by calendar day over the trailing window and
// derives frequency stats. Averages divide by days that actually saw
// activity, not the window length, so sparse data is not diluted.
// windowDays defaults to 30 when non-positive.
func Daily(txns []model.Transaction, now time.Time, windowDays int) DailyStats {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	byDay := make(map[string]*DayStat)
	for _, t := range txns {
		if t.Date.IsZero() || t.Date.Before(cutoff) {
			continue
		}
		key := t.Date.Format(dayKeyLayout)
		d, ok := byDay[key]
		if !ok {
			d = &DayStat{Day: key}
			byDay[key] = d
		}
		d.Count++
		d.Volume = d.Volume.Add(t.Amount.Abs())
	}

	stats := DailyStats{ActiveDays: len(byDay)}
	for _, d := range byDay {
		stats.Days = append(stats.Days, *d)
	}
	sort.Slice(stats.Days, func(i, j int) bool { return stats.Days[i].Day < stats.Days[j].Day })

	for _, d := range stats.Days {
		stats.TotalCount += d.Count
		stats.TotalVolume = stats.TotalVolume.Add(d.Volume)
		if d.Count > stats.PeakCount {
			stats.PeakCount = d.Count
			stats.PeakDay = d.Day
		}
	}
	if stats.ActiveDays > 0 {
		stats.AvgPerDay = float64(stats.TotalCount) / float64(stats.ActiveDays)
		stats.AvgVolumePerDay = stats.TotalVolume.Div(decimal.NewFromInt(int64(stats.ActiveDays)))
	}
	return stats
}

// WeekdayCount is the transaction count for one day of the week.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// WeeklyPattern counts windowed transactions per day of the week, ordered
// Sunday through Saturday. Counts are raw: a window containing five Mondays
// but four Sundays skews accordingly.
func WeeklyPattern(txns []model.Transaction, now time.Time, windowDays int) []WeekdayCount {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	var counts [7]int
	for _, t := range txns {
		if t.Date.IsZero() || t.Date.Before(cutoff) {
			continue
		}
		counts[t.Date.Weekday()]++
	}

	out := make([]WeekdayCount, 7)
	for i := range out {
		out[i] = WeekdayCount{Weekday: time.Weekday(i).String(), Count: counts[i]}
	}
	return out
}
