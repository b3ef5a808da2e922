package domain

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// Stats are derived values over a record's entries.
// Deficit accumulates hours short of 8h per night, surplus hours above 9h.
// Score rewards participation and punishes both extremes; it is shown in
// profiles but never used to order the leaderboard.
type Stats struct {
	EntriesLogged int     `json:"entries_logged"`
	TotalHours    float64 `json:"total_hours"`
	MeanHours     float64 `json:"mean_hours"`
	MedianHours   float64 `json:"median_hours"`
	StdDevHours   float64 `json:"std_dev_hours"`
	DeficitHours  float64 `json:"deficit_hours"`
	SurplusHours  float64 `json:"surplus_hours"`
	Score         float64 `json:"score"`
}

const (
	targetHours   = 8.0
	oversleepFrom = 9.0
)

// ComputeStats derives Stats from a record. An empty record yields zero Stats.
func ComputeStats(rec Record) Stats {
	if !rec.HasData() {
		return Stats{}
	}

	hours := lo.Map(rec.Entries, func(e Entry, _ int) float64 {
		return e.Hours
	})
	n := len(hours)

	total := lo.Sum(hours)
	mean := total / float64(n)

	sumSquares := lo.SumBy(hours, func(h float64) float64 { return h * h })
	variance := sumSquares/float64(n) - mean*mean
	if variance < 0 {
		variance = 0 // float rounding
	}

	sorted := make([]float64, n)
	copy(sorted, hours)
	sort.Float64s(sorted)
	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var deficit, surplus float64
	for _, h := range hours {
		if h < targetHours {
			deficit += targetHours - h
		} else if h > oversleepFrom {
			surplus += h - oversleepFrom
		}
	}

	return Stats{
		EntriesLogged: n,
		TotalHours:    total,
		MeanHours:     mean,
		MedianHours:   median,
		StdDevHours:   math.Sqrt(variance),
		DeficitHours:  deficit,
		SurplusHours:  surplus,
		Score:         100*float64(n) - deficit - surplus/2,
	}
}
