package stats

import (
	"math"

	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/types"
)

// WindowCounts holds count-based metrics over the fixed dashboard windows
type WindowCounts struct {
	Today     int
	ThisWeek  int
	ThisMonth int
	Total     int
}

// CountWindows buckets a user's normalized record dates into the fixed
// windows. The week is a calendar week from the configured week start
// through today inclusive, clamped to the current month so that
// today <= week <= month <= total holds even when the week started in the
// previous month.
func CountWindows(dates []clock.Date, clk clock.ReferenceClock, today clock.Date) WindowCounts {
	weekStart := clk.StartOfWeek(today)
	monthStart := clk.StartOfMonth(today)
	if weekStart.Before(monthStart) {
		weekStart = monthStart
	}

	var w WindowCounts
	for _, d := range dates {
		w.Total++
		if d.After(today) {
			// Future-dated records count toward the total only
			continue
		}
		if d.SameMonth(today) {
			w.ThisMonth++
		}
		if !d.Before(weekStart) && !d.After(today) {
			w.ThisWeek++
		}
		if d == today {
			w.Today++
		}
	}
	return w
}

// AverageScores computes the rounded mean per rubric dimension over the
// present (non-missing, in-range) scores of a user's records, together with
// the sample count per dimension. A dimension with no valid scores yields
// score 0 with SampleCount 0.
func AverageScores(records []NormalizedRecord) map[types.Dimension]RatingSample {
	out := make(map[types.Dimension]RatingSample, len(types.AllDimensions))

	for _, dim := range types.AllDimensions {
		var sum float64
		count := 0
		for _, rec := range records {
			v := rec.Record.Scores.Get(dim)
			if v == nil || *v < 0 || *v > 100 {
				continue
			}
			sum += *v
			count++
		}

		sample := RatingSample{SampleCount: count}
		if count > 0 {
			sample.Score = roundHalfUp(sum / float64(count))
		}
		out[dim] = sample
	}
	return out
}

// RatingSample is an unrounded-input, rounded-output average for one dimension
type RatingSample struct {
	Score       int
	SampleCount int
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
