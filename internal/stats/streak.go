// Package stats implements the pure aggregation math behind the dashboard:
// streaks, window counts, rubric averages and consistency. Everything here
// is a function of (records, today) with no ambient state, so concurrent
// requests can aggregate independently over their own snapshots.
package stats

import (
	"sort"

	"github.com/martinsvarc/teamtables/internal/clock"
)

// StreakResult reports a user's consecutive-day activity runs
type StreakResult struct {
	Current int // length of the run ending today, 0 if none
	Longest int // max run length ever
}

// Streaks computes current and longest streak from a user's activity dates.
// Dates may contain duplicates and arrive in any order. A gap of exactly one
// day extends a run; any larger gap starts a new one. A run only counts as
// current if it ends today: a missed day zeroes the current streak with no
// grace period.
func Streaks(dates []clock.Date, today clock.Date) StreakResult {
	if len(dates) == 0 {
		return StreakResult{}
	}

	distinct := DistinctSorted(dates)

	var res StreakResult
	runLen := 0
	var runEnd clock.Date

	for i, d := range distinct {
		if i > 0 && d == distinct[i-1].AddDays(1) {
			runLen++
		} else {
			runLen = 1
		}
		runEnd = d

		if runLen > res.Longest {
			res.Longest = runLen
		}
		if runEnd == today {
			res.Current = runLen
		}
	}

	return res
}

// DistinctSorted returns the unique dates in ascending order
func DistinctSorted(dates []clock.Date) []clock.Date {
	out := make([]clock.Date, len(dates))
	copy(out, dates)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	n := 0
	for i, d := range out {
		if i == 0 || d != out[i-1] {
			out[n] = d
			n++
		}
	}
	return out[:n]
}
