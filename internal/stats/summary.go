package stats

import (
	"sort"
	"time"

	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/types"
)

// Summarize builds the full activity summary for one user from their
// normalized records. It is a pure function of (records, today): running it
// twice over the same snapshot yields identical summaries.
func Summarize(userID string, records []NormalizedRecord, clk clock.ReferenceClock, today clock.Date) types.UserActivitySummary {
	summary := types.UserActivitySummary{
		UserID:  userID,
		Ratings: make(map[types.Dimension]types.RatingAverage, len(types.AllDimensions)),
	}

	// Most recent record first; its denormalized display identity and
	// rating summaries are authoritative for the user. Same-day records
	// are ordered by their raw timestamp's time of day; unparseable or
	// date-only timestamps fall back to snapshot order.
	ordered := orderNewestFirst(records, clk)

	if len(ordered) > 0 {
		summary.UserName = ordered[0].Record.UserName
		summary.UserPictureURL = ordered[0].Record.UserPictureURL
	}

	dates := make([]clock.Date, len(ordered))
	for i, rec := range ordered {
		dates[i] = rec.Date
	}

	counts := CountWindows(dates, clk, today)
	summary.TrainingsToday = counts.Today
	summary.ThisWeek = counts.ThisWeek
	summary.ThisMonth = counts.ThisMonth
	summary.TotalTrainings = counts.Total

	streaks := Streaks(dates, today)
	summary.CurrentStreak = streaks.Current
	summary.LongestStreak = streaks.Longest

	activeDays := 0
	for _, d := range DistinctSorted(dates) {
		if d.SameMonth(today) && !d.After(today) {
			activeDays++
		}
	}
	summary.ConsistencyThisMonth = Consistency(activeDays, today.Day)

	averages := AverageScores(ordered)
	for _, dim := range types.AllDimensions {
		avg := averages[dim]
		summary.Ratings[dim] = types.RatingAverage{
			Score:       avg.Score,
			SampleCount: avg.SampleCount,
			Summary:     latestSummaryText(ordered, dim),
		}
	}

	return summary
}

// orderNewestFirst sorts records by date descending, breaking same-day
// ties with the raw timestamp's instant when both sides parse
func orderNewestFirst(records []NormalizedRecord, clk clock.ReferenceClock) []NormalizedRecord {
	type keyed struct {
		rec NormalizedRecord
		at  time.Time
		ok  bool
	}

	wrapped := make([]keyed, len(records))
	for i, rec := range records {
		at, err := clk.Instant(rec.Record.CallTimestamp)
		wrapped[i] = keyed{rec: rec, at: at, ok: err == nil}
	}

	sort.SliceStable(wrapped, func(i, j int) bool {
		if wrapped[i].rec.Date != wrapped[j].rec.Date {
			return wrapped[j].rec.Date.Before(wrapped[i].rec.Date)
		}
		if wrapped[i].ok && wrapped[j].ok {
			return wrapped[j].at.Before(wrapped[i].at)
		}
		return false
	})

	ordered := make([]NormalizedRecord, len(wrapped))
	for i, k := range wrapped {
		ordered[i] = k.rec
	}
	return ordered
}

// latestSummaryText returns the most recent non-empty rating summary for a
// dimension. Summaries are denormalized per user onto each record; when
// records disagree the newest wins.
func latestSummaryText(ordered []NormalizedRecord, dim types.Dimension) string {
	for _, rec := range ordered {
		if text := rec.Record.RatingSummaries.Get(dim); text != "" {
			return text
		}
	}
	return ""
}
