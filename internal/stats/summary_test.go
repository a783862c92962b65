package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/types"
)

func normalizedRecord(callID, ts string, overall *float64, clk clock.ReferenceClock, t *testing.T) NormalizedRecord {
	t.Helper()
	date, err := clk.Normalize(ts)
	if err != nil {
		t.Fatalf("bad fixture timestamp %q: %v", ts, err)
	}
	return NormalizedRecord{
		Record: types.CallRecord{
			CallID:        callID,
			UserID:        "u1",
			TeamID:        "t1",
			CallTimestamp: ts,
			Scores:        types.RubricScores{Overall: overall},
		},
		Date: date,
	}
}

// The reference scenario: calls on June 1-3 with today June 3, overall
// scores 80/90/100, week starting Monday (June 3 is a Monday, so the first
// two calls fall in the previous calendar week).
func TestSummarizeReferenceScenario(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), time.UTC, time.Monday)
	today := clk.Today()

	records := []NormalizedRecord{
		normalizedRecord("c1", "2024-06-01T09:00:00Z", score(80), clk, t),
		normalizedRecord("c2", "2024-06-02T09:00:00Z", score(90), clk, t),
		normalizedRecord("c3", "2024-06-03T09:00:00Z", score(100), clk, t),
	}

	s := Summarize("u1", records, clk, today)

	if s.CurrentStreak != 3 {
		t.Errorf("expected current streak 3, got %d", s.CurrentStreak)
	}
	if s.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", s.LongestStreak)
	}
	if s.TrainingsToday != 1 {
		t.Errorf("expected 1 training today, got %d", s.TrainingsToday)
	}
	if s.ThisMonth != 3 {
		t.Errorf("expected 3 this month, got %d", s.ThisMonth)
	}
	if s.TotalTrainings != 3 {
		t.Errorf("expected 3 total, got %d", s.TotalTrainings)
	}
	// 3 active days of 3 elapsed days in June
	if s.ConsistencyThisMonth != 100 {
		t.Errorf("expected consistency 100, got %d", s.ConsistencyThisMonth)
	}
	if got := s.Ratings[types.DimOverall]; got.Score != 90 || got.SampleCount != 3 {
		t.Errorf("expected overall avg 90 over 3 samples, got %+v", got)
	}
}

func TestSummarizeUsesLatestIdentity(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), time.UTC, time.Monday)
	today := clk.Today()

	older := normalizedRecord("c1", "2024-06-01", nil, clk, t)
	older.Record.UserName = "Old Name"
	older.Record.UserPictureURL = "old.png"
	older.Record.RatingSummaries.Overall = "older summary"

	newer := normalizedRecord("c2", "2024-06-03", nil, clk, t)
	newer.Record.UserName = "New Name"
	newer.Record.UserPictureURL = "new.png"
	newer.Record.RatingSummaries.Overall = "newer summary"

	// Insertion order must not matter
	s := Summarize("u1", []NormalizedRecord{newer, older}, clk, today)

	if s.UserName != "New Name" || s.UserPictureURL != "new.png" {
		t.Errorf("expected latest display identity, got %q %q", s.UserName, s.UserPictureURL)
	}
	if s.Ratings[types.DimOverall].Summary != "newer summary" {
		t.Errorf("expected newest rating summary, got %q", s.Ratings[types.DimOverall].Summary)
	}
}

func TestSummarizeSameDayIdentityUsesTimeOfDay(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), time.UTC, time.Monday)
	today := clk.Today()

	morning := normalizedRecord("c1", "2024-06-03T08:00:00Z", nil, clk, t)
	morning.Record.UserName = "Morning Name"
	morning.Record.RatingSummaries.Overall = "morning summary"

	afternoon := normalizedRecord("c2", "2024-06-03T15:30:00Z", nil, clk, t)
	afternoon.Record.UserName = "Afternoon Name"
	afternoon.Record.RatingSummaries.Overall = "afternoon summary"

	// Snapshot order puts the older call first; the later time of day
	// must still win within the same date
	s := Summarize("u1", []NormalizedRecord{morning, afternoon}, clk, today)

	if s.UserName != "Afternoon Name" {
		t.Errorf("expected latest same-day identity, got %q", s.UserName)
	}
	if s.Ratings[types.DimOverall].Summary != "afternoon summary" {
		t.Errorf("expected latest same-day summary, got %q", s.Ratings[types.DimOverall].Summary)
	}
}

func TestSummarizeFallsBackToOlderSummaryText(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), time.UTC, time.Monday)
	today := clk.Today()

	older := normalizedRecord("c1", "2024-06-01", nil, clk, t)
	older.Record.RatingSummaries.Closing = "only closing summary"

	newer := normalizedRecord("c2", "2024-06-03", nil, clk, t)

	s := Summarize("u1", []NormalizedRecord{older, newer}, clk, today)

	if s.Ratings[types.DimClosing].Summary != "only closing summary" {
		t.Errorf("expected fallback to older non-empty summary, got %q", s.Ratings[types.DimClosing].Summary)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), time.UTC, time.Monday)

	s := Summarize("u1", nil, clk, clk.Today())

	if s.UserID != "u1" {
		t.Errorf("expected user id preserved, got %q", s.UserID)
	}
	if s.TotalTrainings != 0 || s.CurrentStreak != 0 || s.LongestStreak != 0 || s.ConsistencyThisMonth != 0 {
		t.Errorf("expected zeroed metrics for empty input, got %+v", s)
	}
	for _, dim := range types.AllDimensions {
		if avg := s.Ratings[dim]; avg.Score != 0 || avg.SampleCount != 0 {
			t.Errorf("dimension %s: expected zero average with zero samples, got %+v", dim, avg)
		}
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC), time.UTC, time.Monday)
	today := clk.Today()

	records := []NormalizedRecord{
		normalizedRecord("c1", "2024-05-30", score(70), clk, t),
		normalizedRecord("c2", "2024-06-03", score(85), clk, t),
		normalizedRecord("c3", "2024-06-05", nil, clk, t),
	}

	first := Summarize("u1", records, clk, today)
	second := Summarize("u1", records, clk, today)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
