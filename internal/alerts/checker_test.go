package alerts

import (
	"testing"
	"time"

	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/types"
)

func TestCheckSummaryAlerts(t *testing.T) {
	midMonth := clock.Date{Year: 2024, Month: time.June, Day: 15}
	earlyMonth := clock.Date{Year: 2024, Month: time.June, Day: 3}

	tests := []struct {
		name      string
		summary   types.UserActivitySummary
		today     clock.Date
		wantRules []string
	}{
		{
			name:    "healthy member",
			summary: types.UserActivitySummary{CurrentStreak: 5, LongestStreak: 10, ConsistencyThisMonth: 80},
			today:   midMonth,
		},
		{
			name:      "broken streak",
			summary:   types.UserActivitySummary{CurrentStreak: 0, LongestStreak: 7, ConsistencyThisMonth: 60},
			today:     midMonth,
			wantRules: []string{"streak_broken"},
		},
		{
			name:    "short streak broken is not alerted",
			summary: types.UserActivitySummary{CurrentStreak: 0, LongestStreak: 2, ConsistencyThisMonth: 60},
			today:   midMonth,
		},
		{
			name:      "low consistency mid month",
			summary:   types.UserActivitySummary{CurrentStreak: 1, LongestStreak: 1, ConsistencyThisMonth: 10},
			today:     midMonth,
			wantRules: []string{"low_consistency"},
		},
		{
			name:    "low consistency early in month gets grace",
			summary: types.UserActivitySummary{CurrentStreak: 1, LongestStreak: 1, ConsistencyThisMonth: 10},
			today:   earlyMonth,
		},
		{
			name:      "both rules fire",
			summary:   types.UserActivitySummary{CurrentStreak: 0, LongestStreak: 5, ConsistencyThisMonth: 5},
			today:     midMonth,
			wantRules: []string{"streak_broken", "low_consistency"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries := []types.UserActivitySummary{tt.summary}
			CheckSummaryAlerts(summaries, tt.today)

			got := summaries[0].Alerts
			if len(got) != len(tt.wantRules) {
				t.Fatalf("expected %d alerts, got %d: %+v", len(tt.wantRules), len(got), got)
			}
			for i, rule := range tt.wantRules {
				if got[i].Rule != rule {
					t.Errorf("alert %d: expected rule %s, got %s", i, rule, got[i].Rule)
				}
			}
		})
	}
}

func TestCheckSummaryAlertsResetsPreviousAlerts(t *testing.T) {
	summaries := []types.UserActivitySummary{{
		CurrentStreak:        3,
		LongestStreak:        3,
		ConsistencyThisMonth: 90,
		Alerts:               []types.SummaryAlert{{Rule: "stale"}},
	}}

	CheckSummaryAlerts(summaries, clock.Date{Year: 2024, Month: time.June, Day: 15})

	if len(summaries[0].Alerts) != 0 {
		t.Errorf("expected stale alerts cleared, got %+v", summaries[0].Alerts)
	}
}
