package alerts

import (
	"fmt"

	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/types"
)

const (
	streakAlertThreshold    = 3  // longest streak worth protecting
	lowConsistencyThreshold = 30 // percent
	consistencyGraceDays    = 7  // skip the rule early in the month
)

// CheckSummaryAlerts evaluates dashboard alert rules for a slice of member
// summaries, mutating each summary's Alerts field in place.
func CheckSummaryAlerts(summaries []types.UserActivitySummary, today clock.Date) {
	for i := range summaries {
		summaries[i].Alerts = nil

		if summaries[i].LongestStreak >= streakAlertThreshold && summaries[i].CurrentStreak == 0 {
			summaries[i].Alerts = append(summaries[i].Alerts, types.SummaryAlert{
				Rule:     "streak_broken",
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("%d-day streak broken", summaries[i].LongestStreak),
			})
		}

		if today.Day >= consistencyGraceDays && summaries[i].ConsistencyThisMonth < lowConsistencyThreshold {
			summaries[i].Alerts = append(summaries[i].Alerts, types.SummaryAlert{
				Rule:     "low_consistency",
				Severity: types.SeverityCritical,
				Message:  fmt.Sprintf("consistency at %d%% this month", summaries[i].ConsistencyThisMonth),
			})
		}
	}
}
