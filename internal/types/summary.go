package types

// RatingAverage is the rounded mean score for one rubric dimension.
// SampleCount distinguishes "average of zero" from "no scored calls".
type RatingAverage struct {
	Score       int    `json:"score"`
	SampleCount int    `json:"sampleCount"`
	Summary     string `json:"summary,omitempty"`
}

// AlertSeverity grades dashboard alerts
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// SummaryAlert flags a condition on a member's summary worth surfacing
// on the dashboard
type SummaryAlert struct {
	Rule     string        `json:"rule"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// UserActivitySummary is the per-member dashboard row. It is derived from
// the call-record snapshot on every query and never persisted.
type UserActivitySummary struct {
	UserID         string `json:"userId"`
	UserName       string `json:"userName"`
	UserPictureURL string `json:"userPictureUrl"`

	TrainingsToday int `json:"trainingsToday"`
	ThisWeek       int `json:"thisWeek"`
	ThisMonth      int `json:"thisMonth"`
	TotalTrainings int `json:"totalTrainings"`

	CurrentStreak        int `json:"currentStreak"`
	LongestStreak        int `json:"longestStreak"`
	ConsistencyThisMonth int `json:"consistencyThisMonth"` // percent, 0-100

	Ratings map[Dimension]RatingAverage `json:"ratings"`

	Alerts []SummaryAlert `json:"alerts,omitempty"`
}

// RecentCall is a call record annotated with its normalized date for
// display-sort consistency. Scores and descriptions pass through unchanged.
type RecentCall struct {
	CallRecord
	CallDate string `json:"callDate"` // YYYY-MM-DD in the reference zone
}

// DataQualityWarning reports a record that was excluded from, or partially
// ignored by, aggregation. One bad record never fails a team's summary.
type DataQualityWarning struct {
	CallID string `json:"callId"`
	UserID string `json:"userId,omitempty"`
	Reason string `json:"reason"`
}

// TeamSummary is the facade's response: the requested member's summary,
// the full team roster, and the team's most recent calls.
type TeamSummary struct {
	CurrentUser *UserActivitySummary  `json:"currentUser"`
	TeamMembers []UserActivitySummary `json:"teamMembers"`
	RecentCalls []RecentCall          `json:"recentCalls"`
	Warnings    []DataQualityWarning  `json:"warnings,omitempty"`
}
