// Package aggregator is the single entry point external collaborators call
// to obtain dashboard summaries. Every query reads a fresh snapshot from
// the record source and recomputes summaries from scratch; nothing is
// cached and no state is shared between requests.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/martinsvarc/teamtables/internal/alerts"
	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/metrics"
	"github.com/martinsvarc/teamtables/internal/stats"
	"github.com/martinsvarc/teamtables/internal/storage"
	"github.com/martinsvarc/teamtables/internal/types"
	"github.com/rs/zerolog"
)

var (
	// ErrMissingUserID rejects a query without a member identifier
	ErrMissingUserID = errors.New("userId is required")
	// ErrMissingTeamID rejects a query without a team identifier
	ErrMissingTeamID = errors.New("teamId is required")
	// ErrSourceUnavailable wraps record-source failures so callers can tell
	// "the team has zero calls" apart from "we couldn't reach the source"
	ErrSourceUnavailable = errors.New("call-record source unavailable")
)

// Service composes the date normalizer, grouper, streak calculator, window
// aggregator and consistency scorer into per-user and team summaries
type Service struct {
	store       storage.Store
	clk         clock.ReferenceClock
	recentLimit int
	logger      zerolog.Logger
}

// NewService creates a new aggregation service
func NewService(store storage.Store, clk clock.ReferenceClock, recentLimit int, logger zerolog.Logger) *Service {
	return &Service{
		store:       store,
		clk:         clk,
		recentLimit: recentLimit,
		logger:      logger.With().Str("component", "aggregator").Logger(),
	}
}

// TeamSummary computes the requested member's summary, the full team
// roster and the team's most recent calls from the current record set.
// Valid identifiers with no matching records yield an empty roster and a
// nil current user, not an error.
func (s *Service) TeamSummary(ctx context.Context, userID, teamID string) (*types.TeamSummary, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if teamID == "" {
		return nil, ErrMissingTeamID
	}

	started := time.Now()
	m := metrics.Get()

	records, err := s.store.GetTeamCallRecords(ctx, teamID)
	if err != nil {
		m.RecordAggregationError()
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	today := s.clk.Today()
	normalized, warnings := stats.Normalize(records, s.clk)
	m.RecordMalformedRecords(len(warnings))
	for _, warning := range warnings {
		s.logger.Warn().
			Str("call_id", warning.CallID).
			Str("user_id", warning.UserID).
			Str("reason", warning.Reason).
			Msg("call record excluded from aggregation")
	}

	byUser := stats.GroupByUser(normalized, teamID)

	summary := &types.TeamSummary{
		TeamMembers: make([]types.UserActivitySummary, 0, len(byUser)),
		RecentCalls: recentCalls(normalized, s.recentLimit),
		Warnings:    warnings,
	}

	for memberID, recs := range byUser {
		member := stats.Summarize(memberID, recs, s.clk, today)
		summary.TeamMembers = append(summary.TeamMembers, member)
	}
	sort.Slice(summary.TeamMembers, func(i, j int) bool {
		a, b := summary.TeamMembers[i], summary.TeamMembers[j]
		if a.UserName != b.UserName {
			return a.UserName < b.UserName
		}
		return a.UserID < b.UserID
	})

	alerts.CheckSummaryAlerts(summary.TeamMembers, today)

	for i := range summary.TeamMembers {
		if summary.TeamMembers[i].UserID == userID {
			summary.CurrentUser = &summary.TeamMembers[i]
			break
		}
	}

	m.RecordSummaryComputed(time.Since(started), len(summary.TeamMembers))

	s.logger.Debug().
		Str("team_id", teamID).
		Str("user_id", userID).
		Int("members", len(summary.TeamMembers)).
		Int("records", len(records)).
		Int("warnings", len(warnings)).
		Msg("team summary computed")

	return summary, nil
}

// UserSummary computes a single member's summary from their own records,
// independent of team membership
func (s *Service) UserSummary(ctx context.Context, userID string) (*types.UserActivitySummary, []types.DataQualityWarning, error) {
	if userID == "" {
		return nil, nil, ErrMissingUserID
	}

	records, err := s.store.GetUserCallRecords(ctx, userID)
	if err != nil {
		metrics.Get().RecordAggregationError()
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	normalized, warnings := stats.Normalize(records, s.clk)
	metrics.Get().RecordMalformedRecords(len(warnings))

	summary := stats.Summarize(userID, normalized, s.clk, s.clk.Today())
	return &summary, warnings, nil
}

// recentCalls returns the newest records annotated with their normalized
// display date, ordered by that date descending. Scores and descriptions
// pass through unchanged.
func recentCalls(normalized []stats.NormalizedRecord, limit int) []types.RecentCall {
	ordered := make([]stats.NormalizedRecord, len(normalized))
	copy(ordered, normalized)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[j].Date.Before(ordered[i].Date)
		}
		return ordered[i].Record.CallID > ordered[j].Record.CallID
	})

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}

	out := make([]types.RecentCall, len(ordered))
	for i, rec := range ordered {
		out[i] = types.RecentCall{CallRecord: rec.Record, CallDate: rec.Date.String()}
	}
	return out
}
