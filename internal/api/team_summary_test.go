package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/martinsvarc/teamtables/internal/aggregator"
	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/storage"
	"github.com/martinsvarc/teamtables/internal/types"
	"github.com/rs/zerolog"
)

func newTestHandler(t *testing.T, records []types.CallRecord) (*TeamSummaryHandler, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	for _, rec := range records {
		if err := store.SaveCallRecord(context.Background(), rec); err != nil {
			t.Fatalf("failed to seed record: %v", err)
		}
	}

	clk := clock.NewFixed(time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), time.UTC, time.Monday)
	logger := zerolog.New(&bytes.Buffer{})
	service := aggregator.NewService(store, clk, 5, logger)
	return NewTeamSummaryHandler(service, logger), store
}

func score(v float64) *float64 { return &v }

func TestGetTeamSummary(t *testing.T) {
	records := []types.CallRecord{
		{
			TeamID:        "team-1",
			CallID:        "call-1",
			UserID:        "user-1",
			UserName:      "Ana",
			CallTimestamp: "2024-06-02T10:00:00Z",
			Scores:        types.RubricScores{Overall: score(80)},
		},
		{
			TeamID:        "team-1",
			CallID:        "call-2",
			UserID:        "user-1",
			UserName:      "Ana",
			CallTimestamp: "2024-06-03T09:00:00Z",
			Scores:        types.RubricScores{Overall: score(90)},
		},
		{
			TeamID:        "team-1",
			CallID:        "call-3",
			UserID:        "user-2",
			UserName:      "Ben",
			CallTimestamp: "2024-06-01T15:30:00Z",
		},
	}
	handler, _ := newTestHandler(t, records)

	req := httptest.NewRequest(http.MethodGet, "/api/call-records?memberId=user-1&teamId=team-1", nil)
	rr := httptest.NewRecorder()
	handler.GetTeamSummary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var summary types.TeamSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if summary.CurrentUser == nil {
		t.Fatal("expected current user in response")
	}
	if summary.CurrentUser.UserID != "user-1" {
		t.Errorf("expected current user user-1, got %s", summary.CurrentUser.UserID)
	}
	if summary.CurrentUser.CurrentStreak != 2 {
		t.Errorf("expected current streak 2, got %d", summary.CurrentUser.CurrentStreak)
	}

	if len(summary.TeamMembers) != 2 {
		t.Fatalf("expected 2 team members, got %d", len(summary.TeamMembers))
	}
	// Roster is ordered by user name
	if summary.TeamMembers[0].UserName != "Ana" || summary.TeamMembers[1].UserName != "Ben" {
		t.Errorf("unexpected roster order: %s, %s",
			summary.TeamMembers[0].UserName, summary.TeamMembers[1].UserName)
	}

	if len(summary.RecentCalls) != 3 {
		t.Fatalf("expected 3 recent calls, got %d", len(summary.RecentCalls))
	}
	if summary.RecentCalls[0].CallID != "call-2" {
		t.Errorf("expected newest call first, got %s", summary.RecentCalls[0].CallID)
	}
}

func TestGetTeamSummaryMissingParams(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	tests := []struct {
		name string
		url  string
	}{
		{"missing memberId", "/api/call-records?teamId=team-1"},
		{"missing teamId", "/api/call-records?memberId=user-1"},
		{"missing both", "/api/call-records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rr := httptest.NewRecorder()
			handler.GetTeamSummary(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rr.Code)
			}
		})
	}
}

func TestGetUserSummary(t *testing.T) {
	records := []types.CallRecord{
		{
			TeamID:        "team-1",
			CallID:        "call-1",
			UserID:        "user-1",
			UserName:      "Ana",
			CallTimestamp: "2024-06-03T09:00:00Z",
		},
		{
			TeamID:        "team-2",
			CallID:        "call-2",
			UserID:        "user-1",
			UserName:      "Ana",
			CallTimestamp: "2024-06-02T09:00:00Z",
		},
	}
	handler, _ := newTestHandler(t, records)

	req := httptest.NewRequest(http.MethodGet, "/api/call-records/user?memberId=user-1", nil)
	rr := httptest.NewRecorder()
	handler.GetUserSummary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp userSummaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Summary == nil {
		t.Fatal("expected summary in response")
	}
	// Records from both teams count toward the user's totals
	if resp.Summary.TotalTrainings != 2 {
		t.Errorf("expected 2 total trainings, got %d", resp.Summary.TotalTrainings)
	}
}

func TestGetUserSummaryNotFound(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/call-records/user?memberId=nobody", nil)
	rr := httptest.NewRecorder()
	handler.GetUserSummary(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestResetData(t *testing.T) {
	records := []types.CallRecord{
		{
			TeamID:        "team-1",
			CallID:        "call-1",
			UserID:        "user-1",
			CallTimestamp: "2024-06-03T09:00:00Z",
		},
	}
	_, store := newTestHandler(t, records)

	admin := NewAdminHandler(store, zerolog.New(&bytes.Buffer{}))

	req := httptest.NewRequest(http.MethodPost, "/internal/admin/reset", nil)
	rr := httptest.NewRecorder()
	admin.ResetData(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	remaining, err := store.GetTeamCallRecords(context.Background(), "team-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no records after reset, got %d", len(remaining))
	}
}
