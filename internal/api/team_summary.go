package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/martinsvarc/teamtables/internal/aggregator"
	"github.com/martinsvarc/teamtables/internal/types"
	"github.com/rs/zerolog"
)

// TeamSummaryHandler serves the aggregated dashboard payload
type TeamSummaryHandler struct {
	service *aggregator.Service
	logger  zerolog.Logger
}

// NewTeamSummaryHandler creates a new TeamSummaryHandler
func NewTeamSummaryHandler(service *aggregator.Service, logger zerolog.Logger) *TeamSummaryHandler {
	return &TeamSummaryHandler{
		service: service,
		logger:  logger.With().Str("component", "team_summary_handler").Logger(),
	}
}

// GetTeamSummary returns the full team dashboard for the requesting member
// GET /api/call-records?memberId=<userId>&teamId=<teamId>
func (h *TeamSummaryHandler) GetTeamSummary(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("memberId")
	teamID := r.URL.Query().Get("teamId")

	summary, err := h.service.TeamSummary(r.Context(), memberID, teamID)
	if err != nil {
		switch {
		case errors.Is(err, aggregator.ErrMissingUserID):
			http.Error(w, "memberId query parameter is required", http.StatusBadRequest)
		case errors.Is(err, aggregator.ErrMissingTeamID):
			http.Error(w, "teamId query parameter is required", http.StatusBadRequest)
		case errors.Is(err, aggregator.ErrSourceUnavailable):
			h.logger.Error().Err(err).Str("team_id", teamID).Msg("record source unavailable")
			http.Error(w, "record source unavailable", http.StatusBadGateway)
		default:
			h.logger.Error().Err(err).Str("team_id", teamID).Msg("failed to build team summary")
			http.Error(w, "failed to build team summary", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// userSummaryResponse wraps a single member's summary with any data
// quality warnings raised while normalizing their records
type userSummaryResponse struct {
	Summary  *types.UserActivitySummary `json:"summary"`
	Warnings []types.DataQualityWarning `json:"warnings,omitempty"`
}

// GetUserSummary returns the cross-team activity summary for one user
// GET /api/call-records/user?memberId=<userId>
func (h *TeamSummaryHandler) GetUserSummary(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("memberId")

	summary, warnings, err := h.service.UserSummary(r.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, aggregator.ErrMissingUserID):
			http.Error(w, "memberId query parameter is required", http.StatusBadRequest)
		case errors.Is(err, aggregator.ErrSourceUnavailable):
			h.logger.Error().Err(err).Str("member_id", memberID).Msg("record source unavailable")
			http.Error(w, "record source unavailable", http.StatusBadGateway)
		default:
			h.logger.Error().Err(err).Str("member_id", memberID).Msg("failed to build user summary")
			http.Error(w, "failed to build user summary", http.StatusInternalServerError)
		}
		return
	}

	if summary == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userSummaryResponse{Summary: summary, Warnings: warnings})
}
