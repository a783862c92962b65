package api

import (
	"encoding/json"
	"net/http"

	"github.com/martinsvarc/teamtables/internal/auth"
	"github.com/martinsvarc/teamtables/internal/storage"
	"github.com/rs/zerolog"
)

// AdminHandler handles destructive maintenance endpoints
type AdminHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(store storage.Store, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		store:  store,
		logger: logger.With().Str("component", "admin_handler").Logger(),
	}
}

// RequireAdmin middleware — only admin role allowed
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetUserFromContext(r.Context())
		if !ok || !auth.HasRole(claims, "admin") {
			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"error":"admin role required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ResetData handles POST /internal/admin/reset
// Deletes all stored call records. Intended for test environments.
func (h *AdminHandler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.store.TruncateAll(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("failed to truncate call records")
		http.Error(w, "failed to reset data", http.StatusInternalServerError)
		return
	}

	h.logger.Warn().Msg("all call records deleted")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "reset complete"})
}
