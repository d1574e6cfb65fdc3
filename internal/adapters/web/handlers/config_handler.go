package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
)

// PersistenceToggle switches snapshot persistence at runtime.
type PersistenceToggle interface {
	IsEnabled() bool
	SetEnabled(enabled bool)
}

// ConfigHandler handles runtime configuration
type ConfigHandler struct {
	Persistence PersistenceToggle
	Audit       ports.AuditService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(persistence PersistenceToggle, auditService ports.AuditService) *ConfigHandler {
	return &ConfigHandler{
		Persistence: persistence,
		Audit:       auditService,
	}
}

type persistenceState struct {
	Enabled bool `json:"enabled"`
}

// HandleGetPersistence reports whether rate snapshots are being persisted
func (h *ConfigHandler) HandleGetPersistence(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, persistenceState{Enabled: h.Persistence.IsEnabled()})
}

// HandleSetPersistence toggles rate snapshot persistence
func (h *ConfigHandler) HandleSetPersistence(w http.ResponseWriter, r *http.Request) {
	var req persistenceState
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.Persistence.SetEnabled(req.Enabled)
	// Without a store the recorder stays disabled.
	state := persistenceState{Enabled: h.Persistence.IsEnabled()}

	if h.Audit != nil {
		details := fmt.Sprintf("persistence enabled=%t", state.Enabled)
		if err := h.Audit.Log(r.Context(), domain.ActionConfigChange, "persistence", details); err != nil {
			slog.Warn("failed to audit config change", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, state)
}
