package handlers

import (
	"log/slog"
	"net/http"

	"github.com/lcalzada-xor/wdash/internal/core/ports"
)

// AuditHandler handles audit logging operations
type AuditHandler struct {
	Service ports.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{
		Service: service,
	}
}

// HandleGetLogs returns audit logs, newest first
func (h *AuditHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 100, 1000)
	logs, err := h.Service.GetLogs(r.Context(), limit)
	if err != nil {
		slog.Error("failed to fetch audit logs", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"logs": logs,
	})
}
