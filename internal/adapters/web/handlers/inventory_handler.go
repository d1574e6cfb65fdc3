package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
)

// ServiceNotifier is told about successful security updates.
type ServiceNotifier interface {
	NotifyServiceUpdated(id string, profile domain.SecurityProfile)
}

// InventoryHandler serves the normalised services and stations
type InventoryHandler struct {
	Service  ports.InventoryService
	Notifier ServiceNotifier
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service ports.InventoryService, notifier ServiceNotifier) *InventoryHandler {
	return &InventoryHandler{
		Service:  service,
		Notifier: notifier,
	}
}

// HandleListServices returns every wireless service
func (h *InventoryHandler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Service.ListServices(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

// HandleGetService returns one service
func (h *InventoryHandler) HandleGetService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !domain.IsValidServiceID(id) {
		writeError(w, http.StatusBadRequest, "Invalid service id")
		return
	}
	svc, err := h.Service.GetService(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// HandleUpdateSecurity applies a security edit to a service
func (h *InventoryHandler) HandleUpdateSecurity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !domain.IsValidServiceID(id) {
		writeError(w, http.StatusBadRequest, "Invalid service id")
		return
	}

	var edit domain.SecurityEdit
	if err := decodeBody(w, r, &edit); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if edit.Kind != nil {
		kind, ok := domain.ParseSecurityKind(string(*edit.Kind))
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown security kind")
			return
		}
		edit.Kind = &kind
	}

	profile, err := h.Service.UpdateSecurity(r.Context(), id, edit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if h.Notifier != nil {
		h.Notifier.NotifyServiceUpdated(id, profile)
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "security": profile})
}

// HandleListStations returns associated stations. ?cached=true serves the
// last polled result without contacting the controller.
func (h *InventoryHandler) HandleListStations(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("cached") == "true" {
		writeJSON(w, http.StatusOK, map[string]any{"stations": h.Service.LastStations()})
		return
	}
	stations, err := h.Service.ListStations(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": stations})
}

// HandleRateHistory returns persisted rate samples of one station
func (h *InventoryHandler) HandleRateHistory(w http.ResponseWriter, r *http.Request) {
	mac := mux.Vars(r)["mac"]
	if !domain.IsValidMAC(mac) {
		writeError(w, http.StatusBadRequest, "Invalid MAC address")
		return
	}

	history, err := h.Service.RateHistory(r.Context(), mac, queryLimit(r, 100, 1000))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch rate history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mac": mac, "history": history})
}
