package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lcalzada-xor/wdash/internal/core/ports"
	"github.com/lcalzada-xor/wdash/internal/core/services/export"
)

// ExportHandler handles inventory downloads
type ExportHandler struct {
	Inventory ports.InventoryService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(inventory ports.InventoryService) *ExportHandler {
	return &ExportHandler{Inventory: inventory}
}

// HandleExport writes services or stations as CSV or JSON.
// Query: type=services|stations (default services), format=csv|json (default csv).
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "services"
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		writeError(w, http.StatusBadRequest, "Unsupported format")
		return
	}

	var (
		buf bytes.Buffer
		err error
	)
	switch kind {
	case "services":
		services, lerr := h.Inventory.ListServices(r.Context())
		if lerr != nil {
			writeServiceError(w, lerr)
			return
		}
		if format == "csv" {
			err = export.ExportServicesCSV(&buf, services)
		} else {
			err = export.ExportJSON(&buf, services)
		}
	case "stations":
		stations := h.Inventory.LastStations()
		if stations == nil {
			live, lerr := h.Inventory.ListStations(r.Context())
			if lerr != nil {
				writeServiceError(w, lerr)
				return
			}
			stations = live
		}
		if format == "csv" {
			err = export.ExportStationsCSV(&buf, stations)
		} else {
			err = export.ExportJSON(&buf, stations)
		}
	default:
		writeError(w, http.StatusBadRequest, "Unsupported export type")
		return
	}
	if err != nil {
		slog.Error("export failed", "type", kind, "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	contentType := "text/csv"
	if format == "json" {
		contentType = "application/json"
	}
	filename := fmt.Sprintf("wdash-%s-%s.%s", kind, time.Now().UTC().Format("20060102-150405"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("export write aborted", "error", err)
	}
}
