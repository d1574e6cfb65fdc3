package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
	"github.com/lcalzada-xor/wdash/internal/core/services/reporting"
)

// ReportExporter renders a security report.
type ReportExporter interface {
	ExportSecurityReport(report *domain.SecurityReport) ([]byte, error)
}

// ReportHandler handles report generation
type ReportHandler struct {
	Generator *reporting.ReportGenerator
	Audit     ports.AuditService
	Exporter  ReportExporter
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(inventory ports.InventoryService, auditService ports.AuditService, exporter ReportExporter, site string) *ReportHandler {
	return &ReportHandler{
		Generator: reporting.NewReportGenerator(inventory, site),
		Audit:     auditService,
		Exporter:  exporter,
	}
}

// HandleSecurityReport renders the current services and stations as a PDF
func (h *ReportHandler) HandleSecurityReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.Generator.Generate(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := h.Exporter.ExportSecurityReport(report)
	if err != nil {
		slog.Error("failed to render report", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	if h.Audit != nil {
		details := fmt.Sprintf("%d services, %d stations, risk %s", len(report.Services), len(report.Stations), report.RiskLevel)
		if err := h.Audit.Log(ctx, domain.ActionReportExport, report.ID, details); err != nil {
			slog.Warn("failed to audit report export", "error", err)
		}
	}

	filename := fmt.Sprintf("wdash-security-%s.pdf", report.GeneratedAt.Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Debug("report write aborted", "error", err)
	}
}
