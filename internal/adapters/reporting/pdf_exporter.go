package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

const maxStationRows = 15

// PDFExporter exports reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportSecurityReport renders the security inventory of a site
func (e *PDFExporter) ExportSecurityReport(report *domain.SecurityReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 25)
	pdf.SetFooterFunc(func() { e.addFooter(pdf, report) })
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addOverview(pdf, report)
	e.addKindBreakdown(pdf, report)
	e.addServices(pdf, report)
	e.addRiskSummary(pdf, report)
	e.addRecommendations(pdf, report)
	e.addStations(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *domain.SecurityReport) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, report.Title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if report.Site != "" {
		pdf.SetFont("Arial", "", 14)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 8, "Site: "+report.Site, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func (e *PDFExporter) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) addOverview(pdf *gofpdf.Fpdf, report *domain.SecurityReport) {
	e.sectionTitle(pdf, "Security Overview")

	enabled, estimated := 0, 0
	for _, s := range report.Services {
		if s.Enabled {
			enabled++
		}
	}
	for _, st := range report.Stations {
		if st.Rate.IsEstimated {
			estimated++
		}
	}
	strength := report.StrengthCounts()

	stats := []struct {
		label string
		value int
		color []int
	}{
		{"Wireless Services", len(report.Services), []int{0, 102, 204}},
		{"Enabled", enabled, []int{0, 102, 204}},
		{"Strong", strength[domain.StrengthStrong], e.strengthColor(domain.StrengthStrong)},
		{"Moderate", strength[domain.StrengthModerate], e.strengthColor(domain.StrengthModerate)},
		{"Weak", strength[domain.StrengthWeak], e.strengthColor(domain.StrengthWeak)},
		{"Associated Stations", len(report.Stations), []int{0, 102, 204}},
		{"Estimated Rates", estimated, []int{150, 150, 150}},
	}

	// Two columns
	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}
		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(stat.color[0], stat.color[1], stat.color[2])
		pdf.CellFormat(colWidth-50, 7, fmt.Sprintf("%d", stat.value), "", 0, "R", false, 0, "")

		if i%2 == 1 || i == len(stats)-1 {
			pdf.Ln(7)
		}
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addKindBreakdown(pdf *gofpdf.Fpdf, report *domain.SecurityReport) {
	breakdown := report.KindBreakdown()
	if len(breakdown) == 0 {
		return
	}
	e.sectionTitle(pdf, "Security Types")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(80, 8, "Kind", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Services", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, row := range breakdown {
		pdf.CellFormat(80, 7, string(row.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Count), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addServices(pdf *gofpdf.Fpdf, report *domain.SecurityReport) {
	e.sectionTitle(pdf, "Wireless Services")

	if len(report.Services) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No services reported by the controller", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	header := func() {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(45, 8, "SSID", "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 8, "Security", "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 8, "Cipher", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 8, "PMF", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 8, "Strength", "1", 1, "C", true, 0, "")
	}
	header()

	pdf.SetFont("Arial", "", 9)
	for _, s := range report.Services {
		if pdf.GetY() > 260 {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 9)
		}
		strength := s.Profile.Strength()
		c := e.strengthColor(strength)

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(45, 7, truncate(s.SSID, 24), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, truncate(s.Profile.DisplayName(), 28), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, string(s.Profile.Cipher), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, string(s.Profile.PMF), "1", 0, "C", false, 0, "")
		pdf.SetTextColor(c[0], c[1], c[2])
		pdf.CellFormat(25, 7, string(strength), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addRiskSummary(pdf *gofpdf.Fpdf, report *domain.SecurityReport) {
	e.sectionTitle(pdf, "Risk Assessment")

	c := e.riskColor(report.RiskLevel)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(40, 8, "Overall Risk:", "", 0, "L", false, 0, "")
	pdf.SetFillColor(c[0], c[1], c[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(50, 8, fmt.Sprintf("%s (%.1f/10)", report.RiskLevel, report.RiskScore), "", 1, "C", true, 0, "")
	pdf.Ln(4)

	if weak := report.WeakServices(); len(weak) > 0 {
		names := make([]string, len(weak))
		for i, s := range weak {
			names[i] = s.Name
		}
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 5, "Weak services: "+strings.Join(names, ", "), "", "L", false)
		pdf.Ln(3)
	}

	if len(report.TopRisks) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	headers := []string{"#", "Finding", "Services", "Stations", "Impact"}
	widths := []float64{10, 45, 20, 20, 75}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, risk := range report.TopRisks {
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", risk.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, risk.Finding.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", len(risk.Finding.Services)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", risk.Finding.Stations), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, truncate(risk.Impact, 48), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addRecommendations(pdf *gofpdf.Fpdf, report *domain.SecurityReport) {
	if len(report.Recommendations) == 0 {
		return
	}
	e.sectionTitle(pdf, "Priority Recommendations")

	for _, rec := range report.Recommendations {
		c := e.priorityColor(rec.Priority)
		pdf.SetFillColor(c[0], c[1], c[2])
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(25, 6, strings.ToUpper(rec.Priority), "", 0, "C", true, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(0, 6, "  "+rec.Title, "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 5, rec.Description, "", "L", false)
		for _, action := range rec.Actions {
			pdf.CellFormat(5, 5, "", "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 5, "- "+action, "", "L", false)
		}
		if len(rec.Affected) > 0 {
			pdf.SetFont("Arial", "I", 8)
			pdf.MultiCell(0, 5, "Affected: "+truncate(strings.Join(rec.Affected, ", "), 120), "", "L", false)
		}
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, fmt.Sprintf("Effort: %s | Risk reduction: %.0f%%", rec.EstimatedEffort, rec.ImpactReduction), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}
}

func (e *PDFExporter) riskColor(level string) []int {
	switch level {
	case "Critical":
		return []int{220, 53, 69}
	case "High":
		return []int{253, 126, 20}
	case "Medium":
		return []int{255, 193, 7}
	}
	return []int{40, 167, 69}
}

func (e *PDFExporter) priorityColor(priority string) []int {
	switch priority {
	case "critical":
		return []int{220, 53, 69}
	case "high":
		return []int{253, 126, 20}
	case "medium":
		return []int{255, 193, 7}
	}
	return []int{108, 117, 125}
}

func (e *PDFExporter) addStations(pdf *gofpdf.Fpdf, report *domain.SecurityReport) {
	top := report.TopStations(maxStationRows)
	if len(top) == 0 {
		return
	}
	if pdf.GetY() > 200 {
		pdf.AddPage()
	}
	e.sectionTitle(pdf, "Top Stations by Downlink")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(40, 8, "MAC", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Vendor", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "SSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Down (Mbps)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Up (Mbps)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, st := range top {
		suffix := ""
		if st.Rate.IsEstimated {
			suffix = " *"
		}
		pdf.CellFormat(40, 7, st.MAC, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, truncate(st.Vendor, 16), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, truncate(st.SSID, 22), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f%s", st.Rate.DownlinkBps/1e6, suffix), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f%s", st.Rate.UplinkBps/1e6, suffix), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, "* estimated from byte counters", "", 1, "L", false, 0, "")
}

// strengthColor returns RGB color for a strength grade
func (e *PDFExporter) strengthColor(s domain.Strength) []int {
	switch s {
	case domain.StrengthWeak:
		return []int{220, 53, 69} // Red
	case domain.StrengthModerate:
		return []int{255, 149, 0} // Orange
	default:
		return []int{52, 199, 89} // Green
	}
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, report *domain.SecurityReport) {
	pdf.SetY(-20)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	id := report.ID
	if len(id) > 8 {
		id = id[:8]
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	footer := fmt.Sprintf("Generated by %s | Report ID: %s | Page %d", report.GeneratedBy, id, pdf.PageNo())
	pdf.CellFormat(0, 5, footer, "", 1, "C", false, 0, "")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
