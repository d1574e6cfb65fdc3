package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
	"github.com/lcalzada-xor/wdash/internal/core/services/audit"
)

const topRiskLimit = 5

// ReportGenerator assembles security reports from the current inventory
type ReportGenerator struct {
	inventory   ports.InventoryService
	site        string
	riskCalc    *RiskCalculator
	recommender *RecommendationEngine
	now         func() time.Time
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(inventory ports.InventoryService, site string) *ReportGenerator {
	return &ReportGenerator{
		inventory:   inventory,
		site:        site,
		riskCalc:    NewRiskCalculator(),
		recommender: NewRecommendationEngine(),
		now:         time.Now,
	}
}

// Generate builds a report from the controller's services and the most recent
// station poll. Stations are fetched live when nothing has been polled yet; a
// failed live fetch yields a services-only report.
func (g *ReportGenerator) Generate(ctx context.Context) (*domain.SecurityReport, error) {
	services, err := g.inventory.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	stations := g.inventory.LastStations()
	if len(stations) == 0 {
		if live, err := g.inventory.ListStations(ctx); err == nil {
			stations = live
		} else {
			slog.Warn("report generated without stations", "error", err)
		}
	}

	return g.Build(ctx, services, stations), nil
}

// Build scores the given services and stations.
func (g *ReportGenerator) Build(ctx context.Context, services []domain.WirelessService, stations []domain.Station) *domain.SecurityReport {
	findings := DetectFindings(services, stations)
	score := g.riskCalc.CalculateOverallRisk(findings)
	topRisks := g.riskCalc.CalculateTopRisks(findings, topRiskLimit)

	return &domain.SecurityReport{
		ID:              uuid.NewString(),
		Title:           "Wireless Security Report",
		Site:            g.site,
		GeneratedAt:     g.now().UTC(),
		GeneratedBy:     audit.ActorFrom(ctx).Username,
		Services:        services,
		Stations:        stations,
		RiskScore:       score,
		RiskLevel:       g.riskCalc.GetRiskLevel(score),
		TopRisks:        topRisks,
		Recommendations: g.recommender.GenerateRecommendations(topRisks),
	}
}
