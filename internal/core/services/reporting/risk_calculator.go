package reporting

import (
	"math"
	"sort"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

// RiskCalculator provides methods for calculating security risk scores
type RiskCalculator struct{}

// NewRiskCalculator creates a new risk calculator instance
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

// CalculateOverallRisk calculates the overall risk score (0-10) from the
// findings and the number of stations exposed to them.
func (rc *RiskCalculator) CalculateOverallRisk(findings []domain.Finding) float64 {
	if len(findings) == 0 {
		return 0.0
	}

	// Average severity weighted by the number of affected services
	var total, weight float64
	var exposed int
	for _, f := range findings {
		n := float64(max(len(f.Services), 1))
		total += float64(f.Severity) * n
		weight += n
		exposed += f.Stations
	}
	avgRisk := total / weight

	// Exposure factor: 1.0 with no stations, capped at 1.5 for 50+ stations
	exposureFactor := 1.0 + math.Min(float64(exposed)/100.0, 0.5)

	return math.Min(avgRisk*exposureFactor, 10.0)
}

// GetRiskLevel converts numeric score to human-readable level
func (rc *RiskCalculator) GetRiskLevel(score float64) string {
	switch {
	case score >= 8.0:
		return "Critical"
	case score >= 6.0:
		return "High"
	case score >= 4.0:
		return "Medium"
	default:
		return "Low"
	}
}

// CalculateTopRisks ranks findings by severity, spread and exposure.
func (rc *RiskCalculator) CalculateTopRisks(findings []domain.Finding, limit int) []domain.RiskItem {
	if limit <= 0 {
		return nil
	}

	risks := make([]domain.RiskItem, 0, len(findings))
	for _, f := range findings {
		// severity * affected services, boosted up to 2x by associated stations
		score := float64(f.Severity) * float64(max(len(f.Services), 1)) *
			(1.0 + math.Min(float64(f.Stations)/20.0, 1.0))
		risks = append(risks, domain.RiskItem{
			Finding:    f,
			Impact:     rc.getImpactLevel(f.Severity),
			Likelihood: rc.getLikelihoodLevel(f.Stations),
			RiskScore:  score,
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].Finding.Code < risks[j].Finding.Code
	})

	if len(risks) > limit {
		risks = risks[:limit]
	}
	for i := range risks {
		risks[i].Rank = i + 1
	}
	return risks
}

// getImpactLevel returns a human-readable impact description based on severity
func (rc *RiskCalculator) getImpactLevel(severity int) string {
	switch {
	case severity >= 9:
		return "Severe - Traffic readable by anyone in range"
	case severity >= 7:
		return "High - Weak or unknown protection"
	case severity >= 4:
		return "Medium - Offline guessing or frame forgery"
	default:
		return "Low - Downgrade exposure"
	}
}

// getLikelihoodLevel returns a human-readable likelihood description based on exposed station count
func (rc *RiskCalculator) getLikelihoodLevel(stations int) string {
	switch {
	case stations >= 20:
		return "Very High - Heavily used"
	case stations >= 5:
		return "High - Multiple clients"
	case stations >= 1:
		return "Medium - Clients associated"
	default:
		return "Low - No associated clients"
	}
}
