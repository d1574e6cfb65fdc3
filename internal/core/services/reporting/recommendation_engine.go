package reporting

import (
	"fmt"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

const maxRecommendations = 5

// RecommendationEngine generates actionable security recommendations
type RecommendationEngine struct{}

// NewRecommendationEngine creates a new recommendation engine instance
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// GenerateRecommendations creates prioritized recommendations for the top risks
func (re *RecommendationEngine) GenerateRecommendations(topRisks []domain.RiskItem) []domain.Recommendation {
	var recommendations []domain.Recommendation

	for _, risk := range topRisks {
		if rec := re.getRecommendationForFinding(risk.Finding); rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}

	// Pad with general practice when there is little to say
	if len(recommendations) < 3 {
		recommendations = append(recommendations, re.getGeneralRecommendations()...)
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

// getRecommendationForFinding returns the remediation for a finding code
func (re *RecommendationEngine) getRecommendationForFinding(f domain.Finding) *domain.Recommendation {
	n := len(f.Services)
	var rec domain.Recommendation

	switch f.Code {
	case FindingOpenNetwork:
		rec = domain.Recommendation{
			Priority:    "critical",
			Title:       "Encrypt Open Networks",
			Description: fmt.Sprintf("%d services broadcast without encryption. %d stations send traffic in the clear.", n, f.Stations),
			Actions: []string{
				"Switch guest services to OWE where clients support it",
				"Otherwise enable WPA2/WPA3 Personal with a rotated passphrase",
				"Isolate guest clients from each other and from internal VLANs",
			},
			EstimatedEffort: "1-2 hours",
			ImpactReduction: 90.0,
		}
	case FindingUnrecognised:
		rec = domain.Recommendation{
			Priority:    "high",
			Title:       "Review Unrecognised Security Settings",
			Description: fmt.Sprintf("%d services report a security mode the dashboard cannot classify.", n),
			Actions: []string{
				"Inspect the service in the controller UI",
				"Re-save it with an explicit WPA2/WPA3 profile",
				"Confirm legacy modes such as WEP are not in use",
			},
			EstimatedEffort: "30 minutes",
			ImpactReduction: 70.0,
		}
	case FindingTKIP:
		rec = domain.Recommendation{
			Priority:    "high",
			Title:       "Disable TKIP",
			Description: fmt.Sprintf("%d services still allow TKIP, which is deprecated and caps link rates at 54 Mbps.", n),
			Actions: []string{
				"Set the encryption cipher to AES (CCMP)",
				"Update clients that cannot associate without TKIP",
			},
			EstimatedEffort: "30 minutes",
			ImpactReduction: 75.0,
		}
	case FindingPMFDisabled:
		rec = domain.Recommendation{
			Priority:    "medium",
			Title:       "Enable Protected Management Frames",
			Description: fmt.Sprintf("%d services have PMF disabled, leaving clients open to forged deauthentication.", n),
			Actions: []string{
				"Set PMF to capable on WPA2 services",
				"Set PMF to required on WPA3-only services",
			},
			EstimatedEffort: "15 minutes",
			ImpactReduction: 50.0,
		}
	case FindingWPA2Personal:
		rec = domain.Recommendation{
			Priority:    "medium",
			Title:       "Migrate WPA2 Personal to WPA3",
			Description: fmt.Sprintf("%d services use a pre-shared key without SAE. Captured handshakes allow offline guessing.", n),
			Actions: []string{
				"Enable WPA3 transition mode and monitor client compatibility",
				"Use passphrases of at least 16 characters",
				"Move to WPA3-SAE only once legacy clients are retired",
			},
			EstimatedEffort: "2-4 hours",
			ImpactReduction: 60.0,
		}
	case FindingTransitionMode:
		rec = domain.Recommendation{
			Priority:    "low",
			Title:       "Plan Exit From Transition Mode",
			Description: fmt.Sprintf("%d services accept legacy clients alongside WPA3, allowing downgrade.", n),
			Actions: []string{
				"Inventory clients that associate without WPA3",
				"Disable transition mode when none remain",
			},
			EstimatedEffort: "Varies",
			ImpactReduction: 40.0,
		}
	default:
		return nil
	}

	rec.Affected = f.Services
	return &rec
}

// getGeneralRecommendations returns general security best practices
func (re *RecommendationEngine) getGeneralRecommendations() []domain.Recommendation {
	return []domain.Recommendation{
		{
			Priority:    "medium",
			Title:       "Segment Wireless Networks",
			Description: "Separate guest, IoT and corporate services to limit the reach of a compromised client.",
			Actions: []string{
				"Map each service to its own VLAN",
				"Apply firewall rules between segments",
				"Document which SSID serves which population",
			},
			EstimatedEffort: "4-8 hours",
			ImpactReduction: 60.0,
		},
		{
			Priority:    "low",
			Title:       "Rotate Pre-Shared Keys",
			Description: "Shared passphrases leak over time through departed staff and saved client profiles.",
			Actions: []string{
				"Rotate personal-mode passphrases at least twice a year",
				"Store passphrases in a password manager",
			},
			EstimatedEffort: "1 hour",
			ImpactReduction: 40.0,
		},
		{
			Priority:    "low",
			Title:       "Review Security Reports Regularly",
			Description: "Schedule periodic reviews to catch configuration drift on the controller.",
			Actions: []string{
				"Export this report monthly",
				"Check the audit log for unexpected security edits",
			},
			EstimatedEffort: "Ongoing (1 hour/month)",
			ImpactReduction: 30.0,
		},
	}
}
