package reporting

import (
	"testing"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecommendations(t *testing.T) {
	re := NewRecommendationEngine()

	topRisks := []domain.RiskItem{
		{Rank: 1, Finding: domain.Finding{Code: FindingOpenNetwork, Severity: 9, Services: []string{"Guest"}, Stations: 3}},
		{Rank: 2, Finding: domain.Finding{Code: FindingTKIP, Severity: 7, Services: []string{"Printers"}}},
		{Rank: 3, Finding: domain.Finding{Code: FindingWPA2Personal, Severity: 4, Services: []string{"Office", "Lab"}}},
	}

	recommendations := re.GenerateRecommendations(topRisks)
	require.Len(t, recommendations, 3)

	assert.Equal(t, "critical", recommendations[0].Priority)
	assert.Equal(t, []string{"Guest"}, recommendations[0].Affected)
	assert.Contains(t, recommendations[0].Description, "3 stations")
	assert.Equal(t, "Disable TKIP", recommendations[1].Title)
	assert.Contains(t, recommendations[2].Description, "2 services")

	// Verify all recommendations have required fields
	for i, rec := range recommendations {
		if rec.Title == "" || rec.Description == "" || rec.EstimatedEffort == "" {
			t.Errorf("Recommendation %d missing fields: %+v", i, rec)
		}
		if len(rec.Actions) == 0 {
			t.Errorf("Recommendation %d has no actions", i)
		}
		if rec.ImpactReduction < 0 || rec.ImpactReduction > 100 {
			t.Errorf("Recommendation %d has invalid impact reduction: %v", i, rec.ImpactReduction)
		}
	}
}

func TestGenerateRecommendations_PadsWithGeneral(t *testing.T) {
	re := NewRecommendationEngine()

	recs := re.GenerateRecommendations(nil)
	assert.Len(t, recs, len(re.getGeneralRecommendations()))

	recs = re.GenerateRecommendations([]domain.RiskItem{
		{Finding: domain.Finding{Code: FindingTransitionMode, Services: []string{"Mixed"}}},
	})
	require.Len(t, recs, 4)
	assert.Equal(t, "Plan Exit From Transition Mode", recs[0].Title)
}

func TestGenerateRecommendations_Limit(t *testing.T) {
	re := NewRecommendationEngine()

	var topRisks []domain.RiskItem
	for _, code := range []string{FindingOpenNetwork, FindingUnrecognised, FindingTKIP, FindingPMFDisabled, FindingWPA2Personal, FindingTransitionMode} {
		topRisks = append(topRisks, domain.RiskItem{Finding: domain.Finding{Code: code, Services: []string{"x"}}})
	}

	recs := re.GenerateRecommendations(topRisks)
	assert.Len(t, recs, maxRecommendations)
}

func TestGetRecommendationForFinding(t *testing.T) {
	re := NewRecommendationEngine()

	tests := []struct {
		code     string
		priority string
	}{
		{FindingOpenNetwork, "critical"},
		{FindingUnrecognised, "high"},
		{FindingTKIP, "high"},
		{FindingPMFDisabled, "medium"},
		{FindingWPA2Personal, "medium"},
		{FindingTransitionMode, "low"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := re.getRecommendationForFinding(domain.Finding{Code: tt.code})
			require.NotNil(t, rec)
			assert.Equal(t, tt.priority, rec.Priority)
		})
	}

	assert.Nil(t, re.getRecommendationForFinding(domain.Finding{Code: "UNKNOWN"}))
}
