package reporting

import (
	"testing"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOverallRisk(t *testing.T) {
	rc := NewRiskCalculator()

	tests := []struct {
		name     string
		findings []domain.Finding
		expected float64
	}{
		{
			name:     "No findings",
			expected: 0.0,
		},
		{
			name:     "Single open network without clients",
			findings: []domain.Finding{{Code: FindingOpenNetwork, Severity: 9, Services: []string{"guest"}}},
			expected: 9.0,
		},
		{
			name: "Average weighted by affected services",
			findings: []domain.Finding{
				{Code: FindingOpenNetwork, Severity: 9, Services: []string{"guest"}},
				{Code: FindingWPA2Personal, Severity: 4, Services: []string{"a", "b", "c"}},
			},
			expected: 5.25,
		},
		{
			name:     "Exposure raises the score",
			findings: []domain.Finding{{Code: FindingWPA2Personal, Severity: 4, Services: []string{"office"}, Stations: 50}},
			expected: 6.0,
		},
		{
			name:     "Capped at 10",
			findings: []domain.Finding{{Code: FindingOpenNetwork, Severity: 9, Services: []string{"guest"}, Stations: 500}},
			expected: 10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, rc.CalculateOverallRisk(tt.findings), 0.001)
		})
	}
}

func TestGetRiskLevel(t *testing.T) {
	rc := NewRiskCalculator()

	tests := []struct {
		score    float64
		expected string
	}{
		{10.0, "Critical"},
		{8.0, "Critical"},
		{7.9, "High"},
		{6.0, "High"},
		{5.9, "Medium"},
		{4.0, "Medium"},
		{3.9, "Low"},
		{0.0, "Low"},
	}

	for _, tt := range tests {
		if result := rc.GetRiskLevel(tt.score); result != tt.expected {
			t.Errorf("GetRiskLevel(%v) = %v, expected %v", tt.score, result, tt.expected)
		}
	}
}

func TestCalculateTopRisks(t *testing.T) {
	rc := NewRiskCalculator()

	findings := []domain.Finding{
		{Code: FindingOpenNetwork, Severity: 9, Services: []string{"guest"}},
		{Code: FindingWPA2Personal, Severity: 4, Services: []string{"a", "b", "c"}, Stations: 20},
		{Code: FindingTransitionMode, Severity: 3, Services: []string{"mixed"}},
	}

	risks := rc.CalculateTopRisks(findings, 2)
	require.Len(t, risks, 2)

	assert.Equal(t, 1, risks[0].Rank)
	assert.Equal(t, FindingWPA2Personal, risks[0].Finding.Code)
	assert.InDelta(t, 24.0, risks[0].RiskScore, 0.001)
	assert.Equal(t, "Very High - Heavily used", risks[0].Likelihood)

	assert.Equal(t, 2, risks[1].Rank)
	assert.Equal(t, FindingOpenNetwork, risks[1].Finding.Code)
	assert.Equal(t, "Severe - Traffic readable by anyone in range", risks[1].Impact)

	assert.Nil(t, rc.CalculateTopRisks(findings, 0))
	assert.Len(t, rc.CalculateTopRisks(findings, 10), 3)
}

func TestGetImpactLevel(t *testing.T) {
	rc := NewRiskCalculator()
	assert.Contains(t, rc.getImpactLevel(9), "Severe")
	assert.Contains(t, rc.getImpactLevel(7), "High")
	assert.Contains(t, rc.getImpactLevel(4), "Medium")
	assert.Contains(t, rc.getImpactLevel(3), "Low")
}

func TestGetLikelihoodLevel(t *testing.T) {
	rc := NewRiskCalculator()
	assert.Contains(t, rc.getLikelihoodLevel(25), "Very High")
	assert.Contains(t, rc.getLikelihoodLevel(5), "High")
	assert.Contains(t, rc.getLikelihoodLevel(1), "Medium")
	assert.Contains(t, rc.getLikelihoodLevel(0), "Low")
}

func BenchmarkCalculateTopRisks(b *testing.B) {
	rc := NewRiskCalculator()
	findings := make([]domain.Finding, 0, 50)
	for i := 0; i < 50; i++ {
		findings = append(findings, domain.Finding{Code: FindingWPA2Personal, Severity: i % 10, Services: []string{"s"}, Stations: i})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rc.CalculateTopRisks(findings, 5)
	}
}
