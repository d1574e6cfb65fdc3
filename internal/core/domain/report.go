package domain

import (
	"sort"
	"time"
)

// Strength grades a security profile for reporting.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Strength grades the profile. Open, unrecognised and TKIP-only networks are
// weak; WPA3 and 802.1X without TKIP are strong.
func (p SecurityProfile) Strength() Strength {
	switch p.Kind {
	case KindOpen, KindSecuredUnknown:
		return StrengthWeak
	case KindOWE:
		return StrengthModerate
	}
	if p.Cipher == CipherTKIP {
		return StrengthWeak
	}
	switch p.Kind {
	case KindWPASAE:
		if p.TransitionMode {
			return StrengthModerate
		}
		return StrengthStrong
	case KindWPAEnterprise:
		return StrengthStrong
	}
	return StrengthModerate
}

// SecurityReport is a point-in-time inventory of services and stations.
type SecurityReport struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Site        string            `json:"site"`
	GeneratedAt time.Time         `json:"generated_at"`
	GeneratedBy string            `json:"generated_by"`
	Services    []WirelessService `json:"services"`
	Stations    []Station         `json:"stations"`

	RiskScore       float64          `json:"risk_score"`
	RiskLevel       string           `json:"risk_level"`
	TopRisks        []RiskItem       `json:"top_risks,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Finding is one security weakness shared by a group of enabled services.
type Finding struct {
	Code     string   `json:"code"`
	Severity int      `json:"severity"` // 0-10
	Services []string `json:"services"`
	// Stations counts clients associated to an affected SSID.
	Stations int `json:"stations"`
}

// RiskItem is a ranked finding.
type RiskItem struct {
	Rank       int     `json:"rank"`
	Finding    Finding `json:"finding"`
	Impact     string  `json:"impact"`
	Likelihood string  `json:"likelihood"`
	RiskScore  float64 `json:"risk_score"`
}

// Recommendation is an actionable remediation.
type Recommendation struct {
	Priority        string   `json:"priority"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Actions         []string `json:"actions"`
	Affected        []string `json:"affected,omitempty"`
	EstimatedEffort string   `json:"estimated_effort"`
	ImpactReduction float64  `json:"impact_reduction"` // percent
}

// KindCount is one row of a kind breakdown.
type KindCount struct {
	Kind  SecurityKind `json:"kind"`
	Count int          `json:"count"`
}

// KindBreakdown counts services per kind in SecurityKinds order, omitting
// kinds with no services.
func (r SecurityReport) KindBreakdown() []KindCount {
	counts := make(map[SecurityKind]int)
	for _, s := range r.Services {
		counts[s.Profile.Kind]++
	}
	out := make([]KindCount, 0, len(counts))
	for _, k := range SecurityKinds {
		if n := counts[k]; n > 0 {
			out = append(out, KindCount{Kind: k, Count: n})
		}
	}
	return out
}

// StrengthCounts counts services per strength grade.
func (r SecurityReport) StrengthCounts() map[Strength]int {
	out := map[Strength]int{StrengthWeak: 0, StrengthModerate: 0, StrengthStrong: 0}
	for _, s := range r.Services {
		out[s.Profile.Strength()]++
	}
	return out
}

// WeakServices returns services graded weak, sorted by name.
func (r SecurityReport) WeakServices() []WirelessService {
	var out []WirelessService
	for _, s := range r.Services {
		if s.Profile.Strength() == StrengthWeak {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TopStations returns up to n stations ordered by downlink rate.
func (r SecurityReport) TopStations(n int) []Station {
	out := make([]Station, len(r.Stations))
	copy(out, r.Stations)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate.DownlinkBps > out[j].Rate.DownlinkBps })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
