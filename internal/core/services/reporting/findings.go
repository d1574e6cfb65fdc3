package reporting

import (
	"sort"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

// Finding codes.
const (
	FindingOpenNetwork    = "OPEN-NETWORK"
	FindingUnrecognised   = "UNRECOGNISED-SECURITY"
	FindingTKIP           = "TKIP"
	FindingPMFDisabled    = "PMF-DISABLED"
	FindingWPA2Personal   = "WPA2-PERSONAL"
	FindingTransitionMode = "TRANSITION-MODE"
)

var findingSeverity = map[string]int{
	FindingOpenNetwork:    9,
	FindingUnrecognised:   7,
	FindingTKIP:           7,
	FindingPMFDisabled:    5,
	FindingWPA2Personal:   4,
	FindingTransitionMode: 3,
}

// DetectFindings groups the weaknesses of enabled services. A service can
// contribute to several findings. Station counts are matched by SSID.
func DetectFindings(services []domain.WirelessService, stations []domain.Station) []domain.Finding {
	perSSID := make(map[string]int)
	for _, st := range stations {
		if st.SSID != "" {
			perSSID[st.SSID]++
		}
	}

	groups := make(map[string][]domain.WirelessService)
	for _, svc := range services {
		if !svc.Enabled {
			continue
		}
		for _, code := range serviceFindings(svc.Profile) {
			groups[code] = append(groups[code], svc)
		}
	}

	findings := make([]domain.Finding, 0, len(groups))
	for code, group := range groups {
		f := domain.Finding{Code: code, Severity: findingSeverity[code]}
		seen := make(map[string]bool)
		for _, svc := range group {
			f.Services = append(f.Services, svc.Name)
			if !seen[svc.SSID] {
				seen[svc.SSID] = true
				f.Stations += perSSID[svc.SSID]
			}
		}
		sort.Strings(f.Services)
		findings = append(findings, f)
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return findings[i].Severity > findings[j].Severity
		}
		return findings[i].Code < findings[j].Code
	})
	return findings
}

func serviceFindings(p domain.SecurityProfile) []string {
	switch p.Kind {
	case domain.KindOpen:
		return []string{FindingOpenNetwork}
	case domain.KindSecuredUnknown:
		return []string{FindingUnrecognised}
	case domain.KindOWE:
		return nil
	}

	var out []string
	if p.Cipher == domain.CipherTKIP || p.Cipher == domain.CipherTKIPAES {
		out = append(out, FindingTKIP)
	}
	if p.PMF == domain.PMFDisabled {
		out = append(out, FindingPMFDisabled)
	}
	if p.TransitionMode {
		out = append(out, FindingTransitionMode)
	} else if p.Kind == domain.KindWPAPSK && p.Cipher != domain.CipherTKIP {
		out = append(out, FindingWPA2Personal)
	}
	return out
}
