package normalize

import (
	"encoding/json"
	"testing"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asServiceRecord embeds a privacy fragment the way the controller returns it.
func asServiceRecord(t *testing.T, payload domain.VendorPrivacyPayload) domain.RawRecord {
	t.Helper()
	data, err := json.Marshal(domain.ServicePayload{Name: "svc", SSID: "ssid", Privacy: &payload})
	require.NoError(t, err)
	var rec domain.RawRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	return rec
}

func canonicalProfiles() map[string]domain.SecurityProfile {
	profile := func(kind domain.SecurityKind, fn func(p *domain.SecurityProfile)) domain.SecurityProfile {
		p := domain.NewSecurityProfile(kind)
		if fn != nil {
			fn(&p)
		}
		return p
	}
	return map[string]domain.SecurityProfile{
		"open": profile(domain.KindOpen, nil),
		"owe": profile(domain.KindOWE, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherAES
			p.OWE.CompanionSSID = "cafe-legacy"
		}),
		"psk wpa2 pmf capable": profile(domain.KindWPAPSK, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherAES
			p.PMF = domain.PMFCapable
		}),
		"psk transition": profile(domain.KindWPAPSK, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherAES
			p.TransitionMode = true
		}),
		"psk tkip": profile(domain.KindWPAPSK, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherTKIP
		}),
		"psk mixed cipher pmf disabled": profile(domain.KindWPAPSK, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherTKIPAES
			p.PMF = domain.PMFDisabled
		}),
		"sae h2e": profile(domain.KindWPASAE, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherAES
			p.PMF = domain.PMFRequired
			p.SAE.Method = domain.SAEMethodHashToElement
		}),
		"sae transition": profile(domain.KindWPASAE, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherAES
			p.PMF = domain.PMFCapable
			p.TransitionMode = true
			p.SAE.Method = domain.SAEMethodHuntingAndPecking
		}),
		"sae tkip aes": profile(domain.KindWPASAE, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherTKIPAES
			p.PMF = domain.PMFRequired
			p.SAE.Method = domain.SAEMethodHuntingAndPecking
		}),
		"wpa3 enterprise with fast transition": profile(domain.KindWPAEnterprise, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherAES
			p.PMF = domain.PMFRequired
			p.Enterprise.WPA3 = true
			p.Enterprise.FastTransitionEnabled = true
			p.Enterprise.FastTransitionDomainID = 4660
		}),
		"enterprise transition": profile(domain.KindWPAEnterprise, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherTKIPAES
			p.PMF = domain.PMFCapable
			p.TransitionMode = true
		}),
		"enterprise aes": profile(domain.KindWPAEnterprise, func(p *domain.SecurityProfile) {
			p.Cipher = domain.CipherAES
			p.PMF = domain.PMFCapable
		}),
		"enterprise defaults": profile(domain.KindWPAEnterprise, nil),
	}
}

func TestRoundTrip_ClassifyEncode(t *testing.T) {
	for name, want := range canonicalProfiles() {
		t.Run(name, func(t *testing.T) {
			payload, err := Encode(want)
			require.NoError(t, err)

			got := Classify(asServiceRecord(t, payload))
			assert.Equal(t, want, got)
		})
	}
}

func TestRoundTrip_PassphraseStaysOutOfProfile(t *testing.T) {
	want := canonicalProfiles()["sae h2e"]
	withSecret := want.Clone()
	withSecret.Passphrase = "correct horse battery"

	payload, err := Encode(withSecret)
	require.NoError(t, err)
	rec := asServiceRecord(t, payload)

	assert.Equal(t, want, Classify(rec))
	secret, ok := ExtractPassphrase(rec)
	assert.True(t, ok)
	assert.Equal(t, "correct horse battery", secret)
}
