package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityProfile_Strength(t *testing.T) {
	withCipher := func(k SecurityKind, c Cipher) SecurityProfile {
		p := NewSecurityProfile(k)
		p.Cipher = c
		return p
	}
	transition := NewSecurityProfile(KindWPASAE)
	transition.TransitionMode = true

	tests := []struct {
		name string
		p    SecurityProfile
		want Strength
	}{
		{"open", NewSecurityProfile(KindOpen), StrengthWeak},
		{"unknown", NewSecurityProfile(KindSecuredUnknown), StrengthWeak},
		{"owe", NewSecurityProfile(KindOWE), StrengthModerate},
		{"psk tkip", withCipher(KindWPAPSK, CipherTKIP), StrengthWeak},
		{"psk aes", withCipher(KindWPAPSK, CipherAES), StrengthModerate},
		{"sae", NewSecurityProfile(KindWPASAE), StrengthStrong},
		{"sae transition", transition, StrengthModerate},
		{"enterprise", NewSecurityProfile(KindWPAEnterprise), StrengthStrong},
		{"enterprise tkip", withCipher(KindWPAEnterprise, CipherTKIP), StrengthWeak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Strength())
		})
	}
}

func TestSecurityReport_Helpers(t *testing.T) {
	r := SecurityReport{
		Services: []WirelessService{
			{Name: "Office", Profile: NewSecurityProfile(KindWPAPSK)},
			{Name: "Guest", Profile: NewSecurityProfile(KindOpen)},
			{Name: "Corp", Profile: NewSecurityProfile(KindWPASAE)},
			{Name: "Cafe", Profile: NewSecurityProfile(KindOpen)},
		},
		Stations: []Station{
			{MAC: "A", Rate: RateSample{DownlinkBps: 1e6}},
			{MAC: "B", Rate: RateSample{DownlinkBps: 9e6}},
			{MAC: "C", Rate: RateSample{DownlinkBps: 5e6}},
		},
	}

	assert.Equal(t, []KindCount{{KindOpen, 2}, {KindWPAPSK, 1}, {KindWPASAE, 1}}, r.KindBreakdown())
	assert.Equal(t, map[Strength]int{StrengthWeak: 2, StrengthModerate: 1, StrengthStrong: 1}, r.StrengthCounts())

	weak := r.WeakServices()
	require.Len(t, weak, 2)
	assert.Equal(t, "Cafe", weak[0].Name)
	assert.Equal(t, "Guest", weak[1].Name)

	top := r.TopStations(2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].MAC)
	assert.Equal(t, "C", top[1].MAC)
	assert.Equal(t, "A", r.Stations[0].MAC, "input order is untouched")
}
