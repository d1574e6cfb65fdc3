package normalize

import (
	"strings"
	"testing"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func pskPayload(ssid, passphrase string) domain.ServicePayload {
	return domain.ServicePayload{
		Name:    "Guest",
		SSID:    ssid,
		Enabled: true,
		Privacy: &domain.VendorPrivacyPayload{
			Type:          domain.PrivacyWPAPSK,
			WpaPskElement: &domain.PSKElement{Mode: domain.ModeWPA2, Passphrase: passphrase},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(pskPayload("guest", "abcdefgh"))
	assert.True(t, res.Valid)
	assert.NotNil(t, res.Errors)
	assert.Empty(t, res.Errors)
}

func TestValidate_CollectsEveryFailure(t *testing.T) {
	res := Validate(pskPayload("", "abcd"))
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"ssid is required",
		"passphrase must be 8-63 characters, got 4",
	}, res.Errors)
}

func TestValidate_Cases(t *testing.T) {
	tests := []struct {
		name    string
		payload func() domain.ServicePayload
		wantErr string
	}{
		{
			name:    "missing name",
			payload: func() domain.ServicePayload { p := pskPayload("guest", "abcdefgh"); p.Name = " "; return p },
			wantErr: "name is required",
		},
		{
			name:    "ssid over 32 bytes",
			payload: func() domain.ServicePayload { return pskPayload(strings.Repeat("s", 33), "abcdefgh") },
			wantErr: "ssid must be at most 32 bytes, got 33",
		},
		{
			name: "multibyte ssid counted in bytes",
			// 11 three-byte runes.
			payload: func() domain.ServicePayload { return pskPayload(strings.Repeat("€", 11), "abcdefgh") },
			wantErr: "ssid must be at most 32 bytes, got 33",
		},
		{
			name:    "empty psk passphrase",
			payload: func() domain.ServicePayload { return pskPayload("guest", "") },
			wantErr: "passphrase must be 8-63 characters, got 0",
		},
		{
			name: "sae passphrase too long",
			payload: func() domain.ServicePayload {
				p := pskPayload("guest", "")
				p.Privacy = &domain.VendorPrivacyPayload{
					Type:          domain.PrivacyWPASAE,
					WpaSaeElement: &domain.SAEElement{SAEPassphrase: strings.Repeat("x", 64)},
				}
				return p
			},
			wantErr: "passphrase must be 8-63 characters, got 64",
		},
		{
			name: "negative pre-auth timeout",
			payload: func() domain.ServicePayload {
				p := pskPayload("guest", "abcdefgh")
				p.PreAuthIdleTimeout = -1
				return p
			},
			wantErr: "preAuthIdleTimeout must not be negative, got -1",
		},
		{
			name: "negative post-auth timeout",
			payload: func() domain.ServicePayload {
				p := pskPayload("guest", "abcdefgh")
				p.PostAuthIdleTimeout = -5
				return p
			},
			wantErr: "postAuthIdleTimeout must not be negative, got -5",
		},
		{
			name:    "negative session timeout",
			payload: func() domain.ServicePayload { p := pskPayload("guest", "abcdefgh"); p.SessionTimeout = -60; return p },
			wantErr: "sessionTimeout must not be negative, got -60",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.payload())
			assert.False(t, res.Valid)
			assert.Equal(t, []string{tt.wantErr}, res.Errors)
		})
	}
}

func TestValidate_BoundariesAccepted(t *testing.T) {
	for _, p := range []domain.ServicePayload{
		pskPayload(strings.Repeat("s", 32), strings.Repeat("x", 8)),
		pskPayload("guest", strings.Repeat("x", 63)),
		// Multibyte passphrase counted in characters.
		pskPayload("guest", strings.Repeat("é", 8)),
	} {
		assert.True(t, Validate(p).Valid)
	}
}

func TestValidate_OpenAndEnterpriseSkipPassphrase(t *testing.T) {
	open := domain.ServicePayload{
		Name: "Lobby", SSID: "lobby",
		Privacy: &domain.VendorPrivacyPayload{Type: domain.PrivacyNone, Mode: domain.ModeOpen},
	}
	assert.True(t, Validate(open).Valid)

	ent := open
	ent.Privacy = &domain.VendorPrivacyPayload{
		Type:                 domain.PrivacyWPAEnterprise,
		WpaEnterpriseElement: &domain.EnterpriseElement{Mode: domain.ModeWPA3Only},
	}
	assert.True(t, Validate(ent).Valid)

	open.Privacy = nil
	assert.True(t, Validate(open).Valid)
}
