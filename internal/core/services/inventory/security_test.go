package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateSecurity_ReusesEchoedPassphrase(t *testing.T) {
	ctrl := new(MockController)
	audit := new(MockAudit)
	ctrl.On("GetService", mock.Anything, "svc-1").Return(pskService("svc-1"), nil)
	ctrl.On("UpdateService", mock.Anything, "svc-1", mock.MatchedBy(func(p domain.ServicePayload) bool {
		return p.Name == "Corp" &&
			p.SSID == "corp-wifi" &&
			p.PreAuthIdleTimeout == 300 &&
			p.SessionTimeout == 86400 &&
			p.Privacy != nil &&
			p.Privacy.Type == domain.PrivacyWPASAE &&
			p.Privacy.WpaSaeElement.SAEPassphrase == "supersecret1" &&
			p.Privacy.WpaSaeElement.PMFMode == "capable"
	})).Return(nil)
	audit.On("Log", mock.Anything, domain.ActionSecurityUpdate, "svc-1", "WPA2-Personal -> WPA3-Personal").Return(nil)

	svc := NewService(Deps{Controller: ctrl, Audit: audit})
	profile, err := svc.UpdateSecurity(context.Background(), "svc-1", domain.SecurityEdit{
		Kind: ptr(domain.KindWPASAE),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.KindWPASAE, profile.Kind)
	assert.Empty(t, profile.Passphrase, "secret is not returned")

	ctrl.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestUpdateSecurity_EditedPassphraseWins(t *testing.T) {
	ctrl := new(MockController)
	ctrl.On("GetService", mock.Anything, "svc-1").Return(pskService("svc-1"), nil)
	ctrl.On("UpdateService", mock.Anything, "svc-1", mock.MatchedBy(func(p domain.ServicePayload) bool {
		return p.Privacy.WpaPskElement != nil && p.Privacy.WpaPskElement.Passphrase == "a-new-secret"
	})).Return(nil)

	svc := NewService(Deps{Controller: ctrl})
	_, err := svc.UpdateSecurity(context.Background(), "svc-1", domain.SecurityEdit{
		Passphrase: ptr("a-new-secret"),
	})
	require.NoError(t, err)
	ctrl.AssertExpectations(t)
}

func TestUpdateSecurity_Rejections(t *testing.T) {
	noSecret := domain.RawRecord{
		"id": "svc-2", "name": "Guest", "ssid": "guest",
		"privacy": map[string]any{"WpaPskElement": map[string]any{"mode": "WPA2"}},
	}
	unknown := domain.RawRecord{"id": "svc-3", "name": "Legacy", "ssid": "legacy", "securityType": "WEP104"}

	tests := []struct {
		name    string
		raw     domain.RawRecord
		edit    domain.SecurityEdit
		wantErr error
	}{
		{"no passphrase anywhere", noSecret, domain.SecurityEdit{}, domain.ErrPassphraseRequired},
		{"unencodable kind", unknown, domain.SecurityEdit{}, domain.ErrUnencodableProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := new(MockController)
			ctrl.On("GetService", mock.Anything, mock.Anything).Return(tt.raw, nil)

			_, err := NewService(Deps{Controller: ctrl}).UpdateSecurity(context.Background(), "svc", tt.edit)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsClientError(err))
			ctrl.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateSecurity_ValidationError(t *testing.T) {
	ctrl := new(MockController)
	ctrl.On("GetService", mock.Anything, "svc-1").Return(pskService("svc-1"), nil)

	_, err := NewService(Deps{Controller: ctrl}).UpdateSecurity(context.Background(), "svc-1", domain.SecurityEdit{
		Passphrase: ptr("short"),
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 1)
	assert.True(t, IsClientError(err))
	ctrl.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSecurity_SwitchToOpen(t *testing.T) {
	ctrl := new(MockController)
	ctrl.On("GetService", mock.Anything, "svc-1").Return(pskService("svc-1"), nil)
	ctrl.On("UpdateService", mock.Anything, "svc-1", mock.MatchedBy(func(p domain.ServicePayload) bool {
		return p.Privacy.Type == domain.PrivacyNone && p.Privacy.Mode == domain.ModeOpen
	})).Return(nil)

	profile, err := NewService(Deps{Controller: ctrl}).UpdateSecurity(context.Background(), "svc-1", domain.SecurityEdit{
		Kind: ptr(domain.KindOpen),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.KindOpen, profile.Kind)
}

func TestUpdateSecurity_ControllerFailure(t *testing.T) {
	ctrl := new(MockController)
	audit := new(MockAudit)
	ctrl.On("GetService", mock.Anything, "svc-1").Return(pskService("svc-1"), nil)
	ctrl.On("UpdateService", mock.Anything, "svc-1", mock.Anything).Return(errors.New("502 bad gateway"))

	_, err := NewService(Deps{Controller: ctrl, Audit: audit}).UpdateSecurity(context.Background(), "svc-1", domain.SecurityEdit{})
	require.Error(t, err)
	assert.False(t, IsClientError(err))
	audit.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSecurity_ModelessPSKIsNeverOpened(t *testing.T) {
	raw := domain.RawRecord{
		"id": "svc-4", "name": "Office", "ssid": "office",
		"WpaPskElement": map[string]any{"pmfMode": "capable", "encryptionCipher": "aes"},
	}

	t.Run("no secret is rejected", func(t *testing.T) {
		ctrl := new(MockController)
		ctrl.On("GetService", mock.Anything, "svc-4").Return(raw, nil)

		_, err := NewService(Deps{Controller: ctrl}).UpdateSecurity(context.Background(), "svc-4", domain.SecurityEdit{
			TransitionMode: ptr(false),
		})
		assert.ErrorIs(t, err, domain.ErrPassphraseRequired)
		ctrl.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("edit keeps PSK", func(t *testing.T) {
		ctrl := new(MockController)
		ctrl.On("GetService", mock.Anything, "svc-4").Return(raw, nil)
		ctrl.On("UpdateService", mock.Anything, "svc-4", mock.MatchedBy(func(p domain.ServicePayload) bool {
			return p.Privacy != nil && p.Privacy.Type == domain.PrivacyWPAPSK && p.Privacy.Type != domain.PrivacyNone
		})).Return(nil)

		profile, err := NewService(Deps{Controller: ctrl}).UpdateSecurity(context.Background(), "svc-4", domain.SecurityEdit{
			Passphrase: ptr("a-new-secret"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.KindWPAPSK, profile.Kind)
		ctrl.AssertExpectations(t)
	})
}
