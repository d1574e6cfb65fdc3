package domain

import "time"

// WirelessService is a controller WLAN with its normalised security profile.
type WirelessService struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	SSID    string          `json:"ssid"`
	Enabled bool            `json:"enabled"`
	Profile SecurityProfile `json:"security"`
	// MatchedRule names the classifier rule that produced Profile.
	MatchedRule string `json:"matched_rule"`
}

// Station is an associated client with its resolved link rate.
type Station struct {
	MAC       string     `json:"mac"`
	Vendor    string     `json:"vendor,omitempty"`
	Hostname  string     `json:"hostname,omitempty"`
	SSID      string     `json:"ssid,omitempty"`
	Uptime    int64      `json:"uptime"`
	Rate      RateSample `json:"rate"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SecurityEdit is a user edit of a security profile. Nil fields are left unchanged.
type SecurityEdit struct {
	Kind                   *SecurityKind `json:"kind,omitempty"`
	TransitionMode         *bool         `json:"transition_mode,omitempty"`
	Cipher                 *Cipher       `json:"encryption_cipher,omitempty"`
	PMF                    *PMFMode      `json:"protected_management_frames,omitempty"`
	SAEMethod              *SAEMethod    `json:"sae_method,omitempty"`
	Passphrase             *string       `json:"passphrase,omitempty"`
	FastTransitionEnabled  *bool         `json:"fast_transition_enabled,omitempty"`
	FastTransitionDomainID *int          `json:"fast_transition_domain_id,omitempty"`
	OWECompanionSSID       *string       `json:"owe_companion_ssid,omitempty"`
}
