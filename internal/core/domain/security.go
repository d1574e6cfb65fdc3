package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SecurityKind is the canonical security family of a wireless service.
type SecurityKind string

const (
	KindOpen           SecurityKind = "Open"
	KindOWE            SecurityKind = "OWE"
	KindWPAPSK         SecurityKind = "WPA_PSK"
	KindWPASAE         SecurityKind = "WPA_SAE"
	KindWPAEnterprise  SecurityKind = "WPA_Enterprise"
	KindSecuredUnknown SecurityKind = "SecuredUnknown"
)

// SecurityKinds lists every kind in declaration order.
var SecurityKinds = []SecurityKind{
	KindOpen, KindOWE, KindWPAPSK, KindWPASAE, KindWPAEnterprise, KindSecuredUnknown,
}

// ParseSecurityKind matches a canonical kind name, ignoring case and separators.
func ParseSecurityKind(s string) (SecurityKind, bool) {
	key := foldToken(s)
	for _, k := range SecurityKinds {
		if foldToken(string(k)) == key {
			return k, true
		}
	}
	return "", false
}

// IsConcrete reports whether the kind can be encoded back into a vendor payload.
func (k SecurityKind) IsConcrete() bool {
	switch k {
	case KindOpen, KindOWE, KindWPAPSK, KindWPASAE, KindWPAEnterprise:
		return true
	}
	return false
}

// Cipher is the pairwise encryption cipher.
type Cipher string

const (
	CipherUnspecified Cipher = "Unspecified"
	CipherAES         Cipher = "AES"
	CipherTKIP        Cipher = "TKIP"
	CipherTKIPAES     Cipher = "TKIP_AES"
)

// ParseCipher maps a vendor cipher token. Unknown tokens yield CipherUnspecified.
func ParseCipher(s string) Cipher {
	switch foldToken(s) {
	case "aes", "ccmp", "aesonly":
		return CipherAES
	case "tkip", "tkiponly":
		return CipherTKIP
	case "tkipaes", "aestkip", "mixed":
		return CipherTKIPAES
	}
	return CipherUnspecified
}

// Token returns the vendor token for the cipher, empty when unspecified.
func (c Cipher) Token() string {
	switch c {
	case CipherAES:
		return "aes"
	case CipherTKIP:
		return "tkip"
	case CipherTKIPAES:
		return "tkipaes"
	}
	return ""
}

// PMFMode is the 802.11w Protected Management Frames setting.
type PMFMode string

const (
	PMFUnspecified PMFMode = "Unspecified"
	PMFRequired    PMFMode = "Required"
	PMFCapable     PMFMode = "Capable"
	PMFDisabled    PMFMode = "Disabled"
)

// ParsePMFMode maps a vendor PMF token. Unknown tokens yield PMFUnspecified.
func ParsePMFMode(s string) PMFMode {
	switch foldToken(s) {
	case "required", "mandatory":
		return PMFRequired
	case "capable", "optional", "enabled":
		return PMFCapable
	case "disabled", "off", "none":
		return PMFDisabled
	}
	return PMFUnspecified
}

// Token returns the vendor token for the PMF mode, empty when unspecified.
func (m PMFMode) Token() string {
	switch m {
	case PMFRequired:
		return "required"
	case PMFCapable:
		return "capable"
	case PMFDisabled:
		return "disabled"
	}
	return ""
}

// SAEMethod is the SAE password element derivation.
type SAEMethod string

const (
	SAEMethodUnspecified       SAEMethod = ""
	SAEMethodHashToElement     SAEMethod = "HashToElement"
	SAEMethodHuntingAndPecking SAEMethod = "HuntingAndPecking"
)

// ParseSAEMethod maps a vendor SAE method token.
func ParseSAEMethod(s string) SAEMethod {
	switch foldToken(s) {
	case "saeh2e", "h2e", "hashtoelement":
		return SAEMethodHashToElement
	case "saehnp", "hnp", "huntingandpecking", "saehuntingandpecking":
		return SAEMethodHuntingAndPecking
	}
	return SAEMethodUnspecified
}

// Token returns the vendor token for the SAE method.
func (m SAEMethod) Token() string {
	switch m {
	case SAEMethodHashToElement:
		return "SaeH2e"
	case SAEMethodHuntingAndPecking:
		return "SaeHnP"
	}
	return ""
}

// SAEParams holds settings only meaningful for KindWPASAE.
type SAEParams struct {
	Method SAEMethod `json:"sae_method,omitempty"`
}

// EnterpriseParams holds settings only meaningful for KindWPAEnterprise.
type EnterpriseParams struct {
	// WPA3 marks a WPA3-only enterprise network (PMF enforced).
	WPA3                   bool `json:"wpa3,omitempty"`
	FastTransitionEnabled  bool `json:"fast_transition_enabled"`
	FastTransitionDomainID int  `json:"fast_transition_domain_id,omitempty"`
}

// OWEParams holds settings only meaningful for KindOWE.
type OWEParams struct {
	CompanionSSID string `json:"companion_ssid,omitempty"`
}

// SecurityProfile is the canonical security configuration of a wireless service.
// Exactly one of SAE, Enterprise and OWE may be set, matching Kind.
type SecurityProfile struct {
	Kind           SecurityKind `json:"kind"`
	TransitionMode bool         `json:"transition_mode"`
	Cipher         Cipher       `json:"encryption_cipher"`
	PMF            PMFMode      `json:"protected_management_frames"`

	// Label is a vendor token kept verbatim for display when it carries
	// information the canonical fields cannot express.
	Label string `json:"label,omitempty"`

	// Passphrase is only ever set by an explicit edit, never by classification.
	Passphrase string `json:"passphrase,omitempty"`

	SAE        *SAEParams        `json:"sae,omitempty"`
	Enterprise *EnterpriseParams `json:"enterprise,omitempty"`
	OWE        *OWEParams        `json:"owe,omitempty"`
}

// NewSecurityProfile returns a profile of the given kind with unspecified
// cipher and PMF and the variant payload allocated.
func NewSecurityProfile(kind SecurityKind) SecurityProfile {
	p := SecurityProfile{
		Kind:   kind,
		Cipher: CipherUnspecified,
		PMF:    PMFUnspecified,
	}
	switch kind {
	case KindWPASAE:
		p.SAE = &SAEParams{}
	case KindWPAEnterprise:
		p.Enterprise = &EnterpriseParams{}
	case KindOWE:
		p.OWE = &OWEParams{}
	}
	return p
}

// Clone returns a deep copy so callers can derive edited profiles.
func (p SecurityProfile) Clone() SecurityProfile {
	out := p
	if p.SAE != nil {
		sae := *p.SAE
		out.SAE = &sae
	}
	if p.Enterprise != nil {
		ent := *p.Enterprise
		out.Enterprise = &ent
	}
	if p.OWE != nil {
		owe := *p.OWE
		out.OWE = &owe
	}
	return out
}

// SAEMethod returns the SAE method or SAEMethodUnspecified.
func (p SecurityProfile) SAEMethod() SAEMethod {
	if p.SAE == nil {
		return SAEMethodUnspecified
	}
	return p.SAE.Method
}

// IsWPA3Enterprise reports a pure WPA3-Enterprise profile.
func (p SecurityProfile) IsWPA3Enterprise() bool {
	return p.Kind == KindWPAEnterprise && !p.TransitionMode && p.Enterprise != nil && p.Enterprise.WPA3
}

// DisplayName renders the profile for tables and reports.
func (p SecurityProfile) DisplayName() string {
	switch p.Kind {
	case KindOpen:
		return "Open"
	case KindOWE:
		return "OWE"
	case KindWPASAE:
		if p.TransitionMode {
			return "WPA2/WPA3-Personal"
		}
		return "WPA3-Personal"
	case KindWPAPSK:
		if p.TransitionMode {
			return "WPA2/WPA3-Personal"
		}
		if p.Cipher == CipherTKIP {
			return "WPA-Personal"
		}
		return "WPA2-Personal"
	case KindWPAEnterprise:
		switch {
		case p.TransitionMode:
			return "WPA2/WPA3-Enterprise"
		case p.IsWPA3Enterprise():
			return "WPA3-Enterprise"
		case p.Label != "":
			return p.Label
		}
		return "WPA2-Enterprise"
	}
	if p.Label != "" {
		return p.Label
	}
	return "Secured"
}

// String implements fmt.Stringer.
func (p SecurityProfile) String() string {
	return fmt.Sprintf("%s(cipher=%s pmf=%s transition=%t)", p.Kind, p.Cipher, p.PMF, p.TransitionMode)
}

// MarshalJSON adds the display name.
func (p SecurityProfile) MarshalJSON() ([]byte, error) {
	type alias SecurityProfile
	return json.Marshal(struct {
		alias
		Display string `json:"display"`
	}{alias(p), p.DisplayName()})
}

// foldToken lowercases and strips separators so "aesOnly", "AES-only" and
// "aes_only" compare equal.
func foldToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '-', '_', '.', '+':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FoldToken exposes the token normalisation used by the vendor parsers.
func FoldToken(s string) string {
	return foldToken(s)
}
