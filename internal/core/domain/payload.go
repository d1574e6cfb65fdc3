package domain

// PrivacyType tags a vendor privacy fragment. It is always emitted, so an
// explicitly open service is distinguishable from an unclassified one.
type PrivacyType string

const (
	PrivacyNone          PrivacyType = "none"
	PrivacyOWE           PrivacyType = "owe"
	PrivacyWPAPSK        PrivacyType = "wpaPsk"
	PrivacyWPASAE        PrivacyType = "wpaSae"
	PrivacyWPAEnterprise PrivacyType = "wpaEnterprise"
)

// Vendor mode tokens written by the encoder.
const (
	ModeOpen      = "open"
	ModeOWE       = "owe"
	ModeWPA       = "WPA"
	ModeWPA2      = "WPA2"
	ModeWPA2WPA3  = "WPA2/3"
	ModeAESOnly   = "aesOnly"
	ModeTKIPOnly  = "tkiponly"
	ModeMixed     = "mixed"
	ModeWPA3Only  = "wpa3only"
	ModeWPA3Mixed = "wpa3mixed"
)

// SAEElement is the vendor WPA3-Personal element.
type SAEElement struct {
	PMFMode          string `json:"pmfMode,omitempty"`
	SAEMethod        string `json:"saeMethod,omitempty"`
	EncryptionCipher string `json:"encryptionCipher,omitempty"`
	SAEPassphrase    string `json:"saePassphrase,omitempty"`
}

// PSKElement is the vendor WPA/WPA2-Personal element.
type PSKElement struct {
	Mode             string `json:"mode"`
	PMFMode          string `json:"pmfMode,omitempty"`
	Passphrase       string `json:"passphrase,omitempty"`
	EncryptionCipher string `json:"encryptionCipher,omitempty"`
}

// EnterpriseElement is the vendor 802.1X element.
type EnterpriseElement struct {
	Mode                   string `json:"mode,omitempty"`
	PMFMode                string `json:"pmfMode,omitempty"`
	EncryptionCipher       string `json:"encryptionCipher,omitempty"`
	FastTransition         bool   `json:"fastTransition"`
	FastTransitionDomainID int    `json:"fastTransitionDomainId,omitempty"`
}

// OWEElement is the vendor Opportunistic Wireless Encryption element.
type OWEElement struct {
	EncryptionCipher string `json:"encryptionCipher"`
	TransitionSSID   string `json:"transitionSsid,omitempty"`
}

// VendorPrivacyPayload is the privacy fragment of a service update request.
// Exactly one element is set, matching Type; Open and OWE carry Mode instead.
type VendorPrivacyPayload struct {
	Type                 PrivacyType        `json:"type"`
	Mode                 string             `json:"mode,omitempty"`
	WpaSaeElement        *SAEElement        `json:"WpaSaeElement,omitempty"`
	WpaPskElement        *PSKElement        `json:"WpaPskElement,omitempty"`
	WpaEnterpriseElement *EnterpriseElement `json:"WpaEnterpriseElement,omitempty"`
	OweElement           *OWEElement        `json:"OweElement,omitempty"`
}

// Passphrase returns the secret carried by a PSK or SAE element.
func (p VendorPrivacyPayload) Passphrase() (string, bool) {
	switch {
	case p.WpaSaeElement != nil:
		return p.WpaSaeElement.SAEPassphrase, true
	case p.WpaPskElement != nil:
		return p.WpaPskElement.Passphrase, true
	}
	return "", false
}

// ServicePayload is a fully assembled service update request body.
type ServicePayload struct {
	Name                string                `json:"name"`
	SSID                string                `json:"ssid"`
	Enabled             bool                  `json:"enabled"`
	Privacy             *VendorPrivacyPayload `json:"privacy,omitempty"`
	PreAuthIdleTimeout  int                   `json:"preAuthIdleTimeout"`
	PostAuthIdleTimeout int                   `json:"postAuthIdleTimeout"`
	SessionTimeout      int                   `json:"sessionTimeout"`
}

// ValidationResult collects every failed check of a payload.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
