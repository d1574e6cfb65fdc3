package normalize

import (
	"sort"
	"strings"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

// Field name variants seen across controller firmware releases.
var (
	saeElementNames        = []string{"WpaSaeElement", "wpaSaeElement", "WpaSae", "saeElement"}
	enterpriseElementNames = []string{"WpaEnterpriseElement", "wpaEnterpriseElement", "WpaEnterprise", "enterpriseElement"}
	pskElementNames        = []string{"WpaPskElement", "wpaPskElement", "WpaPsk", "pskElement"}
	eapElementNames        = []string{"WpaEapElement", "wpaEapElement", "dot1xElement", "Dot1xElement", "eapElement", "WpaDot1xElement"}
	oweElementNames        = []string{"OweElement", "oweElement", "WpaOweElement"}

	securityElementNames = concat(saeElementNames, enterpriseElementNames, pskElementNames, eapElementNames, oweElementNames)

	modeKeys   = []string{"mode", "Mode"}
	pmfKeys    = []string{"pmfMode", "pmf", "protectedManagementFrames"}
	cipherKeys = []string{"encryptionCipher", "cipher", "encryption"}
	saeKeys    = []string{"saeMethod", "sae", "saePweMethod"}

	genericModePaths  = []string{"mode", "privacy.mode"}
	securityTypePaths = []string{"security.type"}
	scalarTypePaths   = withPrivacy("securityType", "authType", "privacyType")
	encryptionPaths   = withPrivacy("encryption")
	passphrasePaths   = withPrivacy(
		"passphrase", "password", "psk", "saePassphrase",
		"WpaPskElement.passphrase", "wpaPskElement.passphrase",
	)

	enterpriseKeyHints = []string{"enterprise", "eap", "802", "1x", "radius"}
	pskKeyHints        = []string{"psk", "passphrase", "key"}
)

func withPrivacy(names ...string) []string {
	out := make([]string, 0, len(names)*2)
	out = append(out, names...)
	for _, n := range names {
		out = append(out, "privacy."+n)
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func nested(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "privacy." + n
	}
	return out
}

// rule is one step of the classification chain.
type rule struct {
	name  string
	match func(rec domain.RawRecord) (domain.SecurityProfile, bool)
}

// rules is evaluated top to bottom and the first match wins. A record may
// satisfy several rules, so the order decides the outcome and must not change.
var rules = []rule{
	{"sae-element", matchSAE},
	{"enterprise-mode", matchElementMode(domain.KindWPAEnterprise, enterpriseElementNames)},
	{"privacy-enterprise-mode", matchElementMode(domain.KindWPAEnterprise, nested(enterpriseElementNames...))},
	{"enterprise-element", matchEnterpriseElement},
	{"eap-element", matchEAP},
	{"psk-mode", matchElementMode(domain.KindWPAPSK, pskElementNames)},
	{"privacy-psk-mode", matchElementMode(domain.KindWPAPSK, nested(pskElementNames...))},
	{"generic-mode", matchGenericMode},
	{"security-type", matchSecurityType},
	{"scalar-type", matchScalarType},
	{"encryption-string", matchEncryptionString},
	{"passphrase", matchPassphrase},
	{"privacy-keys", matchPrivacyKeys},
	{"no-privacy", matchOpen},
}

// RuleNames lists the classification rules in evaluation order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// Classify resolves a raw service record to exactly one security profile.
// It never fails: records it cannot interpret resolve to KindSecuredUnknown
// or, when no privacy information is present at all, to KindOpen. A security
// element the chain cannot read never yields KindOpen.
func Classify(raw domain.RawRecord) domain.SecurityProfile {
	p, _ := ClassifyTrace(raw)
	return p
}

// ClassifyTrace is Classify that also reports the name of the matching rule.
func ClassifyTrace(raw domain.RawRecord) (domain.SecurityProfile, string) {
	for _, r := range rules {
		if p, ok := r.match(raw); ok {
			return p, r.name
		}
	}
	return classifyUnreadElement(raw), unreadElementRule
}

// unreadElementRule names the outcome for records that carry a security
// element no rule could interpret.
const unreadElementRule = "unread-element"

// classifyUnreadElement keeps the kind an element name implies when its
// contents are usable and falls back to KindSecuredUnknown otherwise.
func classifyUnreadElement(rec domain.RawRecord) domain.SecurityProfile {
	if el, ok := LookupRecord(rec, pskElementNames...); ok {
		p := domain.NewSecurityProfile(domain.KindWPAPSK)
		applyElementFields(&p, el)
		return p
	}
	if el, ok := LookupRecord(rec, oweElementNames...); ok {
		p := domain.NewSecurityProfile(domain.KindOWE)
		p.Cipher = domain.CipherAES
		applyElementFields(&p, el)
		if ssid, ok := LookupString(el, "transitionSsid", "transitionSSID", "companionSsid"); ok {
			p.OWE.CompanionSSID = ssid
		}
		return p
	}
	p := domain.NewSecurityProfile(domain.KindSecuredUnknown)
	for _, name := range securityElementNames {
		if Has(rec, name) {
			p.Label = name
			break
		}
	}
	return p
}

func matchSAE(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	el, ok := LookupRecord(rec, withPrivacy(saeElementNames...)...)
	if !ok {
		return domain.SecurityProfile{}, false
	}
	p := domain.NewSecurityProfile(domain.KindWPASAE)
	p.Cipher = domain.CipherAES
	applyElementFields(&p, el)
	if method, ok := LookupString(el, saeKeys...); ok {
		p.SAE.Method = domain.ParseSAEMethod(method)
	}
	switch {
	case p.PMF == domain.PMFRequired && p.SAE.Method == domain.SAEMethodHashToElement:
		p.TransitionMode = false
	case p.PMF == domain.PMFCapable:
		p.TransitionMode = true
	}
	return p, true
}

// matchElementMode builds the rule for an element that declares a mode token.
func matchElementMode(kind domain.SecurityKind, paths []string) func(domain.RawRecord) (domain.SecurityProfile, bool) {
	return func(rec domain.RawRecord) (domain.SecurityProfile, bool) {
		for _, path := range paths {
			el, ok := LookupRecord(rec, path)
			if !ok {
				continue
			}
			mode, ok := LookupString(el, modeKeys...)
			if !ok {
				continue
			}
			p := domain.NewSecurityProfile(kind)
			applyModeToken(&p, mode)
			applyElementFields(&p, el)
			if kind == domain.KindWPAEnterprise {
				applyFastTransition(&p, el)
				if p.Enterprise.WPA3 && p.PMF == domain.PMFUnspecified {
					p.PMF = domain.PMFRequired
				}
			}
			return p, true
		}
		return domain.SecurityProfile{}, false
	}
}

func matchEnterpriseElement(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	el, ok := LookupRecord(rec, withPrivacy(enterpriseElementNames...)...)
	if !ok {
		return domain.SecurityProfile{}, false
	}
	p := domain.NewSecurityProfile(domain.KindWPAEnterprise)
	applyElementFields(&p, el)
	applyFastTransition(&p, el)
	if p.PMF == domain.PMFRequired {
		p.Enterprise.WPA3 = true
	}
	return p, true
}

func matchEAP(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	if !Has(rec, withPrivacy(eapElementNames...)...) {
		return domain.SecurityProfile{}, false
	}
	p := domain.NewSecurityProfile(domain.KindWPAEnterprise)
	p.Label = "802.1X"
	return p, true
}

func matchGenericMode(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	mode, ok := LookupString(rec, genericModePaths...)
	if !ok {
		return domain.SecurityProfile{}, false
	}
	switch domain.FoldToken(mode) {
	case "open", "none":
		return domain.NewSecurityProfile(domain.KindOpen), true
	case "owe":
		p := domain.NewSecurityProfile(domain.KindOWE)
		p.Cipher = domain.CipherAES
		if el, ok := LookupRecord(rec, withPrivacy(oweElementNames...)...); ok {
			applyElementFields(&p, el)
			if ssid, ok := LookupString(el, "transitionSsid", "transitionSSID", "companionSsid"); ok {
				p.OWE.CompanionSSID = ssid
			}
		}
		return p, true
	}
	if _, known := parseModeToken(mode); !known {
		p := domain.NewSecurityProfile(domain.KindSecuredUnknown)
		p.Label = mode
		return p, true
	}
	p := domain.NewSecurityProfile(domain.KindWPAPSK)
	applyModeToken(&p, mode)
	return p, true
}

func matchSecurityType(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	label, ok := LookupString(rec, securityTypePaths...)
	if !ok {
		return domain.SecurityProfile{}, false
	}
	kind, known := domain.ParseSecurityKind(label)
	if !known {
		kind = domain.KindSecuredUnknown
	}
	p := domain.NewSecurityProfile(kind)
	p.Label = label
	return p, true
}

func matchScalarType(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	label, ok := LookupString(rec, scalarTypePaths...)
	if !ok {
		return domain.SecurityProfile{}, false
	}
	p := domain.NewSecurityProfile(domain.KindSecuredUnknown)
	p.Label = label
	return p, true
}

func matchEncryptionString(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	enc, ok := LookupString(rec, encryptionPaths...)
	if !ok {
		return domain.SecurityProfile{}, false
	}
	lower := strings.ToLower(enc)
	var cipher domain.Cipher
	switch {
	case strings.Contains(lower, "wpa3"):
		cipher = domain.CipherAES
	case strings.Contains(lower, "wpa2"):
		cipher = domain.CipherAES
	case strings.Contains(lower, "wpa"):
		cipher = domain.CipherTKIP
	case strings.Contains(lower, "aes"):
		cipher = domain.CipherAES
	default:
		return domain.SecurityProfile{}, false
	}
	p := domain.NewSecurityProfile(domain.KindWPAPSK)
	p.Cipher = cipher
	p.Label = enc
	return p, true
}

func matchPassphrase(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	if _, ok := LookupString(rec, passphrasePaths...); !ok {
		return domain.SecurityProfile{}, false
	}
	return domain.NewSecurityProfile(domain.KindWPAPSK), true
}

func matchPrivacyKeys(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	privacy, ok := LookupRecord(rec, "privacy")
	if !ok || len(privacy) == 0 {
		return domain.SecurityProfile{}, false
	}
	keys := make([]string, 0, len(privacy))
	for k := range privacy {
		keys = append(keys, strings.ToLower(k))
	}
	sort.Strings(keys)

	switch {
	case anyContains(keys, enterpriseKeyHints):
		return domain.NewSecurityProfile(domain.KindWPAEnterprise), true
	case anyContains(keys, pskKeyHints):
		return domain.NewSecurityProfile(domain.KindWPAPSK), true
	}
	return domain.NewSecurityProfile(domain.KindSecuredUnknown), true
}

// matchOpen applies only when no security element is present at all.
func matchOpen(rec domain.RawRecord) (domain.SecurityProfile, bool) {
	if Has(rec, withPrivacy(securityElementNames...)...) {
		return domain.SecurityProfile{}, false
	}
	return domain.NewSecurityProfile(domain.KindOpen), true
}

func anyContains(keys, hints []string) bool {
	for _, k := range keys {
		for _, h := range hints {
			if strings.Contains(k, h) {
				return true
			}
		}
	}
	return false
}

// modeSpec is what a vendor mode token says about cipher and transition.
type modeSpec struct {
	cipher     domain.Cipher
	transition bool
	wpa3       bool
}

func parseModeToken(token string) (modeSpec, bool) {
	switch domain.FoldToken(token) {
	case "aesonly":
		return modeSpec{cipher: domain.CipherAES}, true
	case "tkiponly":
		return modeSpec{cipher: domain.CipherTKIP}, true
	case "mixed":
		return modeSpec{cipher: domain.CipherTKIPAES}, true
	case "wpa3only":
		return modeSpec{cipher: domain.CipherAES, wpa3: true}, true
	case "wpa3mixed":
		return modeSpec{cipher: domain.CipherAES, transition: true}, true
	case "wpa2/3", "wpa2/wpa3":
		return modeSpec{cipher: domain.CipherUnspecified, transition: true}, true
	case "wpa2", "wpa":
		return modeSpec{cipher: domain.CipherUnspecified}, true
	}
	return modeSpec{}, false
}

// applyModeToken maps a mode token onto p. Unrecognised tokens are kept
// verbatim in Label and leave the cipher unspecified.
func applyModeToken(p *domain.SecurityProfile, token string) {
	spec, ok := parseModeToken(token)
	if !ok {
		p.Label = token
		return
	}
	p.Cipher = spec.cipher
	p.TransitionMode = spec.transition
	if p.Enterprise != nil {
		p.Enterprise.WPA3 = spec.wpa3
	}
}

// applyElementFields copies explicit PMF and cipher settings of an element;
// they take precedence over whatever the mode token implied.
func applyElementFields(p *domain.SecurityProfile, el domain.RawRecord) {
	if pmf, ok := LookupString(el, pmfKeys...); ok {
		p.PMF = domain.ParsePMFMode(pmf)
	}
	if c, ok := LookupString(el, cipherKeys...); ok {
		if cipher := domain.ParseCipher(c); cipher != domain.CipherUnspecified {
			p.Cipher = cipher
		}
	}
}

func applyFastTransition(p *domain.SecurityProfile, el domain.RawRecord) {
	if ft, ok := LookupBool(el, "fastTransition", "fastTransitionEnabled", "ftEnabled"); ok {
		p.Enterprise.FastTransitionEnabled = ft
	}
	if id, ok := LookupNumber(el, "fastTransitionDomainId", "mobilityDomainId", "ftDomainId"); ok && id >= 0 && id <= 0xFFFF {
		p.Enterprise.FastTransitionDomainID = int(id)
	}
}

// ExtractPassphrase reads a secret echoed back by an authenticated read. It is
// kept apart from Classify so profiles never carry secrets implicitly.
func ExtractPassphrase(raw domain.RawRecord) (string, bool) {
	paths := append(withPrivacy(
		"WpaSaeElement.saePassphrase", "wpaSaeElement.saePassphrase",
	), passphrasePaths...)
	return LookupString(raw, paths...)
}
