package normalize

import (
	"fmt"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

// Encode turns a canonical profile into the vendor privacy fragment. The
// passphrase is passed through untouched; checking it is Validate's job.
// Profiles without a concrete kind are refused with ErrUnencodableProfile.
func Encode(p domain.SecurityProfile) (domain.VendorPrivacyPayload, error) {
	switch p.Kind {
	case domain.KindWPASAE:
		return encodeSAE(p), nil
	case domain.KindWPAPSK:
		return encodePSK(p), nil
	case domain.KindWPAEnterprise:
		return encodeEnterprise(p), nil
	case domain.KindOWE:
		return encodeOWE(p), nil
	case domain.KindOpen:
		return domain.VendorPrivacyPayload{Type: domain.PrivacyNone, Mode: domain.ModeOpen}, nil
	case domain.KindSecuredUnknown:
		return domain.VendorPrivacyPayload{}, fmt.Errorf("%w: %s (label %q)", domain.ErrUnencodableProfile, p.Kind, p.Label)
	}
	return domain.VendorPrivacyPayload{}, fmt.Errorf("%w: unknown kind %q", domain.ErrUnencodableProfile, p.Kind)
}

func encodeSAE(p domain.SecurityProfile) domain.VendorPrivacyPayload {
	cipher := domain.CipherAES
	if p.Cipher == domain.CipherTKIPAES {
		cipher = domain.CipherTKIPAES
	}
	// Transition mode is expressed by the controller as PMF capable.
	pmf := p.PMF
	if p.TransitionMode {
		pmf = domain.PMFCapable
	}
	return domain.VendorPrivacyPayload{
		Type: domain.PrivacyWPASAE,
		WpaSaeElement: &domain.SAEElement{
			PMFMode:          pmf.Token(),
			SAEMethod:        p.SAEMethod().Token(),
			EncryptionCipher: cipher.Token(),
			SAEPassphrase:    p.Passphrase,
		},
	}
}

func encodePSK(p domain.SecurityProfile) domain.VendorPrivacyPayload {
	mode := domain.ModeWPA2
	switch {
	case p.TransitionMode:
		mode = domain.ModeWPA2WPA3
	case p.Cipher == domain.CipherTKIP:
		mode = domain.ModeWPA
	}
	return domain.VendorPrivacyPayload{
		Type: domain.PrivacyWPAPSK,
		WpaPskElement: &domain.PSKElement{
			Mode:             mode,
			PMFMode:          p.PMF.Token(),
			Passphrase:       p.Passphrase,
			EncryptionCipher: p.Cipher.Token(),
		},
	}
}

func encodeEnterprise(p domain.SecurityProfile) domain.VendorPrivacyPayload {
	el := &domain.EnterpriseElement{
		Mode:             enterpriseMode(p),
		PMFMode:          p.PMF.Token(),
		EncryptionCipher: p.Cipher.Token(),
	}
	if p.IsWPA3Enterprise() && p.PMF == domain.PMFUnspecified {
		el.PMFMode = domain.PMFRequired.Token()
	}
	if p.Enterprise != nil {
		el.FastTransition = p.Enterprise.FastTransitionEnabled
		el.FastTransitionDomainID = p.Enterprise.FastTransitionDomainID
	}
	return domain.VendorPrivacyPayload{
		Type:                 domain.PrivacyWPAEnterprise,
		WpaEnterpriseElement: el,
	}
}

// enterpriseMode picks the mode token; an empty token leaves the element
// without a mode so the controller applies its default.
func enterpriseMode(p domain.SecurityProfile) string {
	switch {
	case p.TransitionMode:
		return domain.ModeWPA3Mixed
	case p.IsWPA3Enterprise():
		return domain.ModeWPA3Only
	}
	switch p.Cipher {
	case domain.CipherAES:
		return domain.ModeAESOnly
	case domain.CipherTKIP:
		return domain.ModeTKIPOnly
	case domain.CipherTKIPAES:
		return domain.ModeMixed
	}
	return ""
}

func encodeOWE(p domain.SecurityProfile) domain.VendorPrivacyPayload {
	el := &domain.OWEElement{EncryptionCipher: domain.CipherAES.Token()}
	if p.OWE != nil {
		el.TransitionSSID = p.OWE.CompanionSSID
	}
	return domain.VendorPrivacyPayload{
		Type:       domain.PrivacyOWE,
		Mode:       domain.ModeOWE,
		OweElement: el,
	}
}
