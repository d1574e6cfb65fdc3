package normalize

import "github.com/lcalzada-xor/wdash/internal/core/domain"

// ApplyEdit returns a copy of p with the edit applied; p is not modified.
// Changing the kind resets the variant payload so fields of the previous
// kind do not leak into the new one.
func ApplyEdit(p domain.SecurityProfile, edit domain.SecurityEdit) domain.SecurityProfile {
	out := p.Clone()

	if edit.Kind != nil && *edit.Kind != out.Kind {
		next := domain.NewSecurityProfile(*edit.Kind)
		next.Cipher = out.Cipher
		next.PMF = out.PMF
		next.TransitionMode = out.TransitionMode
		next.Passphrase = out.Passphrase
		out = next
	}
	if edit.TransitionMode != nil {
		out.TransitionMode = *edit.TransitionMode
	}
	if edit.Cipher != nil {
		out.Cipher = *edit.Cipher
	}
	if edit.PMF != nil {
		out.PMF = *edit.PMF
	}
	if edit.Passphrase != nil {
		out.Passphrase = *edit.Passphrase
	}
	if edit.SAEMethod != nil && out.SAE != nil {
		out.SAE.Method = *edit.SAEMethod
	}
	if out.Enterprise != nil {
		if edit.FastTransitionEnabled != nil {
			out.Enterprise.FastTransitionEnabled = *edit.FastTransitionEnabled
		}
		if edit.FastTransitionDomainID != nil {
			out.Enterprise.FastTransitionDomainID = *edit.FastTransitionDomainID
		}
	}
	if edit.OWECompanionSSID != nil && out.OWE != nil {
		out.OWE.CompanionSSID = *edit.OWECompanionSSID
	}
	return out
}
