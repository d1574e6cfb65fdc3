package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

const (
	maxSSIDBytes        = 32
	minPassphraseLength = 8
	maxPassphraseLength = 63
)

// Validate checks an assembled service payload before submission. Every check
// runs regardless of earlier failures and all failures are reported.
func Validate(payload domain.ServicePayload) domain.ValidationResult {
	errs := []string{}

	if strings.TrimSpace(payload.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(payload.SSID) == "" {
		errs = append(errs, "ssid is required")
	}
	if len(payload.SSID) > maxSSIDBytes {
		errs = append(errs, fmt.Sprintf("ssid must be at most %d bytes, got %d", maxSSIDBytes, len(payload.SSID)))
	}
	if payload.Privacy != nil {
		if secret, ok := payload.Privacy.Passphrase(); ok {
			if n := utf8.RuneCountInString(secret); n < minPassphraseLength || n > maxPassphraseLength {
				errs = append(errs, fmt.Sprintf("passphrase must be %d-%d characters, got %d", minPassphraseLength, maxPassphraseLength, n))
			}
		}
	}

	timeouts := []struct {
		name  string
		value int
	}{
		{"preAuthIdleTimeout", payload.PreAuthIdleTimeout},
		{"postAuthIdleTimeout", payload.PostAuthIdleTimeout},
		{"sessionTimeout", payload.SessionTimeout},
	}
	for _, t := range timeouts {
		if t.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative, got %d", t.name, t.value))
		}
	}

	return domain.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
