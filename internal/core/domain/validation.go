package domain

import (
	"regexp"
)

// Validation Helpers

var (
	macRegex       = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
	serviceIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)
)

// IsValidMAC checks if the string is a valid MAC address
func IsValidMAC(mac string) bool {
	return macRegex.MatchString(mac)
}

// IsValidServiceID checks if the string is a safe controller service ID
// (alphanumeric + - _ .), so it can be placed in an API path.
func IsValidServiceID(id string) bool {
	if len(id) == 0 || len(id) > 64 {
		return false
	}
	return serviceIDRegex.MatchString(id)
}
