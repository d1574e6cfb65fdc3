package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnencodableProfile is returned when a profile without a concrete
	// kind is about to be written back to the controller.
	ErrUnencodableProfile = errors.New("profile has no concrete security kind")

	// ErrServiceNotFound indicates the controller has no service with the given id.
	ErrServiceNotFound = errors.New("wireless service not found")

	// ErrPassphraseRequired indicates a secured edit with no passphrase to send.
	ErrPassphraseRequired = errors.New("passphrase required")
)

// ValidationError carries every failed check of a rejected payload.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid service payload: %s", strings.Join(e.Errors, "; "))
}
