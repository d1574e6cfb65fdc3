package fingerprint

import (
	"encoding/hex"
	"fmt"
	"net"
	"strings"
)

// MACAddress is a value object representing a validated station address
type MACAddress struct {
	address net.HardwareAddr
}

// ParseMAC parses a MAC address string into a MACAddress value object.
// Controllers report stations as "aa:bb:cc:dd:ee:ff", "AA-BB-CC-DD-EE-FF",
// "aabb.ccdd.eeff" or bare "aabbccddeeff"; all are accepted.
func ParseMAC(s string) (MACAddress, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MACAddress{}, ErrEmptyMAC
	}

	digits := strings.NewReplacer(":", "", "-", "", ".", "").Replace(s)
	raw, err := hex.DecodeString(digits)
	if err != nil || len(raw) != 6 {
		return MACAddress{}, &ValidationError{
			Field: "mac",
			Value: s,
			Err:   ErrInvalidMAC,
		}
	}

	return MACAddress{address: net.HardwareAddr(raw)}, nil
}

// MustParseMAC parses a MAC address and panics on error.
// Only use in tests or with known-valid input.
func MustParseMAC(s string) MACAddress {
	mac, err := ParseMAC(s)
	if err != nil {
		panic(fmt.Sprintf("invalid MAC address %q: %v", s, err))
	}
	return mac
}

// NormalizeMAC returns s in canonical "AA:BB:CC:DD:EE:FF" form, or s
// unchanged when it is not a MAC address.
func NormalizeMAC(s string) string {
	mac, err := ParseMAC(s)
	if err != nil {
		return s
	}
	return mac.String()
}

// OUI returns the Organizationally Unique Identifier (first 3 bytes) as "XX:XX:XX"
func (m MACAddress) OUI() string {
	if len(m.address) < 3 {
		return ""
	}
	return fmt.Sprintf("%02X:%02X:%02X", m.address[0], m.address[1], m.address[2])
}

// IsRandomized checks the Locally Administered Address bit, which phones set
// for private Wi-Fi addresses.
func (m MACAddress) IsRandomized() bool {
	return len(m.address) > 0 && m.address[0]&0x02 != 0
}

// IsMulticast checks the group bit of the first octet.
func (m MACAddress) IsMulticast() bool {
	return len(m.address) > 0 && m.address[0]&0x01 != 0
}

// String returns the MAC address in standard format "XX:XX:XX:XX:XX:XX"
func (m MACAddress) String() string {
	return strings.ToUpper(m.address.String())
}

// Equal compares two MAC addresses for equality
func (m MACAddress) Equal(other MACAddress) bool {
	return m.String() == other.String()
}

// IsValid returns true if the MAC address is valid (non-empty)
func (m MACAddress) IsValid() bool {
	return len(m.address) == 6
}
