package fingerprint

import (
	"context"
	"errors"
)

// VendorRepository defines the interface for looking up device vendors by MAC address
type VendorRepository interface {
	// LookupVendor returns the vendor name for a given MAC address
	LookupVendor(ctx context.Context, mac MACAddress) (string, error)

	// Close releases any resources held by the repository
	Close() error
}

// CommonOUIs seeds the static repository with vendors frequently seen on
// enterprise and home networks.
var CommonOUIs = map[string]string{
	"00:17:F2": "Apple",
	"F0:18:98": "Apple",
	"00:12:FB": "Samsung",
	"00:1E:BD": "Cisco",
	"50:C7:BF": "TP-Link",
	"A0:63:91": "Netgear",
	"00:14:BF": "Linksys",
	"F4:F5:D8": "Google",
	"FC:A6:67": "Amazon",
	"34:CE:00": "Xiaomi",
	"00:E0:FC": "Huawei",
	"00:13:02": "Intel",
	"00:10:18": "Broadcom",
	"00:03:7F": "Qualcomm",
	"00:1F:C6": "Asus",
	"00:17:9A": "D-Link",
	"24:A4:3C": "Ubiquiti",
	"00:0B:86": "Aruba",
	"00:13:A9": "Sony",
	"00:1C:62": "LG",
}

// CompositeVendorRepository tries multiple repositories in order
type CompositeVendorRepository struct {
	repositories []VendorRepository
}

// NewCompositeVendorRepository creates a repository that tries each
// repository in order until one succeeds
func NewCompositeVendorRepository(repos ...VendorRepository) *CompositeVendorRepository {
	return &CompositeVendorRepository{
		repositories: repos,
	}
}

// LookupVendor tries each repository in order until one returns a result.
// A miss everywhere is ErrVendorNotFound; any other failure is returned
// only when no repository produced a vendor.
func (c *CompositeVendorRepository) LookupVendor(ctx context.Context, mac MACAddress) (string, error) {
	if !mac.IsValid() {
		return "", ErrInvalidMAC
	}

	var lastErr error
	for _, repo := range c.repositories {
		vendor, err := repo.LookupVendor(ctx, mac)
		if err == nil && vendor != "" {
			return vendor, nil
		}
		if err != nil && !errors.Is(err, ErrVendorNotFound) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", ErrVendorNotFound
}

// Close closes all repositories
func (c *CompositeVendorRepository) Close() error {
	var errs []error
	for _, repo := range c.repositories {
		errs = append(errs, repo.Close())
	}
	return errors.Join(errs...)
}

// StaticVendorRepository provides vendor lookups from an in-memory map
type StaticVendorRepository struct {
	vendors map[string]string
}

// NewStaticVendorRepository creates a new static repository keyed by "XX:XX:XX"
func NewStaticVendorRepository(vendors map[string]string) *StaticVendorRepository {
	return &StaticVendorRepository{
		vendors: vendors,
	}
}

// LookupVendor looks up a vendor in the static map
func (s *StaticVendorRepository) LookupVendor(_ context.Context, mac MACAddress) (string, error) {
	if vendor, ok := s.vendors[mac.OUI()]; ok {
		return vendor, nil
	}
	return "", ErrVendorNotFound
}

// Close is a no-op for static repository
func (s *StaticVendorRepository) Close() error {
	return nil
}
