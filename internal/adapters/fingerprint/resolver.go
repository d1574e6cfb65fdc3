package fingerprint

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lcalzada-xor/wdash/internal/core/ports"
)

// Labels returned when a vendor cannot be named.
const (
	VendorUnknown    = "Unknown"
	VendorRandomized = "Randomized"
)

// Resolver adapts a VendorRepository to ports.VendorResolver. It never
// fails: bad or unknown addresses resolve to a display label.
type Resolver struct {
	repo VendorRepository
}

// NewResolver creates a resolver over repo
func NewResolver(repo VendorRepository) *Resolver {
	return &Resolver{repo: repo}
}

// NewDefaultResolver builds the usual chain: an LRU in front of the
// optional OUI file and the built-in common vendors.
func NewDefaultResolver(ouiFile string, cacheSize int) (*Resolver, error) {
	repos := make([]VendorRepository, 0, 2)
	if ouiFile != "" {
		fileRepo := NewFileVendorRepository()
		n, err := fileRepo.LoadFromFile(ouiFile)
		if err != nil {
			return nil, err
		}
		slog.Info("Loaded OUI database", "path", ouiFile, "prefixes", n)
		repos = append(repos, fileRepo)
	}
	repos = append(repos, NewStaticVendorRepository(CommonOUIs))
	return NewResolver(NewCachingRepository(cacheSize, NewCompositeVendorRepository(repos...))), nil
}

// ResolveVendor returns the vendor name for mac
func (r *Resolver) ResolveVendor(ctx context.Context, mac string) string {
	addr, err := ParseMAC(mac)
	if err != nil {
		return VendorUnknown
	}

	vendor, err := r.repo.LookupVendor(ctx, addr)
	if err == nil && vendor != "" {
		return vendor
	}
	if err != nil && !errors.Is(err, ErrVendorNotFound) {
		slog.Debug("vendor lookup failed", "mac", addr.String(), "error", err)
	}
	if addr.IsRandomized() {
		return VendorRandomized
	}
	return VendorUnknown
}

// Close releases the underlying repository
func (r *Resolver) Close() error {
	return r.repo.Close()
}

var _ ports.VendorResolver = (*Resolver)(nil)
