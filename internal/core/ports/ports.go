package ports

import (
	"context"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

// ControllerClient fetches raw records from the wireless controller and
// submits service updates. Records are returned exactly as the controller
// sent them; normalisation happens in the core.
type ControllerClient interface {
	ListServices(ctx context.Context) ([]domain.RawRecord, error)
	// GetService returns domain.ErrServiceNotFound when id is unknown.
	GetService(ctx context.Context, id string) (domain.RawRecord, error)
	UpdateService(ctx context.Context, id string, payload domain.ServicePayload) error
	ListStations(ctx context.Context) ([]domain.RawRecord, error)
}

// VendorResolver maps a station MAC to a vendor name for display.
type VendorResolver interface {
	// ResolveVendor never fails; unknown or malformed addresses yield "Unknown".
	ResolveVendor(ctx context.Context, mac string) string
}

// InventoryService is the normalised view of the controller used by the
// web layer.
type InventoryService interface {
	ListServices(ctx context.Context) ([]domain.WirelessService, error)
	GetService(ctx context.Context, id string) (domain.WirelessService, error)
	// UpdateSecurity applies edit to the service's current profile and
	// submits it. It returns the profile that was written.
	UpdateSecurity(ctx context.Context, id string, edit domain.SecurityEdit) (domain.SecurityProfile, error)
	ListStations(ctx context.Context) ([]domain.Station, error)
	// LastStations returns the most recent successful ListStations result.
	LastStations() []domain.Station
	RateHistory(ctx context.Context, mac string, limit int) ([]domain.RateSnapshot, error)
}
