package ports

import (
	"context"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

// SnapshotStore persists station rate samples.
type SnapshotStore interface {
	SaveSnapshots(ctx context.Context, snapshots []domain.RateSnapshot) error
	// ListSnapshots returns the newest snapshots for mac first.
	ListSnapshots(ctx context.Context, mac string, limit int) ([]domain.RateSnapshot, error)
	Close() error
}
