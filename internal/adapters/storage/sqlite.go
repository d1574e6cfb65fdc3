package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// SQLiteAdapter implements ports.SnapshotStore and ports.AuditRepository
// using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// RateSnapshotModel is the GORM model for station rate samples.
type RateSnapshotModel struct {
	ID          uint   `gorm:"primaryKey"`
	MAC         string `gorm:"index:idx_snapshots_mac_ts,priority:1;size:17"`
	UplinkBps   float64
	DownlinkBps float64
	IsEstimated bool
	Timestamp   time.Time `gorm:"index:idx_snapshots_mac_ts,priority:2"`
}

// AuditLogModel is the GORM model for audit entries.
type AuditLogModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Username  string `gorm:"index"`
	Action    string
	Target    string
	Details   string
	IPAddress string
	Timestamp time.Time `gorm:"index"`
}

// NewSQLiteAdapter opens the database, enables tracing and migrates the schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return newAdapter(db)
}

func newAdapter(db *gorm.DB) (*SQLiteAdapter, error) {
	if err := db.Use(tracing.NewPlugin()); err != nil {
		return nil, fmt.Errorf("enable db tracing: %w", err)
	}
	if err := db.AutoMigrate(&RateSnapshotModel{}, &AuditLogModel{}); err != nil {
		return nil, err
	}
	return &SQLiteAdapter{db: db}, nil
}

// SaveSnapshots stores a batch of samples in a single transaction.
func (a *SQLiteAdapter) SaveSnapshots(ctx context.Context, snapshots []domain.RateSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	models := make([]RateSnapshotModel, len(snapshots))
	for i, s := range snapshots {
		models[i] = snapshotToModel(s)
	}

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, 100).Error
	})
}

// ListSnapshots returns up to limit samples for mac, newest first.
func (a *SQLiteAdapter) ListSnapshots(ctx context.Context, mac string, limit int) ([]domain.RateSnapshot, error) {
	var models []RateSnapshotModel
	if err := a.db.WithContext(ctx).
		Where("mac = ?", mac).
		Order("timestamp desc, id desc").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.RateSnapshot, len(models))
	for i, m := range models {
		out[i] = snapshotToDomain(m)
	}
	return out, nil
}

// PruneSnapshots deletes samples older than before and reports how many went.
func (a *SQLiteAdapter) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	res := a.db.WithContext(ctx).Where("timestamp < ?", before).Delete(&RateSnapshotModel{})
	return res.RowsAffected, res.Error
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure interface compliance
var _ ports.SnapshotStore = (*SQLiteAdapter)(nil)
