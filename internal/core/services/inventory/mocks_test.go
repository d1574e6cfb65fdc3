package inventory

import (
	"context"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockController implements ports.ControllerClient
type MockController struct {
	mock.Mock
}

func (m *MockController) ListServices(ctx context.Context) ([]domain.RawRecord, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]domain.RawRecord)
	return recs, args.Error(1)
}

func (m *MockController) GetService(ctx context.Context, id string) (domain.RawRecord, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(domain.RawRecord)
	return rec, args.Error(1)
}

func (m *MockController) UpdateService(ctx context.Context, id string, payload domain.ServicePayload) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *MockController) ListStations(ctx context.Context) ([]domain.RawRecord, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]domain.RawRecord)
	return recs, args.Error(1)
}

// MockAudit implements ports.AuditService
type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	args := m.Called(ctx, action, target, details)
	return args.Error(0)
}

func (m *MockAudit) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	logs, _ := args.Get(0).([]domain.AuditLog)
	return logs, args.Error(1)
}

// MockSnapshotStore implements ports.SnapshotStore
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) SaveSnapshots(ctx context.Context, snapshots []domain.RateSnapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func (m *MockSnapshotStore) ListSnapshots(ctx context.Context, mac string, limit int) ([]domain.RateSnapshot, error) {
	args := m.Called(ctx, mac, limit)
	snaps, _ := args.Get(0).([]domain.RateSnapshot)
	return snaps, args.Error(1)
}

func (m *MockSnapshotStore) Close() error { return nil }

type staticVendors map[string]string

func (s staticVendors) ResolveVendor(_ context.Context, mac string) string {
	if v, ok := s[mac]; ok {
		return v
	}
	return "Unknown"
}
