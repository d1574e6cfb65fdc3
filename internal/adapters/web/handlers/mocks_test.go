package handlers

import (
	"context"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) ListServices(ctx context.Context) ([]domain.WirelessService, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WirelessService), args.Error(1)
}

func (m *MockInventory) GetService(ctx context.Context, id string) (domain.WirelessService, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.WirelessService), args.Error(1)
}

func (m *MockInventory) UpdateSecurity(ctx context.Context, id string, edit domain.SecurityEdit) (domain.SecurityProfile, error) {
	args := m.Called(ctx, id, edit)
	return args.Get(0).(domain.SecurityProfile), args.Error(1)
}

func (m *MockInventory) ListStations(ctx context.Context) ([]domain.Station, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *MockInventory) LastStations() []domain.Station {
	args := m.Called()
	return args.Get(0).([]domain.Station)
}

func (m *MockInventory) RateHistory(ctx context.Context, mac string, limit int) ([]domain.RateSnapshot, error) {
	args := m.Called(ctx, mac, limit)
	return args.Get(0).([]domain.RateSnapshot), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	args := m.Called(ctx, action, target, details)
	return args.Error(0)
}

func (m *MockAuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

type recordingNotifier struct {
	ids []string
}

func (n *recordingNotifier) NotifyServiceUpdated(id string, _ domain.SecurityProfile) {
	n.ids = append(n.ids, id)
}

type fakeToggle struct {
	enabled  bool
	hasStore bool
}

func (f *fakeToggle) IsEnabled() bool { return f.enabled }

func (f *fakeToggle) SetEnabled(enabled bool) { f.enabled = enabled && f.hasStore }

type fakeExporter struct {
	got *domain.SecurityReport
}

func (f *fakeExporter) ExportSecurityReport(report *domain.SecurityReport) ([]byte, error) {
	f.got = report
	return []byte("%PDF-1.3 fake"), nil
}
