// Package inventory is the normalised view of the wireless controller: it
// fetches raw services and stations, runs them through the normalize core and
// hands the web layer typed results.
package inventory

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
	"github.com/lcalzada-xor/wdash/internal/core/services/normalize"
	"github.com/lcalzada-xor/wdash/internal/core/services/persistence"
	"github.com/lcalzada-xor/wdash/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const tracerName = "inventory-service"

var (
	serviceIDPaths   = []string{"id", "_id", "serviceId", "uuid"}
	serviceNamePaths = []string{"name", "serviceName", "profileName"}
	ssidPaths        = []string{"ssid", "essid", "wlanName"}
	enabledPaths     = []string{"enabled", "isEnabled", "status.enabled"}
)

// Deps are the collaborators of a Service. Snapshots, Recorder, Vendors and
// Audit are optional.
type Deps struct {
	Controller ports.ControllerClient
	Vendors    ports.VendorResolver
	Snapshots  ports.SnapshotStore
	Recorder   *persistence.Recorder
	Audit      ports.AuditService
	// Workers bounds the classification fan-out; zero means GOMAXPROCS.
	Workers int
}

// Service implements ports.InventoryService.
type Service struct {
	controller ports.ControllerClient
	vendors    ports.VendorResolver
	snapshots  ports.SnapshotStore
	recorder   *persistence.Recorder
	audit      ports.AuditService
	workers    int
	now        func() time.Time

	mu           sync.RWMutex
	lastStations []domain.Station
}

// NewService wires an inventory service.
func NewService(deps Deps) *Service {
	workers := deps.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Service{
		controller: deps.Controller,
		vendors:    deps.Vendors,
		snapshots:  deps.Snapshots,
		recorder:   deps.Recorder,
		audit:      deps.Audit,
		workers:    workers,
		now:        time.Now,
	}
}

// ListServices classifies every controller service. Results keep the
// controller's order.
func (s *Service) ListServices(ctx context.Context) ([]domain.WirelessService, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ListServices")
	defer span.End()

	raws, err := s.controller.ListServices(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "controller list failed")
		return nil, fmt.Errorf("list services: %w", err)
	}
	span.SetAttributes(attribute.Int("services.count", len(raws)))

	out := make([]domain.WirelessService, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = toService(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetService classifies a single service.
func (s *Service) GetService(ctx context.Context, id string) (domain.WirelessService, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "GetService")
	defer span.End()
	span.SetAttributes(attribute.String("service.id", id))

	raw, err := s.controller.GetService(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.WirelessService{}, err
	}
	svc := toService(raw)
	if svc.ID == "" {
		svc.ID = id
	}
	return svc, nil
}

// toService normalises one raw service record.
func toService(raw domain.RawRecord) domain.WirelessService {
	profile, rule := normalize.ClassifyTrace(raw)
	telemetry.ClassificationsTotal.WithLabelValues(string(profile.Kind), rule).Inc()

	svc := serviceFields(raw)
	svc.Profile = profile
	svc.MatchedRule = rule
	return svc
}

// serviceFields reads the identity fields of a service without classifying it.
func serviceFields(raw domain.RawRecord) domain.WirelessService {
	name, _ := normalize.LookupString(raw, serviceNamePaths...)
	ssid, _ := normalize.LookupString(raw, ssidPaths...)
	if name == "" {
		name = ssid
	}
	enabled, ok := normalize.LookupBool(raw, enabledPaths...)
	if !ok {
		enabled = true
	}
	return domain.WirelessService{
		ID:      recordID(raw, serviceIDPaths...),
		Name:    name,
		SSID:    ssid,
		Enabled: enabled,
	}
}

// recordID accepts string or numeric identifiers.
func recordID(raw domain.RawRecord, paths ...string) string {
	if id, ok := normalize.LookupString(raw, paths...); ok {
		return id
	}
	if n, ok := normalize.LookupNumber(raw, paths...); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

var _ ports.InventoryService = (*Service)(nil)
