package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/services/normalize"
	"github.com/lcalzada-xor/wdash/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultHistoryLimit = 100

var (
	stationMACPaths      = []string{"mac", "macAddress", "clientMac", "staMac"}
	stationHostnamePaths = []string{"hostname", "hostName", "name"}
	stationSSIDPaths     = []string{"ssid", "essid", "serviceName"}
	stationUptimePaths   = []string{"uptime", "connectedTime", "sessionTime"}
)

// ListStations resolves rate and vendor for every associated station and
// queues one snapshot per station. Records without a MAC are skipped.
func (s *Service) ListStations(ctx context.Context) ([]domain.Station, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ListStations")
	defer span.End()

	raws, err := s.controller.ListStations(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "controller list failed")
		return nil, fmt.Errorf("list stations: %w", err)
	}

	now := s.now()
	stations := make([]domain.Station, 0, len(raws))
	snapshots := make([]domain.RateSnapshot, 0, len(raws))
	for _, raw := range raws {
		mac, ok := normalize.LookupString(raw, stationMACPaths...)
		if !ok {
			slog.Debug("station record without MAC skipped")
			continue
		}
		mac = strings.ToUpper(strings.TrimSpace(mac))

		sample := normalize.ResolveRate(raw)
		telemetry.RateResolutionsTotal.WithLabelValues(strconv.FormatBool(sample.IsEstimated)).Inc()

		st := domain.Station{
			MAC:       mac,
			Rate:      sample,
			UpdatedAt: now,
		}
		st.Hostname, _ = normalize.LookupString(raw, stationHostnamePaths...)
		st.SSID, _ = normalize.LookupString(raw, stationSSIDPaths...)
		if uptime, ok := normalize.LookupNumber(raw, stationUptimePaths...); ok && uptime > 0 {
			st.Uptime = int64(uptime)
		}
		if s.vendors != nil {
			st.Vendor = s.vendors.ResolveVendor(ctx, mac)
		}

		stations = append(stations, st)
		snapshots = append(snapshots, domain.RateSnapshot{MAC: mac, Sample: sample, Timestamp: now})
	}
	span.SetAttributes(attribute.Int("stations.count", len(stations)))

	if s.recorder != nil {
		s.recorder.Record(snapshots...)
	}

	s.mu.Lock()
	s.lastStations = stations
	s.mu.Unlock()

	return stations, nil
}

// LastStations returns a copy of the most recent ListStations result.
func (s *Service) LastStations() []domain.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Station, len(s.lastStations))
	copy(out, s.lastStations)
	return out
}

// RateHistory returns persisted snapshots for mac, newest first.
func (s *Service) RateHistory(ctx context.Context, mac string, limit int) ([]domain.RateSnapshot, error) {
	if s.snapshots == nil {
		return []domain.RateSnapshot{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	history, err := s.snapshots.ListSnapshots(ctx, strings.ToUpper(strings.TrimSpace(mac)), limit)
	if err != nil {
		return nil, fmt.Errorf("rate history for %s: %w", mac, err)
	}
	return history, nil
}
