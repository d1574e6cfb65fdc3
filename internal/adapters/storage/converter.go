package storage

import "github.com/lcalzada-xor/wdash/internal/core/domain"

func snapshotToModel(s domain.RateSnapshot) RateSnapshotModel {
	return RateSnapshotModel{
		ID:          s.ID,
		MAC:         s.MAC,
		UplinkBps:   s.Sample.UplinkBps,
		DownlinkBps: s.Sample.DownlinkBps,
		IsEstimated: s.Sample.IsEstimated,
		Timestamp:   s.Timestamp.UTC(),
	}
}

func snapshotToDomain(m RateSnapshotModel) domain.RateSnapshot {
	return domain.RateSnapshot{
		ID:  m.ID,
		MAC: m.MAC,
		Sample: domain.RateSample{
			UplinkBps:   m.UplinkBps,
			DownlinkBps: m.DownlinkBps,
			IsEstimated: m.IsEstimated,
		},
		Timestamp: m.Timestamp,
	}
}

func auditToModel(l domain.AuditLog) AuditLogModel {
	return AuditLogModel{
		ID:        l.ID,
		Username:  l.Username,
		Action:    string(l.Action),
		Target:    l.Target,
		Details:   l.Details,
		IPAddress: l.IPAddress,
		Timestamp: l.Timestamp.UTC(),
	}
}

func auditToDomain(m AuditLogModel) domain.AuditLog {
	return domain.AuditLog{
		ID:        m.ID,
		Username:  m.Username,
		Action:    domain.AuditAction(m.Action),
		Target:    m.Target,
		Details:   m.Details,
		IPAddress: m.IPAddress,
		Timestamp: m.Timestamp,
	}
}
