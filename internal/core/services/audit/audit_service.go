package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
)

// Actor identifies who triggered an audited action.
type Actor struct {
	Username  string
	IPAddress string
}

type actorKey struct{}

// WithActor returns a context carrying the acting user. The web layer sets it
// once authentication succeeds.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the acting user, or "system" when none was recorded.
func ActorFrom(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorKey{}).(Actor); ok && a.Username != "" {
		return a
	}
	return Actor{Username: "system"}
}

type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	actor := ActorFrom(ctx)

	entry, err := domain.NewAuditLog(uuid.NewString(), actor.Username, action, target, details, actor.IPAddress)
	if err != nil {
		return err
	}

	slog.Info("audit", "action", action, "target", target, "user", actor.Username)
	return s.repo.SaveAuditLog(ctx, *entry)
}

func (s *AuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListAuditLogs(ctx, limit)
}

var _ ports.AuditService = (*AuditService)(nil)
