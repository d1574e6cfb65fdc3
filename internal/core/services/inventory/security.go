package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/services/normalize"
	"github.com/lcalzada-xor/wdash/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	preAuthTimeoutPaths  = []string{"preAuthIdleTimeout", "preAuthTimeout"}
	postAuthTimeoutPaths = []string{"postAuthIdleTimeout", "idleTimeout"}
	sessionTimeoutPaths  = []string{"sessionTimeout", "maxSessionTime"}
)

// UpdateSecurity applies edit to the current profile of service id and writes
// the result back. A passphrase echoed by the controller is reused when the
// edit does not carry one.
func (s *Service) UpdateSecurity(ctx context.Context, id string, edit domain.SecurityEdit) (domain.SecurityProfile, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "UpdateSecurity")
	defer span.End()
	span.SetAttributes(attribute.String("service.id", id))

	profile, err := s.updateSecurity(ctx, id, edit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "security update failed")
		return domain.SecurityProfile{}, err
	}
	span.SetAttributes(attribute.String("security.kind", string(profile.Kind)))
	return profile, nil
}

func (s *Service) updateSecurity(ctx context.Context, id string, edit domain.SecurityEdit) (domain.SecurityProfile, error) {
	raw, err := s.controller.GetService(ctx, id)
	if err != nil {
		return domain.SecurityProfile{}, err
	}

	current, rule := normalize.ClassifyTrace(raw)
	next := normalize.ApplyEdit(current, edit)
	if edit.Passphrase == nil && next.Passphrase == "" {
		if secret, ok := normalize.ExtractPassphrase(raw); ok {
			next.Passphrase = secret
		}
	}
	if needsPassphrase(next.Kind) && next.Passphrase == "" {
		return domain.SecurityProfile{}, fmt.Errorf("service %s: %w", id, domain.ErrPassphraseRequired)
	}

	privacy, err := normalize.Encode(next)
	if err != nil {
		telemetry.EncodeFailuresTotal.Inc()
		return domain.SecurityProfile{}, fmt.Errorf("service %s: %w", id, err)
	}

	payload := assemblePayload(raw, privacy)
	if res := normalize.Validate(payload); !res.Valid {
		telemetry.ValidationFailuresTotal.Inc()
		return domain.SecurityProfile{}, &domain.ValidationError{Errors: res.Errors}
	}

	if err := s.controller.UpdateService(ctx, id, payload); err != nil {
		return domain.SecurityProfile{}, fmt.Errorf("update service %s: %w", id, err)
	}

	slog.Info("Security profile updated", "service", id, "from", current.DisplayName(), "to", next.DisplayName(), "rule", rule)
	if s.audit != nil {
		details := fmt.Sprintf("%s -> %s", current.DisplayName(), next.DisplayName())
		if err := s.audit.Log(ctx, domain.ActionSecurityUpdate, id, details); err != nil {
			slog.Warn("failed to record audit entry", "service", id, "error", err)
		}
	}

	written := next.Clone()
	written.Passphrase = ""
	return written, nil
}

func needsPassphrase(kind domain.SecurityKind) bool {
	return kind == domain.KindWPAPSK || kind == domain.KindWPASAE
}

// assemblePayload carries the non-security fields over from the raw record.
func assemblePayload(raw domain.RawRecord, privacy domain.VendorPrivacyPayload) domain.ServicePayload {
	svc := serviceFields(raw)
	return domain.ServicePayload{
		Name:                svc.Name,
		SSID:                svc.SSID,
		Enabled:             svc.Enabled,
		Privacy:             &privacy,
		PreAuthIdleTimeout:  intField(raw, preAuthTimeoutPaths...),
		PostAuthIdleTimeout: intField(raw, postAuthTimeoutPaths...),
		SessionTimeout:      intField(raw, sessionTimeoutPaths...),
	}
}

func intField(raw domain.RawRecord, paths ...string) int {
	v, _ := normalize.LookupNumber(raw, paths...)
	return int(v)
}

// IsClientError reports errors caused by the request rather than the controller.
func IsClientError(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, domain.ErrUnencodableProfile) ||
		errors.Is(err, domain.ErrPassphraseRequired)
}
