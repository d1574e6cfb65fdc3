package handlers

import (
	"errors"
	"net/http"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/services/normalize"
)

// NormalizeHandler exposes the pure normalisation functions. Nothing here
// talks to the controller.
type NormalizeHandler struct{}

// NewNormalizeHandler creates a new NormalizeHandler
func NewNormalizeHandler() *NormalizeHandler {
	return &NormalizeHandler{}
}

// HandleClassify classifies a raw service record
func (h *NormalizeHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	var raw domain.RawRecord
	if err := decodeBody(w, r, &raw); err != nil || raw == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile, rule := normalize.ClassifyTrace(raw)
	writeJSON(w, http.StatusOK, map[string]any{"security": profile, "matched_rule": rule})
}

// HandleEncode encodes a canonical profile into the vendor privacy fragment
func (h *NormalizeHandler) HandleEncode(w http.ResponseWriter, r *http.Request) {
	var profile domain.SecurityProfile
	if err := decodeBody(w, r, &profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if kind, ok := domain.ParseSecurityKind(string(profile.Kind)); ok {
		profile.Kind = kind
	}
	payload, err := normalize.Encode(profile)
	if errors.Is(err, domain.ErrUnencodableProfile) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"privacy": payload})
}

// HandleValidate checks a service payload. Invalid payloads still answer
// 200; the verdict is in the body.
func (h *NormalizeHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var payload domain.ServicePayload
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, normalize.Validate(payload))
}

// HandleRate resolves the link rate of a raw station record
func (h *NormalizeHandler) HandleRate(w http.ResponseWriter, r *http.Request) {
	var raw domain.RawRecord
	if err := decodeBody(w, r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, normalize.ResolveRate(raw))
}
