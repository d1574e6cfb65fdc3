package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestInventoryHandler_ListServices(t *testing.T) {
	inv := new(MockInventory)
	h := NewInventoryHandler(inv, nil)

	inv.On("ListServices", mock.Anything).Return([]domain.WirelessService{
		{ID: "1", Name: "corp", SSID: "corp", Enabled: true, Profile: domain.NewSecurityProfile(domain.KindWPASAE), MatchedRule: "sae-element"},
	}, nil)

	w := httptest.NewRecorder()
	h.HandleListServices(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"matched_rule":"sae-element"`)
	assert.Contains(t, w.Body.String(), "WPA3-Personal")
}

func TestInventoryHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("service 9: %w", domain.ErrServiceNotFound), http.StatusNotFound},
		{"validation", &domain.ValidationError{Errors: []string{"ssid is required"}}, http.StatusBadRequest},
		{"unencodable", fmt.Errorf("%w: SecuredUnknown", domain.ErrUnencodableProfile), http.StatusBadRequest},
		{"passphrase", domain.ErrPassphraseRequired, http.StatusBadRequest},
		{"controller down", errors.New("connection refused"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := new(MockInventory)
			h := NewInventoryHandler(inv, nil)
			inv.On("GetService", mock.Anything, "9").Return(domain.WirelessService{}, tt.err)

			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/services/9", nil), map[string]string{"id": "9"})
			w := httptest.NewRecorder()
			h.HandleGetService(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestInventoryHandler_ValidationErrorListsChecks(t *testing.T) {
	inv := new(MockInventory)
	h := NewInventoryHandler(inv, nil)
	inv.On("UpdateSecurity", mock.Anything, "1", mock.Anything).
		Return(domain.SecurityProfile{}, &domain.ValidationError{Errors: []string{"name is required", "ssid is required"}})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/api/services/1/security", strings.NewReader(`{}`)), map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	h.HandleUpdateSecurity(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, decode(t, w)["errors"], 2)
}

func TestInventoryHandler_UpdateSecurity(t *testing.T) {
	inv := new(MockInventory)
	notifier := &recordingNotifier{}
	h := NewInventoryHandler(inv, notifier)

	written := domain.NewSecurityProfile(domain.KindWPASAE)
	inv.On("UpdateSecurity", mock.Anything, "7", mock.MatchedBy(func(e domain.SecurityEdit) bool {
		return e.Kind != nil && *e.Kind == domain.KindWPASAE && e.Passphrase != nil && *e.Passphrase == "correct horse"
	})).Return(written, nil)

	body := `{"kind":"wpa-sae","passphrase":"correct horse"}`
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/api/services/7/security", strings.NewReader(body)), map[string]string{"id": "7"})
	w := httptest.NewRecorder()
	h.HandleUpdateSecurity(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", decode(t, w)["id"])
	assert.Equal(t, []string{"7"}, notifier.ids)
	inv.AssertExpectations(t)
}

func TestInventoryHandler_UpdateSecurityRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
	}{
		{"malformed", "1", `{"kind":`},
		{"unknown kind", "1", `{"kind":"WEP"}`},
		{"bad id", "1;drop", `{"kind":"Open"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := new(MockInventory)
			h := NewInventoryHandler(inv, nil)

			req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/api/services/1/security", strings.NewReader(tt.body)), map[string]string{"id": tt.id})
			w := httptest.NewRecorder()
			h.HandleUpdateSecurity(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			inv.AssertNotCalled(t, "UpdateSecurity", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestInventoryHandler_Stations(t *testing.T) {
	inv := new(MockInventory)
	h := NewInventoryHandler(inv, nil)

	live := []domain.Station{{MAC: "AA:BB:CC:00:00:01", Rate: domain.RateSample{DownlinkBps: 1e6}}}
	cached := []domain.Station{{MAC: "AA:BB:CC:00:00:02"}}
	inv.On("ListStations", mock.Anything).Return(live, nil)
	inv.On("LastStations").Return(cached)

	w := httptest.NewRecorder()
	h.HandleListStations(w, httptest.NewRequest(http.MethodGet, "/api/stations", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AA:BB:CC:00:00:01")

	w = httptest.NewRecorder()
	h.HandleListStations(w, httptest.NewRequest(http.MethodGet, "/api/stations?cached=true", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AA:BB:CC:00:00:02")
	inv.AssertNumberOfCalls(t, "ListStations", 1)
}

func TestInventoryHandler_RateHistory(t *testing.T) {
	inv := new(MockInventory)
	h := NewInventoryHandler(inv, nil)
	inv.On("RateHistory", mock.Anything, "AA:BB:CC:00:00:01", 5).Return([]domain.RateSnapshot{{MAC: "AA:BB:CC:00:00:01"}}, nil)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/stations/AA:BB:CC:00:00:01/history?limit=5", nil),
		map[string]string{"mac": "AA:BB:CC:00:00:01"})
	w := httptest.NewRecorder()
	h.HandleRateHistory(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["history"], 1)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/stations/nope/history", nil), map[string]string{"mac": "nope"})
	w = httptest.NewRecorder()
	h.HandleRateHistory(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
