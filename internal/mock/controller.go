package mock

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// Controller serves the controller REST API from generated data. Service
// lists use the {"data": [...]} envelope and station lists a bare array, so
// both response shapes get exercised.
type Controller struct {
	token     string
	generator *Generator

	mu       sync.RWMutex
	services []map[string]any
	stations []map[string]any
	router   *mux.Router
}

// NewController builds a controller for a scenario. An empty token disables
// the bearer check.
func NewController(scenario string, seed int64, token string) *Controller {
	gen := NewGenerator(seed)
	numServices, numStations := ScenarioSize(scenario)
	services := gen.Services(numServices)

	ssids := make([]string, 0, len(services))
	for _, s := range services {
		ssids = append(ssids, s["ssid"].(string))
	}

	c := &Controller{
		token:     token,
		generator: gen,
		services:  services,
		stations:  gen.Stations(numStations, ssids),
	}
	c.router = c.routes()
	return c
}

func (c *Controller) routes() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1/sites/{site}/wireless").Subrouter()
	api.Use(c.authenticate)
	api.HandleFunc("/services", c.handleListServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", c.handleGetService).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", c.handleUpdateService).Methods(http.MethodPut)
	api.HandleFunc("/stations", c.handleListStations).Methods(http.MethodGet)
	return r
}

// ServeHTTP implements http.Handler.
func (c *Controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.router.ServeHTTP(w, r)
}

// Run advances station counters every interval until ctx is done.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			c.generator.Advance(c.stations, int(interval.Seconds()))
			c.mu.Unlock()
		}
	}
}

// Service returns a copy of the stored record for id.
func (c *Controller) Service(id string) (map[string]any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.services {
		if s["id"] == id {
			return clone(s), true
		}
	}
	return nil, false
}

func (c *Controller) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.token != "" && r.Header.Get("Authorization") != "Bearer "+c.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Controller) handleListServices(w http.ResponseWriter, _ *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": c.services})
}

func (c *Controller) handleGetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.Service(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "service not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": svc})
}

// handleUpdateService replaces the stored record with the submitted payload,
// the way the controller discards privacy shapes it no longer uses.
func (c *Controller) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.services {
		if s["id"] != id {
			continue
		}
		payload["id"] = id
		c.services[i] = payload
		slog.Debug("mock controller service updated", "id", id)
		writeJSON(w, http.StatusOK, map[string]any{"data": payload})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "service not found"})
}

func (c *Controller) handleListStations(w http.ResponseWriter, _ *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	writeJSON(w, http.StatusOK, c.stations)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("mock controller encode failed", "error", err)
	}
}

func clone(m map[string]any) map[string]any {
	data, _ := json.Marshal(m)
	var out map[string]any
	_ = json.Unmarshal(data, &out)
	return out
}
