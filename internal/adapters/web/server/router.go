package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/wdash/internal/adapters/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logger)

	// Public
	r.HandleFunc("/api/health", s.HealthHandler.HandleHealth).Methods(http.MethodGet)

	// Everything else requires credentials when a password hash is configured.
	api := r.NewRoute().Subrouter()
	api.Use(middleware.BasicAuthMiddleware(s.Auth.Username, s.Auth.PasswordHash))

	limited := middleware.RateLimitMiddleware(s.mutationLimiter)
	mutate := func(h http.HandlerFunc) http.Handler {
		return limited(h)
	}

	// Inventory
	api.HandleFunc("/api/services", s.InventoryHandler.HandleListServices).Methods(http.MethodGet)
	api.HandleFunc("/api/services/{id}", s.InventoryHandler.HandleGetService).Methods(http.MethodGet)
	api.Handle("/api/services/{id}/security", mutate(s.InventoryHandler.HandleUpdateSecurity)).Methods(http.MethodPut)
	api.HandleFunc("/api/stations", s.InventoryHandler.HandleListStations).Methods(http.MethodGet)
	api.HandleFunc("/api/stations/{mac}/history", s.InventoryHandler.HandleRateHistory).Methods(http.MethodGet)

	// Stateless normalisation
	norm := api.PathPrefix("/api/normalize").Subrouter()
	norm.HandleFunc("/classify", s.NormalizeHandler.HandleClassify).Methods(http.MethodPost)
	norm.HandleFunc("/encode", s.NormalizeHandler.HandleEncode).Methods(http.MethodPost)
	norm.HandleFunc("/validate", s.NormalizeHandler.HandleValidate).Methods(http.MethodPost)
	norm.HandleFunc("/rate", s.NormalizeHandler.HandleRate).Methods(http.MethodPost)

	// Audit, reports and runtime config
	api.HandleFunc("/api/audit-logs", s.AuditHandler.HandleGetLogs).Methods(http.MethodGet)
	api.HandleFunc("/api/reports/security.pdf", s.ReportHandler.HandleSecurityReport).Methods(http.MethodGet)
	api.HandleFunc("/api/export", s.ExportHandler.HandleExport).Methods(http.MethodGet)
	api.HandleFunc("/api/config/persistence", s.ConfigHandler.HandleGetPersistence).Methods(http.MethodGet)
	api.Handle("/api/config/persistence", mutate(s.ConfigHandler.HandleSetPersistence)).Methods(http.MethodPut)

	api.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	api.HandleFunc("/ws", s.WSManager.HandleWebSocket)

	return r
}
