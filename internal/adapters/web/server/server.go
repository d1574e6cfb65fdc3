package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lcalzada-xor/wdash/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/wdash/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/wdash/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/wdash/internal/config"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options carries the collaborators of a Server.
type Options struct {
	Addr        string
	Version     string
	Site        string
	Inventory   ports.InventoryService
	Audit       ports.AuditService
	Persistence handlers.PersistenceToggle
	Exporter    handlers.ReportExporter
	Auth        config.AuthConfig
	Web         config.WebConfig
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr string
	Auth config.AuthConfig

	WSManager        *websocket.WSManager
	InventoryHandler *handlers.InventoryHandler
	NormalizeHandler *handlers.NormalizeHandler
	AuditHandler     *handlers.AuditHandler
	ReportHandler    *handlers.ReportHandler
	ConfigHandler    *handlers.ConfigHandler
	ExportHandler    *handlers.ExportHandler
	HealthHandler    *handlers.HealthHandler

	mutationLimiter *middleware.RateLimiter
	srv             *http.Server
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	ws := websocket.NewWSManager(opts.Inventory, opts.Web.BroadcastInterval, opts.Web.AllowedOrigins)

	perMinute := opts.Web.MutationsPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	return &Server{
		Addr: opts.Addr,
		Auth: opts.Auth,

		WSManager:        ws,
		InventoryHandler: handlers.NewInventoryHandler(opts.Inventory, ws),
		NormalizeHandler: handlers.NewNormalizeHandler(),
		AuditHandler:     handlers.NewAuditHandler(opts.Audit),
		ReportHandler:    handlers.NewReportHandler(opts.Inventory, opts.Audit, opts.Exporter, opts.Site),
		ConfigHandler:    handlers.NewConfigHandler(opts.Persistence, opts.Audit),
		ExportHandler:    handlers.NewExportHandler(opts.Inventory),
		HealthHandler:    handlers.NewHealthHandler(opts.Version),

		mutationLimiter: middleware.NewRateLimiter(perMinute, time.Minute),
	}
}

// Run starts the server and the broadcaster. It returns once ctx is
// cancelled and in-flight requests have drained.
func (s *Server) Run(ctx context.Context) error {
	s.WSManager.Start(ctx)
	s.mutationLimiter.StartCleanup(ctx, time.Minute)

	handler := SetupRoutes(s)

	// "wdash-server" is the name of the operation (span)
	instrumentedHandler := otelhttp.NewHandler(handler, "wdash-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("web server shutdown error", "error", err)
		}
	}()

	slog.Info("web server listening", "addr", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
