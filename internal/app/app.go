package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/grpc"

	"github.com/lcalzada-xor/wdash/internal/adapters/controller"
	"github.com/lcalzada-xor/wdash/internal/adapters/fingerprint"
	"github.com/lcalzada-xor/wdash/internal/adapters/reporting"
	"github.com/lcalzada-xor/wdash/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/wdash/internal/adapters/web/server"
	"github.com/lcalzada-xor/wdash/internal/config"
	"github.com/lcalzada-xor/wdash/internal/core/services/audit"
	grpcserver "github.com/lcalzada-xor/wdash/internal/core/services/grpc"
	"github.com/lcalzada-xor/wdash/internal/core/services/inventory"
	"github.com/lcalzada-xor/wdash/internal/core/services/persistence"
	"github.com/lcalzada-xor/wdash/internal/mock"
)

const (
	shutdownTimeout   = 5 * time.Second
	vendorCacheSize   = 20000
	snapshotQueueSize = 10000
	pruneInterval     = time.Hour
	mockTick          = 5 * time.Second
)

// Application holds the core components of the application.
// It acts as the Facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config  *config.Config
	Version string

	Store           *storage.SQLiteAdapter
	Vendors         *fingerprint.Resolver
	Recorder        *persistence.Recorder
	AuditService    *audit.AuditService
	Inventory       *inventory.Service
	WebServer       *webserver.Server
	GrpcServer      *grpc.Server
	Health          *grpcserver.HealthReporter
	MockIntegration *mock.Integration
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config, version string) (*Application, error) {
	app := &Application{
		Config:  cfg,
		Version: version,
	}

	if err := app.bootstrap(); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	// 1. Foundation & Infrastructure
	store, err := app.initStorage()
	if err != nil {
		return err
	}
	app.Store = store
	app.Vendors = app.initVendors()

	// 2. Controller link
	client, err := app.initController()
	if err != nil {
		return err
	}

	// 3. Domain Services
	app.Recorder = persistence.NewRecorder(store, snapshotQueueSize)
	app.Recorder.SetEnabled(app.Config.PersistSnapshots)
	app.AuditService = audit.NewAuditService(store)
	app.Inventory = inventory.NewService(inventory.Deps{
		Controller: client,
		Vendors:    app.Vendors,
		Snapshots:  store,
		Recorder:   app.Recorder,
		Audit:      app.AuditService,
	})

	// 4. Servers
	app.WebServer = webserver.NewServer(webserver.Options{
		Addr:        app.Config.Addr,
		Version:     app.Version,
		Site:        app.Config.Controller.Site,
		Inventory:   app.Inventory,
		Audit:       app.AuditService,
		Persistence: app.Recorder,
		Exporter:    reporting.NewPDFExporter(),
		Auth:        app.Config.Auth,
		Web:         app.Config.Web,
	})
	if !app.Config.AuthEnabled() {
		slog.Warn("basic auth disabled: no admin password hash configured")
	}

	if app.Config.GRPCPort > 0 {
		app.GrpcServer, app.Health = grpcserver.NewGrpcServer()
	}
	return nil
}

func (app *Application) initStorage() (*storage.SQLiteAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init system storage: %w", err)
	}
	return store, nil
}

// initVendors falls back to the built-in prefixes when the OUI file is unusable.
func (app *Application) initVendors() *fingerprint.Resolver {
	resolver, err := fingerprint.NewDefaultResolver(app.Config.OUIFile, vendorCacheSize)
	if err == nil {
		return resolver
	}
	slog.Warn("failed to load OUI file, using built-in vendors", "path", app.Config.OUIFile, "error", err)
	resolver, _ = fingerprint.NewDefaultResolver("", vendorCacheSize)
	return resolver
}

func (app *Application) initController() (*controller.Client, error) {
	cc := app.Config.Controller
	baseURL := cc.BaseURL

	if app.Config.MockMode {
		fake := mock.NewController(app.Config.MockScenario, app.Config.MockSeed, cc.APIToken)
		integration, err := mock.StartIntegration(fake, mockTick)
		if err != nil {
			return nil, err
		}
		app.MockIntegration = integration
		baseURL = integration.URL()
		slog.Info("Mock Mode Active: serving synthetic controller data", "scenario", app.Config.MockScenario)
	}

	client, err := controller.New(controller.Options{
		BaseURL:           baseURL,
		Site:              cc.Site,
		Token:             cc.APIToken,
		Timeout:           cc.Timeout,
		RequestsPerSecond: cc.RequestsPerSecond,
		Burst:             cc.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("controller client: %w", err)
	}
	return client, nil
}

// Run starts the application components and manages their execution lifecycle.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting wdash components...", "version", app.Version)

	// Server failures stop the loops too, before cleanup closes their resources.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 1. Auxiliary Loops
	app.Recorder.Start(ctx)
	var loops sync.WaitGroup
	loops.Add(2)
	go func() {
		defer loops.Done()
		app.runPollLoop(ctx)
	}()
	go func() {
		defer loops.Done()
		app.runPruneLoop(ctx)
	}()

	// 2. Servers
	errChan := make(chan error, 2)

	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	if app.GrpcServer != nil {
		go func() {
			lis, err := net.Listen("tcp", fmt.Sprintf(":%d", app.Config.GRPCPort))
			if err != nil {
				errChan <- fmt.Errorf("grpc listen error: %w", err)
				return
			}
			slog.Info("gRPC health server listening", "port", app.Config.GRPCPort)

			go func() {
				<-ctx.Done()
				app.Health.Shutdown()
				app.GrpcServer.GracefulStop()
			}()

			if err := app.GrpcServer.Serve(lis); err != nil {
				errChan <- fmt.Errorf("grpc server error: %w", err)
			}
		}()
	}

	slog.Info("wdash ready. Press Ctrl+C to terminate.")

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case runErr = <-errChan:
		slog.Error("server failed, shutting down", "error", runErr)
	}

	cancel()
	stopped := make(chan struct{})
	go func() {
		loops.Wait()
		<-app.Recorder.Done()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(shutdownTimeout):
		slog.Warn("background loops did not stop in time")
	}

	return errors.Join(runErr, app.cleanup())
}

// runPollLoop refreshes stations so the websocket feed and snapshot history
// stay current, and reports controller reachability to the health server.
func (app *Application) runPollLoop(ctx context.Context) {
	ticker := time.NewTicker(app.Config.PollInterval)
	defer ticker.Stop()

	for {
		app.poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (app *Application) poll(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, app.Config.PollInterval)
	defer cancel()

	stations, err := app.Inventory.ListStations(pollCtx)
	if app.Health != nil {
		app.Health.SetControllerReachable(err == nil)
	}
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("station poll failed", "error", err)
		}
		return
	}
	slog.Debug("stations polled", "count", len(stations))
}

func (app *Application) runPruneLoop(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-app.Config.SnapshotRetention)
			n, err := app.Store.PruneSnapshots(ctx, cutoff)
			if err != nil {
				slog.Error("snapshot prune failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("pruned rate snapshots", "count", n, "before", cutoff)
			}
		}
	}
}

func (app *Application) cleanup() error {
	slog.Info("Cleaning up resources...")
	var errs []error

	if app.MockIntegration != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		errs = append(errs, app.MockIntegration.Stop(ctx))
		cancel()
	}
	if app.Vendors != nil {
		errs = append(errs, app.Vendors.Close())
	}
	if app.Store != nil {
		errs = append(errs, app.Store.Close())
	}
	return errors.Join(errs...)
}
