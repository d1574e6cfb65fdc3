package app

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/lcalzada-xor/wdash/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.MockMode = true
	cfg.MockScenario = "minimal"
	cfg.DBPath = filepath.Join(t.TempDir(), "wdash.db")
	cfg.Addr = "127.0.0.1:0"
	cfg.GRPCPort = 0
	return cfg
}

func TestNew_MockModeWiresInventory(t *testing.T) {
	application, err := New(mockConfig(t), "test")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, application.cleanup()) })

	assert.NotNil(t, application.MockIntegration)
	assert.Nil(t, application.GrpcServer)
	assert.True(t, application.Recorder.IsEnabled())

	ctx := context.Background()
	services, err := application.Inventory.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 14)

	application.poll(ctx)
	assert.Len(t, application.Inventory.LastStations(), 4)
}

func TestNew_PersistenceDisabledByConfig(t *testing.T) {
	cfg := mockConfig(t)
	cfg.PersistSnapshots = false

	application, err := New(cfg, "test")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, application.cleanup()) })

	assert.False(t, application.Recorder.IsEnabled())
	application.Recorder.SetEnabled(true)
	assert.True(t, application.Recorder.IsEnabled())
}

func TestNew_FailsOnBadControllerURL(t *testing.T) {
	cfg := mockConfig(t)
	cfg.MockMode = false
	cfg.Controller.BaseURL = "not a url"

	_, err := New(cfg, "test")
	assert.ErrorContains(t, err, "controller client")
}

func TestRun_StopsOnCancel(t *testing.T) {
	application, err := New(mockConfig(t), "test")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

func TestRun_ServerFailureStopsLoops(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { busy.Close() })

	cfg := mockConfig(t)
	cfg.Addr = busy.Addr().String()
	application, err := New(cfg, "test")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- application.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "web server error")
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after the web server failed")
	}

	select {
	case <-application.Recorder.Done():
	default:
		t.Fatal("recorder still running after Run returned")
	}
}
