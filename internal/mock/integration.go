package mock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Integration runs a Controller on a loopback listener so the real HTTP
// client can be pointed at it.
type Integration struct {
	controller *Controller
	server     *http.Server
	listener   net.Listener
	cancel     context.CancelFunc
}

// StartIntegration listens on an ephemeral loopback port and serves c.
func StartIntegration(c *Controller, tick time.Duration) (*Integration, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("mock controller listen: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Integration{
		controller: c,
		server:     &http.Server{Handler: c, ReadHeaderTimeout: 5 * time.Second},
		listener:   ln,
		cancel:     cancel,
	}

	go func() {
		if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("mock controller stopped", "error", err)
		}
	}()
	if tick > 0 {
		go c.Run(ctx, tick)
	}

	slog.Info("Mock controller started", "url", m.URL())
	return m, nil
}

// URL is the base URL to configure the controller client with.
func (m *Integration) URL() string {
	return "http://" + m.listener.Addr().String()
}

// Stop shuts the server down.
func (m *Integration) Stop(ctx context.Context) error {
	m.cancel()
	return m.server.Shutdown(ctx)
}
