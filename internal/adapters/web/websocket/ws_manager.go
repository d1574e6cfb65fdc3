// Package websocket pushes live station rates and service updates to
// connected dashboards.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/services/audit"
)

const writeWait = 5 * time.Second

// StationSource supplies the most recent station list.
type StationSource interface {
	LastStations() []domain.Station
}

type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type client struct {
	user string
	mu   sync.Mutex
}

type WSManager struct {
	Source   StationSource
	Interval time.Duration

	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]*client
	mu       sync.Mutex
}

// NewWSManager creates a manager that accepts the given browser origins.
// Requests without an Origin header are always accepted.
func NewWSManager(source StationSource, interval time.Duration, allowedOrigins []string) *WSManager {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &WSManager{
		Source:   source,
		Interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				slog.Warn("websocket origin rejected", "origin", origin)
				return false
			},
		},
		clients: make(map[*websocket.Conn]*client),
	}
}

func (m *WSManager) Start(ctx context.Context) {
	go m.processAndBroadcast(ctx)
}

// ClientCount returns the number of connected dashboards.
func (m *WSManager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	user := audit.ActorFrom(r.Context()).Username

	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", "error", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = &client{user: user}
	m.mu.Unlock()
	slog.Info("websocket connected", "user", user, "remote", r.RemoteAddr)

	// Send the current view straight away instead of waiting a full tick.
	m.sendTo(conn, m.stationsMessage())

	go func() {
		defer m.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (m *WSManager) processAndBroadcast(ctx context.Context) {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-ticker.C:
			if m.ClientCount() > 0 {
				m.broadcastMessage(m.stationsMessage())
			}
		}
	}
}

func (m *WSManager) stationsMessage() WSMessage {
	stations := m.Source.LastStations()
	if stations == nil {
		stations = []domain.Station{}
	}
	return WSMessage{Type: "stations", Payload: stations}
}

// NotifyServiceUpdated tells dashboards a service's security changed.
func (m *WSManager) NotifyServiceUpdated(id string, profile domain.SecurityProfile) {
	m.broadcastMessage(WSMessage{
		Type: "service.updated",
		Payload: map[string]any{
			"id":       id,
			"security": profile,
		},
	})
}

func (m *WSManager) broadcastMessage(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal failed", "type", msg.Type, "error", err)
		return
	}

	m.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(m.clients))
	for conn := range m.clients {
		conns = append(conns, conn)
	}
	m.mu.Unlock()

	for _, conn := range conns {
		m.write(conn, data)
	}
}

func (m *WSManager) sendTo(conn *websocket.Conn, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal failed", "type", msg.Type, "error", err)
		return
	}
	m.write(conn, data)
}

// write serialises writers per connection; gorilla connections allow a
// single concurrent writer.
func (m *WSManager) write(conn *websocket.Conn, data []byte) {
	m.mu.Lock()
	c, ok := m.clients[conn]
	m.mu.Unlock()
	if !ok {
		return
	}

	c.mu.Lock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.WriteMessage(websocket.TextMessage, data)
	c.mu.Unlock()
	if err != nil {
		m.remove(conn)
	}
}

func (m *WSManager) remove(conn *websocket.Conn) {
	m.mu.Lock()
	c, ok := m.clients[conn]
	delete(m.clients, conn)
	m.mu.Unlock()
	if ok {
		conn.Close()
		slog.Info("websocket disconnected", "user", c.user)
	}
}

func (m *WSManager) closeAll() {
	m.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(m.clients))
	for conn := range m.clients {
		conns = append(conns, conn)
	}
	m.mu.Unlock()
	for _, conn := range conns {
		m.remove(conn)
	}
}
