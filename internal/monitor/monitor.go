// Package monitor implements a read-only admin dashboard: a WebSocket
// endpoint that broadcasts the server's activity-log lines as they are
// written, without ever influencing scheduling or client-facing behavior.
// It is grounded on the teacher's gateway Server/Client/BroadcastEvent
// shape (internal/gateway/server.go), ported from chat events to
// scheduler/timeline events.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Dashboard is an io.Writer: wiring it into activitylog.New via
// io.MultiWriter(os.Stdout, dashboard) makes every fixed-schema log line
// also reach connected dashboard clients in real time.
type Dashboard struct {
	mu       sync.Mutex
	clients  map[uuid.UUID]*websocket.Conn
	upgrader websocket.Upgrader
}

// New builds an empty Dashboard.
func New() *Dashboard {
	return &Dashboard{
		clients: make(map[uuid.UUID]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades a connection to a WebSocket and registers it under a
// fresh correlation ID. The connection is otherwise passive: the only
// reads are to detect the peer closing.
func (d *Dashboard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("monitor: upgrade failed", "error", err)
		return
	}
	id := uuid.New()
	d.mu.Lock()
	d.clients[id] = conn
	d.mu.Unlock()
	slog.Info("monitor: dashboard connected", "id", id)

	defer func() {
		d.mu.Lock()
		delete(d.clients, id)
		d.mu.Unlock()
		conn.Close()
		slog.Info("monitor: dashboard disconnected", "id", id)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Write broadcasts p to every connected dashboard client as a text
// message, dropping any client whose send fails.
func (d *Dashboard) Write(p []byte) (int, error) {
	msg := append([]byte(nil), p...)
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, conn := range d.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(d.clients, id)
		}
	}
	return len(p), nil
}

// Serve runs the dashboard's HTTP/WebSocket endpoint on addr until ctx is
// canceled.
func (d *Dashboard) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", d.ServeHTTP)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
