// Package server implements the connection acceptor and per-client
// registry: one net.Listener accept loop spawning one intake goroutine
// per connection, wiring each client through to the scheduler.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/nextlevelbuilder/shelld/internal/activitylog"
	"github.com/nextlevelbuilder/shelld/internal/intake"
	"github.com/nextlevelbuilder/shelld/internal/scheduler"
	"github.com/nextlevelbuilder/shelld/internal/wire"
)

// Server owns the client registry: a monotonically increasing client-ID
// counter and a map from client ID to its framed connection, guarded by
// one mutex (spec §5: "a separate mutex/counter issues monotonically
// increasing client IDs").
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*wire.Conn
	nextClientID int

	sched *scheduler.Scheduler
	log   *activitylog.Logger
}

// New builds a Server wired to sched and log.
func New(sched *scheduler.Scheduler, log *activitylog.Logger) *Server {
	return &Server{
		clients: make(map[int]*wire.Conn),
		sched:   sched,
		log:     log,
	}
}

// Start listens on addr and accepts connections until ctx is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				slog.Error("server: accept failed", "error", err)
				return err
			}
		}
		go s.handleConn(conn)
	}
}

// ClientCount reports the number of currently connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleConn(nc net.Conn) {
	wc := wire.NewConn(nc)
	id := s.registerClient(wc)
	defer s.unregisterClient(id)

	intake.Handle(id, wc, s.sched, s.log)
}

func (s *Server) registerClient(wc *wire.Conn) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextClientID++
	id := s.nextClientID
	s.clients[id] = wc
	return id
}

func (s *Server) unregisterClient(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}
