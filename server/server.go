// Package server exposes the record service over HTTP and pushes collection
// change events to WebSocket clients.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/calder-labs/strand/config"
	"github.com/calder-labs/strand/errors"
	"github.com/calder-labs/strand/service"
)

const (
	// MaxClients caps concurrent WebSocket connections
	MaxClients = 64

	// ShutdownTimeout bounds the graceful shutdown drain
	ShutdownTimeout = 10 * time.Second
)

// Server owns the HTTP listener and the WebSocket hub. All client channel
// sends happen on the hub goroutine, which keeps the single-writer invariant
// for client send channels.
type Server struct {
	svc *service.Service
	cfg config.Server
	log *zap.SugaredLogger

	mu      sync.RWMutex
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	httpServer *http.Server

	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	broadcastDrops atomic.Int64
}

// New creates a server around svc
func New(svc *service.Service, cfg config.Server, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		svc:        svc,
		cfg:        cfg,
		log:        log.Named("server"),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run is the hub event loop. It owns all client channel sends.
func (s *Server) Run() {
	for {
		select {
		case <-s.ctx.Done():
			s.log.Debugw("Hub stopping due to context cancellation")
			return
		case client := <-s.register:
			s.handleClientRegister(client)
		case client := <-s.unregister:
			s.handleClientUnregister(client)
		case event := <-s.broadcast:
			s.handleBroadcast(event)
		}
	}
}

func (s *Server) handleClientRegister(client *Client) {
	s.mu.Lock()
	if len(s.clients) >= MaxClients {
		s.mu.Unlock()
		s.log.Warnw("Max clients reached, rejecting connection",
			"client_id", client.id,
			"max_clients", MaxClients,
		)
		client.close()
		return
	}
	s.clients[client] = true
	totalClients := len(s.clients)
	s.mu.Unlock()

	s.log.Infow("Client connected",
		"client_id", client.id,
		"total_clients", totalClients,
	)
}

func (s *Server) handleClientUnregister(client *Client) {
	s.mu.Lock()
	if _, ok := s.clients[client]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.clients, client)
	totalClients := len(s.clients)
	s.mu.Unlock()

	client.close()

	s.log.Infow("Client disconnected",
		"client_id", client.id,
		"total_clients", totalClients,
	)
}

// handleBroadcast fans an event out to every connected client. Clients whose
// send channel is full are evicted rather than allowed to stall the hub.
func (s *Server) handleBroadcast(event Event) {
	s.mu.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- event:
		default:
			s.broadcastDrops.Add(1)
			s.removeSlowClient(client)
		}
	}
}

// removeSlowClient drops a client that cannot keep up with broadcasts.
// Only called from the hub goroutine, so closing channels here is safe.
func (s *Server) removeSlowClient(client *Client) {
	s.mu.Lock()
	if _, ok := s.clients[client]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.clients, client)
	s.mu.Unlock()

	client.close()

	s.log.Warnw("Client send channel full, removing client",
		"client_id", client.id,
		"total_drops", s.broadcastDrops.Load(),
	)
}

// Start runs the hub and serves HTTP on the configured port. Blocks until the
// listener fails or Stop is called.
func (s *Server) Start() error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run()
	}()

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.setupHTTPRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.log.Infow("Server ready",
		"url", fmt.Sprintf("http://localhost:%d", s.cfg.Port),
		"port", s.cfg.Port,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}
	return nil
}

// Stop gracefully shuts down the listener, closes clients, and drains
// goroutines
func (s *Server) Stop() error {
	s.log.Infow("Initiating server shutdown")

	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warnw("HTTP shutdown error", "error", err)
		}
	}

	// Close connections before cancelling so read pumps unblock cleanly
	s.mu.Lock()
	clientsToClose := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clientsToClose = append(clientsToClose, client)
		delete(s.clients, client)
	}
	s.mu.Unlock()

	for _, client := range clientsToClose {
		client.conn.Close()
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Infow("All goroutines stopped cleanly")
	case <-time.After(ShutdownTimeout):
		s.log.Warnw("Goroutine shutdown timed out, forcing exit",
			"timeout", ShutdownTimeout,
		)
	}

	s.log.Infow("Server shutdown complete",
		"broadcast_drops", s.broadcastDrops.Load(),
	)
	return nil
}
