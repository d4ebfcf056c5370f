package statusapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dbehnke/trunkcore/pkg/config"
	"github.com/dbehnke/trunkcore/pkg/logger"
	"github.com/dbehnke/trunkcore/pkg/metrics"
	"github.com/dbehnke/trunkcore/pkg/trunk"
)

// StateProvider is the trunking state this server reports; satisfied by
// *trunk.StateMachine.
type StateProvider interface {
	State() trunk.State
}

// MetricsProvider is the DSP snapshot this server reports; satisfied by
// *metrics.Collector.
type MetricsProvider interface {
	SnapshotMetrics() metrics.DSPSnapshot
}

// Server is the decoder's read-only status HTTP+websocket surface (§9.7):
// no control endpoints, no frontend bundle — status and metrics only.
type Server struct {
	cfg    config.RemoteControlConfig
	log    *logger.Logger
	hub    *Hub
	server *http.Server

	mu      sync.RWMutex
	addr    string
	sm      StateProvider
	metrics MetricsProvider
}

// NewServer builds a status server. sm/metrics may be nil until WithState/
// WithMetrics are called (e.g. before the trunking SM exists yet).
func NewServer(cfg config.RemoteControlConfig, log *logger.Logger) *Server {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}
	return &Server{cfg: cfg, log: log.WithComponent("statusapi"), hub: NewHub(log)}
}

// WithState injects the trunking state machine to report on /api/status.
func (s *Server) WithState(sm StateProvider) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sm = sm
	return s
}

// WithMetrics injects the metrics collector to report on /api/status.
func (s *Server) WithMetrics(m MetricsProvider) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m
	return s
}

// Hub returns the websocket hub for wiring a trunk.Hooks adapter.
func (s *Server) Hub() *Hub { return s.hub }

// Start runs the HTTP server until ctx is cancelled. No-ops if disabled.
func (s *Server) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.log.Info("status API disabled")
		return nil
	}

	go s.hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.Handle("/ws", s.hub.Handler())

	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("status API: failed to listen on %s: %w", s.cfg.Address, err)
	}

	s.mu.Lock()
	s.addr = listener.Addr().String()
	s.mu.Unlock()

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("starting status API", logger.String("address", s.addr))

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down status API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("status API shutdown error: %w", err)
		}
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// Addr returns the address the server actually bound to (useful with
// Address ":0" in tests).
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	sm, m := s.sm, s.metrics
	s.mu.RUnlock()

	body := map[string]interface{}{
		"clients": s.hub.ClientCount(),
	}
	if sm != nil {
		body["trunk_state"] = sm.State().String()
	}
	if m != nil {
		body["dsp_snapshot"] = m.SnapshotMetrics()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("failed to encode status response", logger.Error(err))
	}
}
