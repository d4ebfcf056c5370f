package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dbehnke/trunkcore/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerConfig configures the metrics HTTP server (mirrors
// config.MetricsConfig, §9.3).
type ServerConfig struct {
	Enabled bool
	Address string
	Path    string
}

// PrometheusServer serves a Collector's registry over HTTP using the real
// promhttp.Handler, replacing the teacher's hand-rolled text exposition.
type PrometheusServer struct {
	config    ServerConfig
	collector *Collector
	log       *logger.Logger
	server    *http.Server
}

// NewPrometheusServer builds a metrics HTTP server for collector.
func NewPrometheusServer(config ServerConfig, collector *Collector, log *logger.Logger) *PrometheusServer {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}
	return &PrometheusServer{
		config:    config,
		collector: collector,
		log:       log.WithComponent("metrics"),
	}
}

// Start runs the metrics server until ctx is cancelled.
func (s *PrometheusServer) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("metrics server disabled")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(s.config.Path, promhttp.HandlerFor(s.collector.Registry(), promhttp.HandlerOpts{}))

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address, err)
	}

	s.server = &http.Server{Handler: mux}

	s.log.Info("starting metrics server",
		logger.String("address", listener.Addr().String()),
		logger.String("path", s.config.Path))

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown error: %w", err)
		}
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// Stop shuts the metrics server down immediately.
func (s *PrometheusServer) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}
}
