package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestPrometheusServer_ServesRegisteredMetrics(t *testing.T) {
	collector := NewCollector()
	collector.FECOK("bptc196")
	collector.UDPPacketIn(1024)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{}))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	for _, want := range []string{"fec_ok_total", "udp_in_packets_total", "udp_in_bytes_total"} {
		if !strings.Contains(bodyStr, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}

func TestPrometheusServer_StartStop(t *testing.T) {
	collector := NewCollector()
	config := ServerConfig{Enabled: true, Address: "127.0.0.1:0", Path: "/metrics"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := NewPrometheusServer(config, collector, nil)

	errChan := make(chan error, 1)
	go func() { errChan <- server.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		if err != nil && err != context.Canceled && err != http.ErrServerClosed {
			t.Errorf("unexpected error from server: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("server did not stop in time")
	}
}

func TestPrometheusServer_Disabled(t *testing.T) {
	collector := NewCollector()
	config := ServerConfig{Enabled: false}

	server := NewPrometheusServer(config, collector, nil)
	if err := server.Start(context.Background()); err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
}
