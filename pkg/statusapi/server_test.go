package statusapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dbehnke/trunkcore/pkg/config"
	"github.com/dbehnke/trunkcore/pkg/metrics"
)

func TestServer_DisabledDoesNothing(t *testing.T) {
	s := NewServer(config.RemoteControlConfig{Enabled: false}, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
}

func TestServer_ServesHealthAndStatus(t *testing.T) {
	collector := metrics.NewCollector()
	collector.UpdateDSPSnapshot(metrics.DSPSnapshot{CFOHz: 42})

	s := NewServer(config.RemoteControlConfig{Enabled: true, Address: "127.0.0.1:0"}, nil)
	s.WithMetrics(collector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Addr() == "" {
		t.Fatal("server did not bind in time")
	}

	resp, err := http.Get("http://" + s.Addr() + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body["dsp_snapshot"]; !ok {
		t.Fatalf("expected dsp_snapshot in status response: %+v", body)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
