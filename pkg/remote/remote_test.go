package remote

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dbehnke/trunkcore/pkg/config"
	"github.com/dbehnke/trunkcore/pkg/metrics"
)

type fakeRetuner struct {
	lastHz int64
	err    error
}

func (f *fakeRetuner) SetFrequency(hz int64) error {
	f.lastHz = hz
	return f.err
}

func TestListener_Disabled(t *testing.T) {
	l := NewListener(config.RemoteControlConfig{Enabled: false}, &fakeRetuner{}, nil, nil)
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
}

func TestListener_RetunesOnValidCommand(t *testing.T) {
	retuner := &fakeRetuner{}
	collector := metrics.NewCollector()
	l := NewListener(config.RemoteControlConfig{Enabled: true, Address: "127.0.0.1:0"}, retuner, collector, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		go func() {
			for l.conn == nil {
				time.Sleep(5 * time.Millisecond)
			}
			close(ready)
		}()
		errCh <- l.Start(ctx)
	}()

	<-ready
	addr := l.conn.LocalAddr().(*net.UDPAddr)

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("RETUNE 851125000\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for retuner.lastHz == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if retuner.lastHz != 851125000 {
		t.Fatalf("lastHz = %d, want 851125000", retuner.lastHz)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop in time")
	}
}

func TestHandleCommand_RejectsMalformed(t *testing.T) {
	l := NewListener(config.RemoteControlConfig{Enabled: true}, &fakeRetuner{}, nil, nil)
	if err := l.handleCommand([]byte("NOT A COMMAND")); err == nil {
		t.Fatal("expected rejection of malformed command")
	}
	if err := l.handleCommand([]byte("RETUNE notanumber")); err == nil {
		t.Fatal("expected rejection of non-numeric frequency")
	}
}
