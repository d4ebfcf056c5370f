// Package remote implements the decoder's remote-control UDP listener
// (§6's remote_control config section / §9.7): a minimal text-command
// protocol, "RETUNE <freq_hz>", that an operator or an external scanner
// controller can send to steer the SDR front-end without a full RPC
// surface.
package remote

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/dbehnke/trunkcore/pkg/config"
	"github.com/dbehnke/trunkcore/pkg/logger"
	"github.com/dbehnke/trunkcore/pkg/metrics"
)

// Retuner is the collaborator a RETUNE command drives — satisfied by the
// IQ source's SetFrequency (§6's IQ source contract).
type Retuner interface {
	SetFrequency(hz int64) error
}

// Listener is the remote-control UDP server: receive datagrams,
// parse "RETUNE <freq_hz>\n", retune, count ingress via metrics.Collector.
type Listener struct {
	cfg     config.RemoteControlConfig
	log     *logger.Logger
	metrics *metrics.Collector
	retuner Retuner
	conn    *net.UDPConn
}

// NewListener builds a remote-control listener. metrics may be nil to
// skip counting (e.g. in unit tests that don't care about it).
func NewListener(cfg config.RemoteControlConfig, retuner Retuner, m *metrics.Collector, log *logger.Logger) *Listener {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}
	return &Listener{cfg: cfg, log: log.WithComponent("remote"), metrics: m, retuner: retuner}
}

// Start runs the UDP receive loop until ctx is cancelled. No-ops if
// disabled.
func (l *Listener) Start(ctx context.Context) error {
	if !l.cfg.Enabled {
		l.log.Info("remote control disabled")
		return nil
	}

	addr, err := net.ResolveUDPAddr("udp", l.cfg.Address)
	if err != nil {
		return fmt.Errorf("remote: resolve %s: %w", l.cfg.Address, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("remote: listen on %s: %w", l.cfg.Address, err)
	}
	l.conn = conn
	defer conn.Close()

	l.log.Info("remote control listening", logger.String("address", conn.LocalAddr().String()))

	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			l.log.Error("remote control read error", logger.Error(err))
			continue
		}

		if l.metrics != nil {
			l.metrics.UDPPacketIn(n)
		}
		if err := l.handleCommand(buf[:n]); err != nil {
			l.log.Warn("remote control command rejected", logger.Error(err))
			if l.metrics != nil {
				l.metrics.UDPDrop()
			}
		}
	}
}

func (l *Listener) handleCommand(data []byte) error {
	line := strings.TrimSpace(string(data))
	fields := strings.Fields(line)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "RETUNE") {
		return fmt.Errorf("remote: malformed command %q", line)
	}

	hz, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("remote: invalid frequency %q: %w", fields[1], err)
	}

	if l.retuner == nil {
		return fmt.Errorf("remote: no retuner configured")
	}
	if err := l.retuner.SetFrequency(hz); err != nil {
		return fmt.Errorf("remote: retune failed: %w", err)
	}
	l.log.Info("retuned via remote control", logger.Int64("freq_hz", hz))
	return nil
}
