// Package metrics exposes the decoder's counters (§7) via
// github.com/prometheus/client_golang, replacing the teacher's hand-rolled
// text exposition with real prometheus.Counter/CounterVec collectors
// registered on a private prometheus.Registry. The DSP snapshot (§4.1) is
// held in-process and is not exported to Prometheus.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the decoder's live counters (FEC outcomes per layer, UDP
// ingress stats) and the latest DSP snapshot_metrics fields (§4.1).
type Collector struct {
	registry *prometheus.Registry

	fecOK   *prometheus.CounterVec
	fecErr  *prometheus.CounterVec
	fecCorr *prometheus.CounterVec

	udpInPackets prometheus.Counter
	udpInBytes   prometheus.Counter
	udpInDrops   prometheus.Counter

	mu   sync.RWMutex
	snap DSPSnapshot
}

// DSPSnapshot mirrors spec.md's snapshot_metrics() shape: the DSP thread's
// instantaneous tracking state. The Collector keeps it behind an RWMutex;
// SnapshotMetrics returns a copy under a read lock. It is not exported to
// Prometheus.
type DSPSnapshot struct {
	CFOHz            float64
	ResidualCFOHz    float64
	SNRdBPerFamily   map[string]float64
	TEDBiasQ20       int32
	CarrierLocked    bool
	CostasErrQ14     int32
	NCOQ15           int32
}

// NewCollector builds a Collector with its own private registry so multiple
// Collectors (e.g. in tests) never collide on prometheus's default
// registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		fecOK: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fec_ok_total",
			Help: "FEC blocks decoded with no errors, by layer.",
		}, []string{"layer"}),
		fecErr: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fec_err_total",
			Help: "FEC blocks that failed to decode, by layer.",
		}, []string{"layer"}),
		fecCorr: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fec_corrected_total",
			Help: "FEC blocks decoded with corrected errors, by layer.",
		}, []string{"layer"}),
		udpInPackets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "udp_in_packets_total",
			Help: "UDP packets received on the remote-control listener.",
		}),
		udpInBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "udp_in_bytes_total",
			Help: "UDP bytes received on the remote-control listener.",
		}),
		udpInDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "udp_in_drops_total",
			Help: "UDP packets dropped (malformed or over capacity).",
		}),
		snap: DSPSnapshot{SNRdBPerFamily: make(map[string]float64)},
	}
	c.registry.MustRegister(c.fecOK, c.fecErr, c.fecCorr, c.udpInPackets, c.udpInBytes, c.udpInDrops)
	return c
}

// Registry returns the private prometheus.Registry backing this Collector,
// for wiring into an HTTP handler.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// FECOK records a clean decode on the named layer (e.g. "bptc196", "rs63_35").
func (c *Collector) FECOK(layer string) { c.fecOK.WithLabelValues(layer).Inc() }

// FECErr records an irrecoverable decode failure on the named layer.
func (c *Collector) FECErr(layer string) { c.fecErr.WithLabelValues(layer).Inc() }

// FECCorrected records a decode that corrected one or more errors on the
// named layer.
func (c *Collector) FECCorrected(layer string) { c.fecCorr.WithLabelValues(layer).Inc() }

// UDPPacketIn records one received UDP datagram of the given byte length.
func (c *Collector) UDPPacketIn(bytes int) {
	c.udpInPackets.Inc()
	c.udpInBytes.Add(float64(bytes))
}

// UDPDrop records one dropped UDP datagram.
func (c *Collector) UDPDrop() { c.udpInDrops.Inc() }

// UpdateDSPSnapshot replaces the live DSP tracking snapshot. Called from
// the DSP thread once per processing block.
func (c *Collector) UpdateDSPSnapshot(s DSPSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = s
}

// SnapshotMetrics returns the current DSP snapshot, matching spec.md's
// snapshot_metrics() contract.
func (c *Collector) SnapshotMetrics() DSPSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}
