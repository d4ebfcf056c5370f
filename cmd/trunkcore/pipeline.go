package main

import (
	"time"

	"github.com/dbehnke/trunkcore/pkg/dsp"
	"github.com/dbehnke/trunkcore/pkg/iq"
	"github.com/dbehnke/trunkcore/pkg/logger"
	"github.com/dbehnke/trunkcore/pkg/metrics"
	"github.com/dbehnke/trunkcore/pkg/runtime"
	"github.com/dbehnke/trunkcore/pkg/trunk"
)

// dspStage drives the DSP pipeline (§4.1) over each IQ block the runtime
// supervisor's DSP thread hands it, publishing the pipeline's live carrier-
// lock telemetry to the metrics collector. Cross-protocol sync correlation
// (§4.2) needs real ideal symbol vectors per sync pattern; this demo wiring
// only exercises the DSP cascade itself, not a from-scratch reconstruction
// of those tables.
type dspStage struct {
	pipeline *dsp.Pipeline
	metrics  *metrics.Collector
	log      *logger.Logger
}

func newDSPStage(cfg dsp.Config, m *metrics.Collector, log *logger.Logger) (*dspStage, error) {
	p, err := dsp.Init(cfg)
	if err != nil {
		return nil, err
	}
	return &dspStage{pipeline: p, metrics: m, log: log.WithComponent("dsp")}, nil
}

func (d *dspStage) ProcessBlock(samples []iq.Sample) error {
	in := make([]complex128, len(samples))
	for i, s := range samples {
		in[i] = complex(float64(s.I)/32768.0, float64(s.Q)/32768.0)
	}

	results := d.pipeline.Process(in)
	if len(results) == 0 {
		return nil
	}

	last := results[len(results)-1]
	d.metrics.UpdateDSPSnapshot(metrics.DSPSnapshot{
		CarrierLocked: last.Lock == dsp.Track,
	})
	return nil
}

func (d *dspStage) Reset() {
	d.pipeline.ResetCarrier()
	d.pipeline.ResetTiming()
}

// controlStage drives the trunking state machine's periodic tick and
// applies remote-control retune commands, which are an operator override
// independent of the SM's own control-channel following (§6).
type controlStage struct {
	sm  *trunk.StateMachine
	log *logger.Logger
}

func newControlStage(sm *trunk.StateMachine, log *logger.Logger) *controlStage {
	return &controlStage{sm: sm, log: log.WithComponent("control")}
}

func (c *controlStage) Dispatch(cmd runtime.Command, source iq.Source) error {
	switch cmd.Kind {
	case "retune":
		if err := source.SetFrequency(cmd.Arg); err != nil {
			return err
		}
		c.log.Info("remote retune applied", logger.Int64("freq_hz", cmd.Arg))
	default:
		c.log.Warn("unknown control command", logger.String("kind", cmd.Kind))
	}
	return nil
}

func (c *controlStage) Tick() {
	c.sm.Tick(time.Now())
}
