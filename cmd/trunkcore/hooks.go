package main

import (
	"github.com/dbehnke/trunkcore/pkg/iq"
	"github.com/dbehnke/trunkcore/pkg/logger"
	"github.com/dbehnke/trunkcore/pkg/trunk"
)

// sourceRetuner adapts an iq.Source to pkg/remote.Retuner, so the UDP
// "RETUNE <freq_hz>" listener can drive the same receiver the trunking SM
// follows control channels on.
type sourceRetuner struct {
	source iq.Source
}

func (r sourceRetuner) SetFrequency(hz int64) error {
	return r.source.SetFrequency(hz)
}

// demoHooks is the trunking SM's production Hooks implementation for this
// demo wiring: it retunes the IQ source on TuneVC/ReturnCC and logs every
// state transition.
type demoHooks struct {
	source iq.Source
	ccFreq int64
	log    *logger.Logger
}

func (h *demoHooks) TuneVC(freq int64, channel uint16) {
	if err := h.source.SetFrequency(freq); err != nil {
		h.log.Error("failed to tune voice channel", logger.Int64("freq_hz", freq), logger.Error(err))
		return
	}
	h.log.Info("tuned voice channel", logger.Int64("freq_hz", freq), logger.Uint("channel", uint(channel)))
}

func (h *demoHooks) ReturnCC() {
	if err := h.source.SetFrequency(h.ccFreq); err != nil {
		h.log.Error("failed to return to control channel", logger.Int64("freq_hz", h.ccFreq), logger.Error(err))
		return
	}
	h.log.Info("returned to control channel", logger.Int64("freq_hz", h.ccFreq))
}

func (h *demoHooks) StateChange(old, new trunk.State, reason string, eventID string) {
	h.log.Info("trunking state change",
		logger.String("old", old.String()),
		logger.String("new", new.String()),
		logger.String("reason", reason),
		logger.String("event_id", eventID))
}
