// Command trunkcore wires the decoder's packages into one running process:
// an IQ source, the DSP pipeline, the trunking state machine, an audio
// sink, the metrics/status/remote-control surfaces, and the three-thread
// runtime supervisor. Per this project's demo-wiring convention, the
// configuration below is a fixed literal rather than a flag/cobra surface
// — there is no CLI argument parsing here, only process assembly.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dbehnke/trunkcore/pkg/audio"
	"github.com/dbehnke/trunkcore/pkg/cache"
	"github.com/dbehnke/trunkcore/pkg/config"
	"github.com/dbehnke/trunkcore/pkg/dsp"
	"github.com/dbehnke/trunkcore/pkg/frame"
	"github.com/dbehnke/trunkcore/pkg/iq"
	"github.com/dbehnke/trunkcore/pkg/logger"
	"github.com/dbehnke/trunkcore/pkg/metrics"
	"github.com/dbehnke/trunkcore/pkg/remote"
	"github.com/dbehnke/trunkcore/pkg/runtime"
	"github.com/dbehnke/trunkcore/pkg/statusapi"
	"github.com/dbehnke/trunkcore/pkg/trunk"
)

// Demo system identity (§6 S1 worked example): WACN 0xABCDE, SYSID 0x123,
// one FDMA IDEN with base 851,000,000 Hz and 100 x 125 Hz (12.5 kHz) spacing.
const (
	demoWACN         = 0xABCDE
	demoSYSID        = 0x123
	demoIDENID       = 1
	demoBaseHz       = 851_000_000
	demoSpacingUnits = 100 // units of 125 Hz, per §3's IDEN table encoding
	demoCCFreqHz     = 851_125_000
)

func main() {
	log := logger.New(logger.Config{Level: "info", Format: "text"})
	log.Info("starting trunkcore")

	cfg := demoConfig()
	config.ApplyConfig(&cfg)

	m := metrics.NewCollector()

	idens := frame.NewIDENTable()
	idens.Set(demoIDENID, frame.IDENEntry{
		BaseFreqUnits: demoBaseHz / 5,
		SpacingUnits:  demoSpacingUnits,
	})

	cacheStore := cache.NewStore(cache.DefaultDir())
	candidates, err := cacheStore.Load(demoWACN, demoSYSID)
	if err != nil {
		log.Warn("failed to load CC candidate cache", logger.Error(err))
	}

	source, err := iq.New(iq.Config{
		Kind: cfg.IQSource.Kind,
		Path: cfg.IQSource.Path,
	})
	if err != nil {
		log.Error("failed to open IQ source", logger.Error(err))
		os.Exit(1)
	}
	defer source.Close()
	if err := source.SetFrequency(demoCCFreqHz); err != nil {
		log.Warn("failed to set initial frequency", logger.Error(err))
	}

	sink, err := audio.NewFileSink(cfg.AudioSink.Path)
	if err != nil {
		log.Error("failed to open audio sink", logger.Error(err))
		os.Exit(1)
	}
	defer sink.Close()
	if err := sink.Open(audio.SampleRate8k, audio.Mono); err != nil {
		log.Error("failed to configure audio sink", logger.Error(err))
		os.Exit(1)
	}

	status := statusapi.NewServer(cfg.RemoteControl, log)
	hooks := statusapi.NewTrunkHooks(&demoHooks{source: source, ccFreq: demoCCFreqHz, log: log}, status.Hub())

	sm := trunk.NewStateMachine(trunk.DefaultConfig(), hooks, idens, candidates)
	status.WithState(sm).WithMetrics(m)

	dspCfg := dsp.Config{
		Mode:             dsp.ModeFM,
		InRate:           float64(cfg.DSP.SampleRateHz),
		OutRate:          float64(cfg.DSP.SampleRateHz) / float64(cfg.DSP.DecimationFactor),
		DCBlockShift:     9,
		AGCTargetRMS:     cfg.DSP.AGCTargetLevel,
		SamplesPerSymbol: 10,
	}
	stage, err := newDSPStage(dspCfg, m, log)
	if err != nil {
		log.Error("failed to init DSP pipeline", logger.Error(err))
		os.Exit(1)
	}
	control := newControlStage(sm, log)

	sup := runtime.New(source, stage, control, log, 1<<16, 64)

	remoteListener := remote.NewListener(config.RemoteControlConfig{
		Enabled: true,
		Address: "127.0.0.1:0",
	}, sourceRetuner{source: source}, m, log)

	metricsServer := metrics.NewPrometheusServer(metrics.ServerConfig{
		Enabled: cfg.Metrics.Enabled,
		Address: cfg.Metrics.Address,
		Path:    cfg.Metrics.Path,
	}, m, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := metricsServer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("metrics server error", logger.Error(err))
		}
	}()
	go func() {
		if err := status.Start(ctx); err != nil && err != context.Canceled {
			log.Error("status API error", logger.Error(err))
		}
	}()
	go func() {
		if err := remoteListener.Start(ctx); err != nil && err != context.Canceled {
			log.Error("remote control listener error", logger.Error(err))
		}
	}()

	if err := sup.Run(ctx); err != nil && err != context.Canceled {
		log.Error("runtime supervisor exited with error", logger.Error(err))
	}

	if err := cacheStore.Save(demoWACN, demoSYSID, sm.Neighbours(time.Now())); err != nil {
		log.Warn("failed to persist CC candidate cache", logger.Error(err))
	}

	log.Info("trunkcore stopped")
}

func demoConfig() config.RuntimeConfig {
	return config.RuntimeConfig{
		DSP: config.DSPConfig{
			SampleRateHz:     2_400_000,
			DecimationFactor: 10,
			AGCTargetLevel:   0.3,
			AGCAttackRate:    0.01,
			AGCDecayRate:     0.001,
			EqualizerTaps:    7,
			RRCAlpha:         0.2,
			RRCSpanSymbols:   8,
		},
		Trunk: config.TrunkConfig{
			HangtimeS:          1.0,
			VCGraceS:           1.5,
			MinFollowDwellS:    0.7,
			GrantVoiceTimeoutS: 2.0,
			RetuneBackoffS:     3.0,
			MacHoldS:           3.0,
			NosyncTimeoutS:     5.0,
			EvalS:              5.0,
			CandidateCooldownS: 10.0,
		},
		Protocols: config.ProtocolsConfig{
			P25Phase1: true,
		},
		IQSource: config.IQSourceConfig{
			Kind:       "file",
			Path:       "testdata/demo.iq",
			SampleRate: 2_400_000,
		},
		AudioSink: config.AudioSinkConfig{
			Kind: "file",
			Path: "trunkcore-out.raw",
		},
		RemoteControl: config.RemoteControlConfig{
			Enabled: true,
			Address: "127.0.0.1:8732",
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: config.MetricsConfig{
			Enabled: true,
			Address: "127.0.0.1:9732",
			Path:    "/metrics",
		},
	}
}

