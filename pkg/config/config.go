// Package config loads the decoder's RuntimeConfig (§9.2): a value built
// once per run from defaults, an optional file, and environment overrides
// via github.com/spf13/viper, then held behind an atomic.Pointer so
// apply_config can swap a fresh snapshot without readers ever blocking.
package config

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/spf13/viper"
)

// RuntimeConfig is the decoder's whole-process configuration: DSP tuning,
// trunking-SM timers, enabled protocol families, external collaborator
// endpoints, logging, and metrics.
type RuntimeConfig struct {
	DSP           DSPConfig           `mapstructure:"dsp"`
	Trunk         TrunkConfig         `mapstructure:"trunk"`
	Protocols     ProtocolsConfig     `mapstructure:"protocols"`
	IQSource      IQSourceConfig      `mapstructure:"iq_source"`
	AudioSink     AudioSinkConfig     `mapstructure:"audio_sink"`
	RemoteControl RemoteControlConfig `mapstructure:"remote_control"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
}

// DSPConfig holds the decimation/AGC/equaliser/RRC parameters of §4.1-4.2.
type DSPConfig struct {
	SampleRateHz     int     `mapstructure:"sample_rate_hz"`
	DecimationFactor int     `mapstructure:"decimation_factor"`
	AGCTargetLevel   float64 `mapstructure:"agc_target_level"`
	AGCAttackRate    float64 `mapstructure:"agc_attack_rate"`
	AGCDecayRate     float64 `mapstructure:"agc_decay_rate"`
	EqualizerTaps    int     `mapstructure:"equalizer_taps"`
	EqualizerStepSize float64 `mapstructure:"equalizer_step_size"`
	RRCAlpha         float64 `mapstructure:"rrc_alpha"`
	RRCSpanSymbols   int     `mapstructure:"rrc_span_symbols"`
}

// TrunkConfig mirrors pkg/trunk.Config's timers and policy switches so they
// can be set from a config file instead of only DefaultConfig().
type TrunkConfig struct {
	HangtimeS          float64 `mapstructure:"hangtime_s"`
	VCGraceS           float64 `mapstructure:"vc_grace_s"`
	MinFollowDwellS    float64 `mapstructure:"min_follow_dwell_s"`
	GrantVoiceTimeoutS float64 `mapstructure:"grant_voice_timeout_s"`
	RetuneBackoffS     float64 `mapstructure:"retune_backoff_s"`
	MacHoldS           float64 `mapstructure:"mac_hold_s"`
	NosyncTimeoutS     float64 `mapstructure:"nosync_timeout_s"`
	EvalS              float64 `mapstructure:"eval_s"`
	CandidateCooldownS float64 `mapstructure:"candidate_cooldown_s"`
	BasicMode          bool    `mapstructure:"basic_mode"`
	TrunkTuneEncCalls  bool    `mapstructure:"trunk_tune_enc_calls"`
}

// ProtocolsConfig switches which sync families the correlator registry
// scans for, per §4.2's cross-protocol sync-pattern registry.
type ProtocolsConfig struct {
	P25Phase1 bool `mapstructure:"p25_phase1"`
	P25Phase2 bool `mapstructure:"p25_phase2"`
	DMR       bool `mapstructure:"dmr"`
	NXDN      bool `mapstructure:"nxdn"`
	DStar     bool `mapstructure:"dstar"`
	YSF       bool `mapstructure:"ysf"`
	DPMR      bool `mapstructure:"dpmr"`
	M17       bool `mapstructure:"m17"`
	EDACS     bool `mapstructure:"edacs"`
	ProVoice  bool `mapstructure:"provoice"`
}

// IQSourceConfig describes the external IQ collaborator (§6).
type IQSourceConfig struct {
	Kind       string `mapstructure:"kind"` // "file" or "tcp"
	Path       string `mapstructure:"path"`
	Address    string `mapstructure:"address"`
	SampleRate int    `mapstructure:"sample_rate"`
}

// AudioSinkConfig describes the external audio-output collaborator (§6).
type AudioSinkConfig struct {
	Kind string `mapstructure:"kind"` // "file", "device", "udp"
	Path string `mapstructure:"path"`
}

// RemoteControlConfig configures the UDP "RETUNE <freq_hz>" listener (§6).
type RemoteControlConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// LoggingConfig configures pkg/logger's charmbracelet/log backend.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig configures the prometheus.Registry exposed for §9.3.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

// current is the process-wide live RuntimeConfig, atomically swapped by
// ApplyConfig so readers on the DSP/control threads never block writers.
var current atomic.Pointer[RuntimeConfig]

// Current returns the live RuntimeConfig snapshot, or a defaulted one if
// ApplyConfig has never been called.
func Current() *RuntimeConfig {
	if cfg := current.Load(); cfg != nil {
		return cfg
	}
	d := defaults()
	return &d
}

// ApplyConfig atomically publishes a new RuntimeConfig snapshot.
func ApplyConfig(cfg *RuntimeConfig) {
	current.Store(cfg)
}

// Load builds a RuntimeConfig from defaults, an optional file, and
// DECODER_-prefixed environment variables, validates it, and returns it
// without publishing it — callers decide when to ApplyConfig.
func Load(configFile string) (*RuntimeConfig, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/trunkcore")
	}

	v.SetEnvPrefix("DECODER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config file: defaults + env vars only
		} else if os.IsNotExist(err) {
			// explicitly-named file missing: also fall through to defaults
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// defaults returns the RuntimeConfig setDefaults() would produce, for
// Current()'s pre-ApplyConfig fallback.
func defaults() RuntimeConfig {
	v := viper.New()
	setDefaults(v)
	var cfg RuntimeConfig
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dsp.sample_rate_hz", 48000)
	v.SetDefault("dsp.decimation_factor", 5)
	v.SetDefault("dsp.agc_target_level", 0.5)
	v.SetDefault("dsp.agc_attack_rate", 0.01)
	v.SetDefault("dsp.agc_decay_rate", 0.001)
	v.SetDefault("dsp.equalizer_taps", 7)
	v.SetDefault("dsp.equalizer_step_size", 0.001)
	v.SetDefault("dsp.rrc_alpha", 0.2)
	v.SetDefault("dsp.rrc_span_symbols", 8)

	v.SetDefault("trunk.hangtime_s", 1.0)
	v.SetDefault("trunk.vc_grace_s", 1.5)
	v.SetDefault("trunk.min_follow_dwell_s", 0.7)
	v.SetDefault("trunk.grant_voice_timeout_s", 2.0)
	v.SetDefault("trunk.retune_backoff_s", 3.0)
	v.SetDefault("trunk.mac_hold_s", 3.0)
	v.SetDefault("trunk.nosync_timeout_s", 5.0)
	v.SetDefault("trunk.eval_s", 5.0)
	v.SetDefault("trunk.candidate_cooldown_s", 10.0)
	v.SetDefault("trunk.basic_mode", false)
	v.SetDefault("trunk.trunk_tune_enc_calls", true)

	v.SetDefault("protocols.p25_phase1", true)
	v.SetDefault("protocols.p25_phase2", true)
	v.SetDefault("protocols.dmr", true)
	v.SetDefault("protocols.nxdn", false)
	v.SetDefault("protocols.dstar", false)
	v.SetDefault("protocols.ysf", false)
	v.SetDefault("protocols.dpmr", false)
	v.SetDefault("protocols.m17", false)
	v.SetDefault("protocols.edacs", false)
	v.SetDefault("protocols.provoice", false)

	v.SetDefault("iq_source.kind", "file")
	v.SetDefault("iq_source.sample_rate", 48000)

	v.SetDefault("audio_sink.kind", "file")

	v.SetDefault("remote_control.enabled", true)
	v.SetDefault("remote_control.address", "127.0.0.1:9600")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.address", "127.0.0.1:9090")
	v.SetDefault("metrics.path", "/metrics")
}
