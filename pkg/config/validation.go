package config

import "fmt"

// validate checks a RuntimeConfig for internally-consistent values before
// it becomes a candidate for ApplyConfig.
func validate(cfg *RuntimeConfig) error {
	if cfg.DSP.DecimationFactor <= 0 {
		return fmt.Errorf("dsp.decimation_factor must be positive")
	}
	if cfg.DSP.RRCAlpha < 0 || cfg.DSP.RRCAlpha > 1 {
		return fmt.Errorf("dsp.rrc_alpha must be between 0 and 1")
	}
	if cfg.DSP.EqualizerTaps <= 0 {
		return fmt.Errorf("dsp.equalizer_taps must be positive")
	}

	if cfg.Trunk.HangtimeS <= 0 {
		return fmt.Errorf("trunk.hangtime_s must be positive")
	}
	if cfg.Trunk.GrantVoiceTimeoutS <= 0 {
		return fmt.Errorf("trunk.grant_voice_timeout_s must be positive")
	}
	if cfg.Trunk.EvalS <= 0 {
		return fmt.Errorf("trunk.eval_s must be positive")
	}

	if cfg.RemoteControl.Enabled && cfg.RemoteControl.Address == "" {
		return fmt.Errorf("remote_control.address is required when remote_control is enabled")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		return fmt.Errorf("metrics.address is required when metrics is enabled")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}

	return nil
}
