package config

import "testing"

func TestLoad_UsesDefaults_WhenNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Trunk.HangtimeS != 1.0 {
		t.Errorf("expected Trunk.HangtimeS default 1.0, got %v", cfg.Trunk.HangtimeS)
	}
	if cfg.Trunk.EvalS != 5.0 {
		t.Errorf("expected Trunk.EvalS default 5.0, got %v", cfg.Trunk.EvalS)
	}
	if !cfg.Protocols.DMR || !cfg.Protocols.P25Phase1 {
		t.Errorf("expected DMR and P25Phase1 enabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected Logging.Level default info, got %q", cfg.Logging.Level)
	}
	if cfg.Metrics.Address != "127.0.0.1:9090" {
		t.Errorf("expected Metrics.Address default, got %q", cfg.Metrics.Address)
	}
}

func TestCurrent_FallsBackToDefaultsBeforeApplyConfig(t *testing.T) {
	cfg := Current()
	if cfg.Trunk.HangtimeS != 1.0 {
		t.Fatalf("expected Current() to fall back to defaults, got %+v", cfg.Trunk)
	}
}

func TestApplyConfig_PublishesSnapshot(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Trunk.HangtimeS = 2.5
	ApplyConfig(cfg)

	got := Current()
	if got.Trunk.HangtimeS != 2.5 {
		t.Fatalf("Current().Trunk.HangtimeS = %v, want 2.5", got.Trunk.HangtimeS)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() RuntimeConfig {
		cfg := defaults()
		return cfg
	}

	t.Run("non-positive decimation factor", func(t *testing.T) {
		cfg := base()
		cfg.DSP.DecimationFactor = 0
		if err := validate(&cfg); err == nil {
			t.Fatal("expected error for non-positive dsp.decimation_factor")
		}
	})

	t.Run("rrc_alpha out of range", func(t *testing.T) {
		cfg := base()
		cfg.DSP.RRCAlpha = 1.5
		if err := validate(&cfg); err == nil {
			t.Fatal("expected error for dsp.rrc_alpha out of range")
		}
	})

	t.Run("non-positive hangtime", func(t *testing.T) {
		cfg := base()
		cfg.Trunk.HangtimeS = 0
		if err := validate(&cfg); err == nil {
			t.Fatal("expected error for non-positive trunk.hangtime_s")
		}
	})

	t.Run("remote control enabled without address", func(t *testing.T) {
		cfg := base()
		cfg.RemoteControl.Enabled = true
		cfg.RemoteControl.Address = ""
		if err := validate(&cfg); err == nil {
			t.Fatal("expected error for remote_control enabled without an address")
		}
	})

	t.Run("invalid logging level", func(t *testing.T) {
		cfg := base()
		cfg.Logging.Level = "verbose"
		if err := validate(&cfg); err == nil {
			t.Fatal("expected error for an unrecognized logging.level")
		}
	})
}
