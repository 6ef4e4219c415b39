package catcher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestConfig_DerivedQuantities(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Scale() != 125 {
		t.Fatalf("expected scale 125 px/unit, got %.4f", cfg.Scale())
	}
	if cfg.StepSize() != 0.2 {
		t.Fatalf("expected step size 0.2, got %.4f", cfg.StepSize())
	}
	if cfg.CartPixelX(0) != 300 {
		t.Fatalf("centre position should map to x=300, got %.1f", cfg.CartPixelX(0))
	}
	if cfg.CartPixelX(cfg.Threshold) != 600 || cfg.CartPixelX(-cfg.Threshold) != 0 {
		t.Fatalf("threshold should map to the screen edges, got %.1f / %.1f",
			cfg.CartPixelX(cfg.Threshold), cfg.CartPixelX(-cfg.Threshold))
	}
	if cfg.SensorAnchorY() != 15 {
		t.Fatalf("sensor anchor should sit at half the cart height, got %.1f", cfg.SensorAnchorY())
	}
}

func TestConfig_Validate_Rejects(t *testing.T) {
	cases := map[string]func(*Config){
		"no sensors":       func(c *Config) { c.NSensors = 0 },
		"zero frequency":   func(c *Config) { c.Frequency = 0 },
		"negative balls":   func(c *Config) { c.MaxBalls = -1 },
		"inverted speeds":  func(c *Config) { c.BallMinVerticalSpeed = 60 },
		"zero screen":      func(c *Config) { c.ScreenWidth = 0 },
		"zero threshold":   func(c *Config) { c.Threshold = 0 },
		"negative steps":   func(c *Config) { c.MaxSteps = -1 },
		"flat fan":         func(c *Config) { c.VisionAngle = 180 },
		"negative spread":  func(c *Config) { c.SpawnSpread = -0.1 },
		"negative h speed": func(c *Config) { c.BallMaxHorizontalSpeed = -1 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", name)
			continue
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catcher.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, "max_balls = 3\nfrequency = 2\nball_radius = 10.0\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxBalls != 3 || cfg.Frequency != 2 || cfg.BallRadius != 10 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.ScreenWidth != 600 || cfg.NSensors != 7 || cfg.MaxSteps != 100 {
		t.Fatalf("unspecified keys should keep defaults: %+v", cfg)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, "max_ballz = 3\n")
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for unknown key, got %v", err)
	}
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	path := writeConfig(t, "n_sensors = 0\n")
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero sensors, got %v", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfig_EncodeThenLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 250
	cfg.SpawnSpread = 0
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := LoadConfig(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatalf("load encoded config: %v", err)
	}
	if got != cfg {
		t.Fatalf("encoded config did not load back:\nwant %+v\ngot  %+v", cfg, got)
	}
}

func TestConfig_SensorAngles_Symmetric(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NSensors = 4
	cfg.VisionAngle = 60
	angles := cfg.SensorAngles()
	want := []float64{60, 80, 100, 120}
	for i := range want {
		if angles[i] != want[i] {
			t.Fatalf("angle %d: want %.1f got %.4f", i, want[i], angles[i])
		}
	}
}
