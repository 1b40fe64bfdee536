/*
NAME
  config_test.go

DESCRIPTION
  config_test.go contains tests for modulation config validation.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tape

import (
	"testing"

	"github.com/pkg/errors"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"baud 600", func(c *Config) { c.Baud = 600 }},
		{"baud 4800", func(c *Config) { c.Baud = 4800 }},
		{"sample rate not multiple of 1200", func(c *Config) { c.SampleRate = 44100 }},
		{"sample rate zero", func(c *Config) { c.SampleRate = 0 }},
		{"rise zero", func(c *Config) { c.TrapezoidRisePct = 0 }},
		{"rise 60", func(c *Config) { c.TrapezoidRisePct = 60 }},
		{"amplitude zero", func(c *Config) { c.Amplitude = 0 }},
		{"amplitude 200 at 8-bit", func(c *Config) { c.Amplitude = 200 }},
		{"depth 12", func(c *Config) { c.BitDepth = 12 }},
		{"channels 3", func(c *Config) { c.Channels = 3 }},
		{"negative silence", func(c *Config) { c.LongSilence = -1 }},
		{"low-pass without cutoff", func(c *Config) { c.LowPass = true; c.LowPassCutoff = 0 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: error = %v, want ErrInvalidConfig", tt.name, err)
		}
	}
}

// Amplitude up to 255 is valid at 16-bit depth only.
func TestConfigAmplitude16(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BitDepth = 16
	cfg.Amplitude = 255
	if err := cfg.Validate(); err != nil {
		t.Errorf("16-bit amplitude 255 rejected: %v", err)
	}
}

// Synthesis stays in the 8-bit domain: a 16-bit amplitude is scaled
// down, never past the 8-bit ceiling.
func TestConfigWaveformAmplitude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BitDepth = 16
	cfg.Amplitude = 255
	if got := cfg.waveform().Amplitude; got != 127 {
		t.Errorf("synthesis amplitude = %d, want 127", got)
	}

	cfg.Amplitude = 1
	if got := cfg.waveform().Amplitude; got != 1 {
		t.Errorf("synthesis amplitude = %d, want 1", got)
	}
}
