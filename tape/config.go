/*
NAME
  config.go

DESCRIPTION
  config.go contains the configuration settings for tape modulation. A
  Config bundles every parameter of the MSX cassette encoding: carrier
  timing, waveform shape, PCM layout, silence durations, filtering and
  marker emission.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package tape composes MSX cassette tape audio from parsed CAS
// containers: FSK bit encoding, serial byte framing, sync runs, block
// protocol, timeline markers and closed-form duration estimation.
package tape

import (
	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	"github.com/ausocean/cas/codec/pcm"
	"github.com/ausocean/cas/codec/wav"
)

// Defaults for config fields.
const (
	defaultBaud          = 1200
	defaultSampleRate    = 43200
	defaultAmplitude     = 120
	defaultBitDepth      = 8
	defaultChannels      = 1
	defaultRisePct       = 10
	defaultLongSilence   = 2.0
	defaultShortSilence  = 1.0
	defaultLowPassCutoff = 6000
)

// Sync run lengths from the MSX BIOS cassette routines. A file header is
// announced by 8000 consecutive 1-bits, a data block by 2000. These
// counts must not be changed; real machines time their bit clock against
// them.
const (
	longSyncBits  = 8000
	shortSyncBits = 2000
)

// bitsPerByte is the serial frame length: one start bit, eight data bits
// and two stop bits.
const bitsPerByte = 11

// ErrInvalidConfig is wrapped by validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Config provides parameters relevant to one modulation run. Zero values
// are not usable; start from DefaultConfig.
type Config struct {
	// Baud is the symbol rate. A 0-bit is one cycle at Baud Hz, a 1-bit
	// two cycles at 2×Baud Hz. Valid values are 1200 and 2400.
	Baud int

	// SampleRate is samples per second, a positive multiple of 1200. It
	// constrains the minimum representable cycle length.
	SampleRate int

	// Wave selects the per-cycle shape.
	Wave pcm.WaveType

	// TrapezoidRisePct is the percentage of a cycle spent on each rising
	// or falling ramp, 1..50. Only meaningful with the trapezoid wave.
	TrapezoidRisePct int

	// Amplitude is the peak deviation from centre: 1..127 for 8-bit
	// output, 1..255 for 16-bit.
	Amplitude int

	// BitDepth is the output PCM depth, 8 or 16.
	BitDepth int

	// Channels is 1 or 2. MSX decoding needs mono; stereo duplicates.
	Channels int

	// LongSilence is the quiet lead-in before a file-header block, in
	// seconds.
	LongSilence float64

	// ShortSilence is the quiet lead-in before a data block, in seconds.
	ShortSilence float64

	// LowPass enables the single-pole IIR low-pass over the sample
	// stream, with cutoff LowPassCutoff Hz.
	LowPass       bool
	LowPassCutoff int

	// Markers enables cue point and label emission to the WAV.
	Markers bool

	// Logger, when set, receives progress logging during conversion.
	Logger logging.Logger
}

// DefaultConfig returns the standard-timing 1200 baud sine configuration.
func DefaultConfig() Config {
	return Config{
		Baud:             defaultBaud,
		SampleRate:       defaultSampleRate,
		Wave:             pcm.Sine,
		TrapezoidRisePct: defaultRisePct,
		Amplitude:        defaultAmplitude,
		BitDepth:         defaultBitDepth,
		Channels:         defaultChannels,
		LongSilence:      defaultLongSilence,
		ShortSilence:     defaultShortSilence,
		LowPassCutoff:    defaultLowPassCutoff,
	}
}

// Validate checks every field against its valid range. It is called
// before any bytes are written.
func (c *Config) Validate() error {
	if c.Baud != 1200 && c.Baud != 2400 {
		return errors.Wrapf(ErrInvalidConfig, "baud must be 1200 or 2400, got %d", c.Baud)
	}
	if c.TrapezoidRisePct < 1 || c.TrapezoidRisePct > 50 {
		return errors.Wrapf(ErrInvalidConfig, "trapezoid rise must be 1..50%%, got %d", c.TrapezoidRisePct)
	}
	if c.LongSilence < 0 || c.ShortSilence < 0 {
		return errors.Wrapf(ErrInvalidConfig, "silence durations must be non-negative")
	}
	if c.LowPass && c.LowPassCutoff <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "low-pass cutoff must be positive, got %d", c.LowPassCutoff)
	}
	if err := c.WAVFormat().Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}

// WAVFormat returns the output PCM format for the config.
func (c Config) WAVFormat() wav.Format {
	return wav.Format{
		SampleRate: c.SampleRate,
		BitDepth:   c.BitDepth,
		Channels:   c.Channels,
		Amplitude:  c.Amplitude,
	}
}

// waveform returns the synthesis parameters. Synthesis is always
// unsigned 8-bit; a 16-bit amplitude is halved into the 8-bit domain and
// the writer widens samples by eight bits on output.
func (c Config) waveform() pcm.Waveform {
	amp := c.Amplitude
	if c.BitDepth == 16 {
		amp /= 2
		if amp < 1 {
			amp = 1
		}
	}
	return pcm.Waveform{
		Type:       c.Wave,
		Amplitude:  amp,
		SampleRate: c.SampleRate,
		RisePct:    c.TrapezoidRisePct,
	}
}
