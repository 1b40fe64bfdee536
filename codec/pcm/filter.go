/*
NAME
  filter.go

DESCRIPTION
  filter.go implements the single-pole IIR low-pass applied to the
  modulated sample stream to soften waveform harmonics for playback from
  computer audio outputs.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pcm

import (
	"math"

	"github.com/pkg/errors"
)

// LowPass is a single-pole IIR low-pass filter over unsigned 8-bit
// samples. The filter state carries across calls; it is applied to the
// whole sample stream, not reset per cycle.
type LowPass struct {
	alpha float64
	prev  float64
}

// NewLowPass returns a low-pass filter with the given cutoff, using
//
//	α = ωΔt / (1 + ωΔt), ω = 2π·cutoff, Δt = 1/sampleRate
//
// The state is initialised to the centre value, so a stream of silence is
// a fixed point of the filter.
func NewLowPass(cutoffHz, sampleRate int) (*LowPass, error) {
	if cutoffHz <= 0 {
		return nil, errors.Errorf("invalid low-pass cutoff %d Hz", cutoffHz)
	}
	if sampleRate <= 0 {
		return nil, errors.Errorf("invalid sample rate %d Hz", sampleRate)
	}
	wdt := 2 * math.Pi * float64(cutoffHz) / float64(sampleRate)
	return &LowPass{
		alpha: wdt / (1 + wdt),
		prev:  Centre,
	}, nil
}

// Filter applies the low-pass to samples in place:
//
//	y[n] = α·x[n] + (1−α)·y[n−1]
func (f *LowPass) Filter(samples []byte) {
	for i, x := range samples {
		f.prev = f.alpha*float64(x) + (1-f.alpha)*f.prev
		samples[i] = byte(math.Round(f.prev))
	}
}
