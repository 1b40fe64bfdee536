/*
NAME
  synth.go

DESCRIPTION
  synth.go generates single cycles of carrier tone in the shapes the MSX
  tape modulator uses: sine, square, triangle and trapezoid with a
  configurable edge width.

AUTHOR
  Trek Hopton <trek@ausocean.org>
  Saxon Nelson-Milton <saxon@ausocean.org>

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

// ErrFrequencyTooHigh is returned when the sample rate cannot represent
// even one sample per cycle of the requested frequency.
var ErrFrequencyTooHigh = errors.New("frequency too high for sample rate")

// Cycle produces exactly ⌊w.SampleRate/freq⌋ samples representing one
// complete cycle of the configured waveform at freq Hz. Samples are
// unsigned 8-bit centred on Centre with peak deviation w.Amplitude.
func Cycle(w Waveform, freq int) ([]byte, error) {
	if freq <= 0 {
		return nil, errors.Errorf("invalid frequency %d Hz", freq)
	}
	n := w.SampleRate / freq
	if n == 0 {
		return nil, errors.Wrapf(ErrFrequencyTooHigh, "%d Hz at sample rate %d", freq, w.SampleRate)
	}

	amp := float64(w.Amplitude)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		var v float64
		switch w.Type {
		case Sine:
			v = amp * math.Sin(2*math.Pi*t)
		case Square:
			if t < 0.5 {
				v = amp
			} else {
				v = -amp
			}
		case Triangle:
			if t < 0.5 {
				v = 4*amp*t - amp
			} else {
				v = 3*amp - 4*amp*t
			}
		case Trapezoid:
			v = trapezoid(t, amp, w.RisePct)
		}
		out[i] = clampSample(v)
	}
	return out, nil
}

// trapezoid evaluates the trapezoid shape at normalised cycle position t.
// The cycle is: rising ramp of width r from 0 to +A, high plateau,
// falling ramp of width 2r straddling the half cycle, low plateau, and a
// final rising ramp of width r back to 0, with r = risePct/100 clamped to
// half a cycle.
func trapezoid(t, amp float64, risePct int) float64 {
	r := float64(risePct) / 100
	if r > 0.5 {
		r = 0.5
	}
	switch {
	case t < r:
		return amp * t / r
	case t < 0.5-r:
		return amp
	case t < 0.5+r:
		return amp * (1 - (t-(0.5-r))/r)
	case t < 1-r:
		return -amp
	default:
		return -amp + amp*(t-(1-r))/r
	}
}

// clampSample converts a signed deviation to an unsigned 8-bit sample
// about Centre.
func clampSample(v float64) byte {
	s := math.Round(v) + Centre
	if s < 0 {
		s = 0
	}
	if s > 255 {
		s = 255
	}
	return byte(s)
}
