/*
NAME
  filter_test.go

DESCRIPTION
  filter_test.go contains tests for the single-pole IIR low-pass filter.

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
	"bytes"
	"math"
	"testing"
)

func TestLowPassAlpha(t *testing.T) {
	lp, err := NewLowPass(6000, 43200)
	if err != nil {
		t.Fatal(err)
	}
	wdt := 2 * math.Pi * 6000 / 43200.0
	want := wdt / (1 + wdt)
	if math.Abs(lp.alpha-want) > 1e-12 {
		t.Errorf("alpha = %v, want %v", lp.alpha, want)
	}
}

func TestLowPassInvalid(t *testing.T) {
	if _, err := NewLowPass(0, 43200); err == nil {
		t.Error("expected error for zero cutoff")
	}
	if _, err := NewLowPass(6000, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

// A centre-value stream is a fixed point: DC at the centre passes
// unchanged.
func TestLowPassDCFixedPoint(t *testing.T) {
	lp, err := NewLowPass(6000, 43200)
	if err != nil {
		t.Fatal(err)
	}
	in := bytes.Repeat([]byte{Centre}, 500)
	got := append([]byte(nil), in...)
	lp.Filter(got)
	if !bytes.Equal(got, in) {
		t.Error("centre-value stream was altered by the filter")
	}
}

// A step response rises monotonically towards the step value without
// overshoot.
func TestLowPassStepResponse(t *testing.T) {
	lp, err := NewLowPass(6000, 43200)
	if err != nil {
		t.Fatal(err)
	}
	in := bytes.Repeat([]byte{Centre + 100}, 200)
	lp.Filter(in)

	prev := byte(0)
	for i, s := range in {
		if s < prev {
			t.Fatalf("sample %d = %d dips below %d", i, s, prev)
		}
		if s > Centre+100 {
			t.Fatalf("sample %d = %d overshoots the step", i, s)
		}
		prev = s
	}
	if last := in[len(in)-1]; last != Centre+100 {
		t.Errorf("step settles at %d, want %d", last, Centre+100)
	}
}

// State carries across calls; the filter is applied to the stream, not
// reset per buffer.
func TestLowPassCarryState(t *testing.T) {
	lp1, _ := NewLowPass(6000, 43200)
	lp2, _ := NewLowPass(6000, 43200)

	whole := bytes.Repeat([]byte{Centre + 80, Centre - 80}, 100)
	one := append([]byte(nil), whole...)
	lp1.Filter(one)

	two := append([]byte(nil), whole...)
	lp2.Filter(two[:50])
	lp2.Filter(two[50:])

	if !bytes.Equal(one, two) {
		t.Error("split filtering differs from whole-stream filtering")
	}
}

// The filter attenuates: peaks of a filtered square are inside the raw
// peaks.
func TestLowPassAttenuates(t *testing.T) {
	w := Waveform{Type: Square, Amplitude: 120, SampleRate: 43200}
	cycle, err := Cycle(w, 2400)
	if err != nil {
		t.Fatal(err)
	}

	lp, _ := NewLowPass(3000, 43200)
	filtered := append([]byte(nil), cycle...)
	lp.Filter(filtered)

	var rawPeak, filtPeak int
	for i := range cycle {
		if d := abs(int(cycle[i]) - Centre); d > rawPeak {
			rawPeak = d
		}
		if d := abs(int(filtered[i]) - Centre); d > filtPeak {
			filtPeak = d
		}
	}
	if filtPeak >= rawPeak {
		t.Errorf("filtered peak %d not inside raw peak %d", filtPeak, rawPeak)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
