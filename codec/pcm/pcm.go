/*
NAME
  pcm.go

DESCRIPTION
  pcm.go defines the sample-domain types shared by the waveform
  synthesiser and the low-pass filter.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pcm provides waveform synthesis and filtering for the MSX tape
// modulator. Samples are unsigned 8-bit PCM centred on 128; widening to
// 16-bit output is the WAV writer's concern.
package pcm

// Centre is the zero line of the unsigned 8-bit sample domain. A waveform
// at amplitude A spans [Centre-A, Centre+A], and silence is a run of
// Centre samples.
const Centre = 128

// MaxAmplitude is the largest peak deviation representable around Centre.
const MaxAmplitude = 127

// WaveType selects the per-cycle shape produced by the synthesiser.
type WaveType int

const (
	Sine WaveType = iota
	Square
	Triangle
	Trapezoid
)

// WaveTypeFromString returns the WaveType named by s, and ok=false when
// the name is unknown.
func WaveTypeFromString(s string) (WaveType, bool) {
	switch s {
	case "sine":
		return Sine, true
	case "square":
		return Square, true
	case "triangle":
		return Triangle, true
	case "trapezoid":
		return Trapezoid, true
	}
	return Sine, false
}

// String returns the lower-case name of the wave type.
func (t WaveType) String() string {
	switch t {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Trapezoid:
		return "trapezoid"
	default:
		return "unknown"
	}
}

// Waveform bundles the parameters the synthesiser needs to produce one
// cycle of tone.
type Waveform struct {
	Type       WaveType
	Amplitude  int // Peak deviation from Centre, 1..MaxAmplitude.
	SampleRate int // Samples per second.
	RisePct    int // Trapezoid ramp width as a percentage of the cycle, 1..50.
}
