/*
NAME
  presets.go

DESCRIPTION
  presets.go holds the catalogue of named audio profiles: parameter
  bundles tuned for particular playback paths, from direct computer line
  out to worn cassette decks. Resolution merges explicit overrides over
  the profile's defaults. Additional profiles can be loaded from YAML.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tape

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ausocean/cas/codec/pcm"
)

// Profile is one named parameter bundle. Parameter fields mirror Config;
// the descriptive fields drive the profile listing.
type Profile struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	UseCase     string `yaml:"use-case"`
	Rationale   string `yaml:"rationale"`

	Waveform      string  `yaml:"waveform"`
	RisePct       int     `yaml:"rise-percent"`
	Baud          int     `yaml:"baud"`
	SampleRate    int     `yaml:"sample-rate"`
	Amplitude     int     `yaml:"amplitude"`
	LongSilence   float64 `yaml:"long-silence"`
	ShortSilence  float64 `yaml:"short-silence"`
	LowPass       bool    `yaml:"low-pass"`
	LowPassCutoff int     `yaml:"low-pass-cutoff"`
}

// profiles is the built-in catalogue, grouped by category. The table is
// immutable process-wide data; Profiles returns it directly.
var profiles = []Profile{
	{
		Name:        "default",
		Category:    "General",
		Description: "Standard 1200 baud sine, fast loading",
		UseCase:     "First thing to try for any CAS file and playback path.",
		Rationale:   "A clean sine at standard timing decodes on every machine and keeps the tape short.",
		Waveform:    "sine", RisePct: 10, Baud: 1200, SampleRate: 43200, Amplitude: 120,
		LongSilence: 2.0, ShortSilence: 1.0, LowPassCutoff: 6000,
	},
	{
		Name:        "computer-direct",
		Category:    "Computer Playback",
		Description: "Trapezoid with low-pass, for line-out to MSX",
		UseCase:     "Playing the WAV from a PC or phone straight into the MSX cassette port.",
		Rationale:   "Sound cards reproduce edges faithfully; the gentle trapezoid plus a 6 kHz low-pass avoids ringing on the MSX input comparator.",
		Waveform:    "trapezoid", RisePct: 10, Baud: 1200, SampleRate: 43200, Amplitude: 120,
		LongSilence: 2.0, ShortSilence: 1.0, LowPass: true, LowPassCutoff: 6000,
	},
	{
		Name:        "msx1-hardware",
		Category:    "Real Hardware",
		Description: "Square wave, conservative timing, hot signal",
		UseCase:     "Recording to a real cassette for an original MSX1 data recorder.",
		Rationale:   "Tape saturation rounds a square into roughly what the BIOS expects, and the longer leaders give AGC and motor speed time to settle.",
		Waveform:    "square", RisePct: 10, Baud: 1200, SampleRate: 43200, Amplitude: 125,
		LongSilence: 3.0, ShortSilence: 2.0, LowPassCutoff: 6000,
	},
	{
		Name:        "worn-deck",
		Category:    "Real Hardware",
		Description: "Gentle trapezoid, extended leaders, filtered",
		UseCase:     "Ageing decks with tired heads, stretched belts or drifting speed.",
		Rationale:   "Gentle slopes and maximum leader time trade tape length for every bit of margin a worn transport can give.",
		Waveform:    "trapezoid", RisePct: 20, Baud: 1200, SampleRate: 43200, Amplitude: 120,
		LongSilence: 5.0, ShortSilence: 3.0, LowPass: true, LowPassCutoff: 5500,
	},
	{
		Name:        "turbo-2400",
		Category:    "Speed",
		Description: "2400 baud sine for halved loading time",
		UseCase:     "Machines and emulators known to handle turbo CSAVE rates.",
		Rationale:   "Doubling the symbol rate halves load time; the 4800 Hz 1-bit carrier still sits comfortably under half the sample rate.",
		Waveform:    "sine", RisePct: 10, Baud: 2400, SampleRate: 43200, Amplitude: 120,
		LongSilence: 2.0, ShortSilence: 1.0, LowPassCutoff: 6000,
	},
	{
		Name:        "studio-clean",
		Category:    "Archival",
		Description: "96 kHz sine with 7 kHz low-pass",
		UseCase:     "Master WAVs kept for re-recording or analysis.",
		Rationale:   "A high sample rate keeps the cycle quantisation error negligible, and the wide filter only trims noise above the signal band.",
		Waveform:    "sine", RisePct: 10, Baud: 1200, SampleRate: 96000, Amplitude: 120,
		LowPass: true, LowPassCutoff: 7000,
		LongSilence: 2.0, ShortSilence: 1.0,
	},
}

// Profiles returns the built-in profile catalogue, in listing order.
func Profiles() []Profile {
	return profiles
}

// FindProfile returns the named profile, matching case-insensitively, or
// nil when there is none.
func FindProfile(name string) *Profile {
	for i := range profiles {
		if strings.EqualFold(profiles[i].Name, name) {
			return &profiles[i]
		}
	}
	return nil
}

// Config expands the profile into a full Config, leaving fields the
// profile does not govern (bit depth, channels, markers) at their
// defaults.
func (p *Profile) Config() Config {
	c := DefaultConfig()
	if t, ok := pcm.WaveTypeFromString(p.Waveform); ok {
		c.Wave = t
	}
	c.TrapezoidRisePct = p.RisePct
	c.Baud = p.Baud
	c.SampleRate = p.SampleRate
	c.Amplitude = p.Amplitude
	c.LongSilence = p.LongSilence
	c.ShortSilence = p.ShortSilence
	c.LowPass = p.LowPass
	c.LowPassCutoff = p.LowPassCutoff
	return c
}

// Overrides carries explicitly set parameters. Nil fields leave the
// profile value in place.
type Overrides struct {
	Baud          *int
	SampleRate    *int
	Wave          *pcm.WaveType
	RisePct       *int
	Amplitude     *int
	BitDepth      *int
	Channels      *int
	LongSilence   *float64
	ShortSilence  *float64
	LowPass       *bool
	LowPassCutoff *int
	Markers       *bool
}

// Resolve merges explicit overrides over the profile's defaults. A nil
// profile resolves over DefaultConfig.
func Resolve(p *Profile, o Overrides) Config {
	c := DefaultConfig()
	if p != nil {
		c = p.Config()
	}
	if o.Baud != nil {
		c.Baud = *o.Baud
	}
	if o.SampleRate != nil {
		c.SampleRate = *o.SampleRate
	}
	if o.Wave != nil {
		c.Wave = *o.Wave
	}
	if o.RisePct != nil {
		c.TrapezoidRisePct = *o.RisePct
	}
	if o.Amplitude != nil {
		c.Amplitude = *o.Amplitude
	}
	if o.BitDepth != nil {
		c.BitDepth = *o.BitDepth
	}
	if o.Channels != nil {
		c.Channels = *o.Channels
	}
	if o.LongSilence != nil {
		c.LongSilence = *o.LongSilence
	}
	if o.ShortSilence != nil {
		c.ShortSilence = *o.ShortSilence
	}
	if o.LowPass != nil {
		c.LowPass = *o.LowPass
	}
	if o.LowPassCutoff != nil {
		c.LowPassCutoff = *o.LowPassCutoff
	}
	if o.Markers != nil {
		c.Markers = *o.Markers
	}
	return c
}

// LeaderTiming returns the long and short silence durations for a named
// leader preset: standard 2.0/1.0, conservative 3.0/2.0, extended
// 5.0/3.0.
func LeaderTiming(name string) (long, short float64, ok bool) {
	switch strings.ToLower(name) {
	case "standard":
		return 2.0, 1.0, true
	case "conservative":
		return 3.0, 2.0, true
	case "extended":
		return 5.0, 3.0, true
	}
	return 0, 0, false
}

// LoadProfiles reads additional profiles from YAML: a document holding a
// `profiles` list of Profile entries. Loaded profiles supplement the
// built-in catalogue for the caller; they are not registered globally.
func LoadProfiles(r io.Reader) ([]Profile, error) {
	var doc struct {
		Profiles []Profile `yaml:"profiles"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding profiles")
	}
	for i := range doc.Profiles {
		if doc.Profiles[i].Name == "" {
			return nil, errors.Errorf("profile %d has no name", i)
		}
		if _, ok := pcm.WaveTypeFromString(doc.Profiles[i].Waveform); !ok {
			return nil, errors.Errorf("profile %q: unknown waveform %q", doc.Profiles[i].Name, doc.Profiles[i].Waveform)
		}
	}
	return doc.Profiles, nil
}
