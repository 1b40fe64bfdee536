/*
DESCRIPTION
  convert.go implements the cast convert command: CAS container in, MSX
  cassette tape WAV audio out. Individual flags override values taken
  from a named profile.

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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ausocean/cas/codec/pcm"
	"github.com/ausocean/cas/codec/wav"
	"github.com/ausocean/cas/container/cas"
	"github.com/ausocean/cas/tape"
)

var (
	convBaud      int
	convSample    int
	convWave      string
	convRise      int
	convLeader    string
	convProfile   string
	convChannels  int
	convDepth     int
	convAmplitude int
	convLowPass   int
	convMarkers   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT.cas OUTPUT.wav",
	Short: "Convert CAS to WAV audio",
	Long: `Convert a CAS container to MSX cassette tape WAV audio.

Values from --profile are the base; any flag set explicitly on the
command line overrides the profile value.`,
	Args:                  cobra.ExactArgs(2),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg.Logger = log

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		c, err := cas.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		w, err := wav.Create(args[1], cfg.WAVFormat())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		convErr := tape.Convert(c, w, cfg)
		closeErr := w.Close()
		if convErr != nil {
			fmt.Fprintln(os.Stderr, convErr)
			os.Exit(1)
		}
		if closeErr != nil {
			fmt.Fprintln(os.Stderr, closeErr)
			os.Exit(1)
		}

		est := cfg.Estimate(c)
		fmt.Printf("conversion complete: %d:%02d (%.1f s) of audio\n",
			int(est.Duration)/60, int(est.Duration)%60, est.Duration)
		printLoadCommand(c)
	},
}

func init() {
	convertCmd.Flags().IntVarP(&convBaud, "baud", "b", 1200, "baud rate: 1200 (standard) or 2400 (turbo)")
	convertCmd.Flags().IntVarP(&convSample, "sample", "s", 43200, "sample rate in Hz, a multiple of 1200")
	convertCmd.Flags().StringVarP(&convWave, "wave", "w", "sine", "waveform: sine, square, triangle or trapezoid")
	convertCmd.Flags().IntVarP(&convRise, "rise", "r", 10, "trapezoid rise/fall width, percent of cycle (1-50)")
	convertCmd.Flags().StringVarP(&convLeader, "leader", "t", "", "leader timing preset: standard, conservative or extended")
	convertCmd.Flags().StringVarP(&convProfile, "profile", "p", "", "base audio profile (see 'cast profile')")
	convertCmd.Flags().IntVarP(&convChannels, "channels", "c", 1, "channels: 1 (mono) or 2 (stereo)")
	convertCmd.Flags().IntVarP(&convDepth, "depth", "d", 8, "bit depth: 8 or 16")
	convertCmd.Flags().IntVarP(&convAmplitude, "amplitude", "a", 120, "signal amplitude: 1-127 for 8-bit, 1-255 for 16-bit")
	convertCmd.Flags().IntVarP(&convLowPass, "lowpass", "l", 0, "low-pass cutoff in Hz (0 disables; 6000 is a good start)")
	convertCmd.Flags().BoolVarP(&convMarkers, "markers", "m", false, "add cue point markers for timeline tracking")
	rootCmd.AddCommand(convertCmd)
}

// resolveConfig builds the modulation config: profile values first, then
// every explicitly set flag on top.
func resolveConfig(cmd *cobra.Command) (tape.Config, error) {
	var profile *tape.Profile
	if convProfile != "" {
		if profile = tape.FindProfile(convProfile); profile == nil {
			return tape.Config{}, fmt.Errorf("unknown profile %q; run 'cast profile' to list profiles", convProfile)
		}
	}

	var o tape.Overrides
	set := cmd.Flags().Changed
	if set("baud") {
		o.Baud = &convBaud
	}
	if set("sample") {
		o.SampleRate = &convSample
	}
	if set("wave") {
		t, ok := pcm.WaveTypeFromString(convWave)
		if !ok {
			return tape.Config{}, fmt.Errorf("unknown waveform %q", convWave)
		}
		o.Wave = &t
	}
	if set("rise") {
		o.RisePct = &convRise
	}
	if set("leader") {
		long, short, ok := tape.LeaderTiming(convLeader)
		if !ok {
			return tape.Config{}, fmt.Errorf("unknown leader preset %q", convLeader)
		}
		o.LongSilence = &long
		o.ShortSilence = &short
	}
	if set("channels") {
		o.Channels = &convChannels
	}
	if set("depth") {
		o.BitDepth = &convDepth
	}
	if set("amplitude") {
		o.Amplitude = &convAmplitude
	}
	if set("lowpass") {
		on := convLowPass > 0
		o.LowPass = &on
		if on {
			o.LowPassCutoff = &convLowPass
		}
	}
	if set("markers") {
		o.Markers = &convMarkers
	}

	cfg := tape.Resolve(profile, o)
	if set("rise") && cfg.Wave != pcm.Trapezoid {
		return tape.Config{}, fmt.Errorf("--rise requires the trapezoid waveform")
	}
	if cfg.Channels == 2 {
		fmt.Fprintln(os.Stderr, "warning: MSX decodes mono; stereo output duplicates the signal")
	}
	return cfg, cfg.Validate()
}

// printLoadCommand prints the MSX BASIC command that loads the first
// non-custom file of the container.
func printLoadCommand(c *cas.Container) {
	for i := range c.Files {
		f := &c.Files[i]
		switch f.Kind {
		case cas.ASCII, cas.BASIC:
			fmt.Println(`MSX command: RUN"CAS:",R`)
			return
		case cas.Binary:
			if f.Addr != nil && f.Addr.Exec != 0 {
				fmt.Println(`MSX command: BLOAD"CAS:",R`)
			} else {
				fmt.Println(`MSX command: BLOAD"CAS:"`)
			}
			return
		}
	}
	fmt.Println("MSX command: (custom format, no standard load command)")
}
