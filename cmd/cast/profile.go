/*
DESCRIPTION
  profile.go implements the cast profile command, listing the audio
  profile catalogue or showing one profile in detail. User profiles can
  be merged in from a YAML file.

AUTHOR
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
	"strings"

	"github.com/spf13/cobra"

	"github.com/ausocean/cas/tape"
)

var profileFile string

var profileCmd = &cobra.Command{
	Use:                   "profile [NAME]",
	Short:                 "List or show audio profiles",
	Args:                  cobra.MaximumNArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		catalogue := tape.Profiles()
		if profileFile != "" {
			f, err := os.Open(profileFile)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			extra, err := tape.LoadProfiles(f)
			f.Close()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			catalogue = append(catalogue, extra...)
		}

		if len(args) == 0 {
			listProfiles(catalogue)
			return
		}

		for i := range catalogue {
			if strings.EqualFold(catalogue[i].Name, args[0]) {
				showProfile(&catalogue[i])
				return
			}
		}
		fmt.Fprintf(os.Stderr, "profile %q not found; run 'cast profile' to list profiles\n", args[0])
		os.Exit(1)
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileFile, "profiles", "", "YAML file of additional profiles")
	rootCmd.AddCommand(profileCmd)
}

func listProfiles(catalogue []tape.Profile) {
	fmt.Printf("Available audio profiles (%d total)\n\n", len(catalogue))
	var category string
	for i := range catalogue {
		p := &catalogue[i]
		if p.Category != category {
			if category != "" {
				fmt.Println()
			}
			fmt.Printf("%s:\n", p.Category)
			category = p.Category
		}
		fmt.Printf("  %-18s %s\n", p.Name, p.Description)
	}
	fmt.Println("\nUse 'cast profile NAME' for details.")
}

func showProfile(p *tape.Profile) {
	fmt.Printf("Profile: %s\n\n", p.Name)
	fmt.Printf("Category:    %s\n", p.Category)
	fmt.Printf("Description: %s\n", p.Description)
	fmt.Printf("Use case:    %s\n", p.UseCase)
	fmt.Printf("Rationale:   %s\n\n", p.Rationale)

	fmt.Printf("Waveform:      %s", p.Waveform)
	if p.Waveform == "trapezoid" {
		fmt.Printf(" (%d%% rise)", p.RisePct)
	}
	fmt.Println()
	fmt.Printf("Baud rate:     %d\n", p.Baud)
	fmt.Printf("Sample rate:   %d Hz\n", p.SampleRate)
	fmt.Printf("Amplitude:     %d\n", p.Amplitude)
	fmt.Printf("Leader timing: %.1fs / %.1fs (long/short)\n", p.LongSilence, p.ShortSilence)
	if p.LowPass {
		fmt.Printf("Low-pass:      enabled (%d Hz)\n", p.LowPassCutoff)
	} else {
		fmt.Printf("Low-pass:      disabled\n")
	}

	if verbose {
		fmt.Printf("\nExample:\n  cast convert input.cas output.wav --profile %s\n", p.Name)
	}
}
