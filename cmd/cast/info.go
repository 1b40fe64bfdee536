/*
DESCRIPTION
  info.go implements the cast info command, printing container statistics
  and the projected audio duration at default settings.

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

	"github.com/spf13/cobra"

	"github.com/ausocean/cas/container/cas"
	"github.com/ausocean/cas/tape"
)

var infoCmd = &cobra.Command{
	Use:                   "info FILE",
	Short:                 "Show container statistics",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := readContainer(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		var kinds [4]int
		var total int
		for i := range c.Files {
			kinds[c.Files[i].Kind]++
			total += c.Files[i].DataSize()
		}

		fmt.Printf("Files:       %d\n", len(c.Files))
		for _, k := range []cas.Kind{cas.ASCII, cas.Binary, cas.BASIC, cas.Custom} {
			if kinds[k] > 0 {
				fmt.Printf("  %-9s  %d\n", k, kinds[k])
			}
		}
		fmt.Printf("Data bytes:  %d\n", total)

		cfg := tape.DefaultConfig()
		est := cfg.Estimate(c)
		mins := int(est.Duration) / 60
		secs := int(est.Duration) % 60
		fmt.Printf("Audio (at %d baud, standard timing): %d:%02d (%.1f s), %d byte WAV\n",
			cfg.Baud, mins, secs, est.Duration, est.WAVBytes)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
