/*
DESCRIPTION
  doctor.go implements the cast doctor command, running the integrity
  audit over a container and reporting disk-format artefacts found in
  tape payloads.

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
)

var doctorCmd = &cobra.Command{
	Use:                   "doctor FILE",
	Short:                 "Audit a container for suspicious bytes",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := readContainer(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		issues := cas.Audit(c)
		if len(issues) == 0 {
			fmt.Println("no issues found")
			return
		}
		for _, issue := range issues {
			fmt.Printf("file %d at offset 0x%08X: %s\n", issue.FileIndex+1, issue.Offset, issue.Desc)
		}
		fmt.Printf("\nfound %d issue(s)\n", len(issues))
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
