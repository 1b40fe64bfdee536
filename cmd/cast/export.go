/*
DESCRIPTION
  export.go implements the cast export command, writing container files
  to disk in their conventional on-disk layouts.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

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

	"github.com/ausocean/cas/export"
)

var (
	exportIndex      int
	exportDir        string
	exportForce      bool
	exportDiskFormat bool
)

var exportCmd = &cobra.Command{
	Use:                   "export FILE",
	Short:                 "Export file(s) from a container",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := readContainer(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if exportDir != "" {
			if err := os.MkdirAll(exportDir, 0755); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		e := &export.Exporter{Dir: exportDir, Force: exportForce, DiskFormat: exportDiskFormat}

		if exportIndex > 0 {
			if exportIndex > len(c.Files) {
				fmt.Fprintf(os.Stderr, "index %d out of range (1-%d)\n", exportIndex, len(c.Files))
				os.Exit(1)
			}
			f := &c.Files[exportIndex-1]
			if err := e.ExportFile(f, exportIndex); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("exported %s\n", export.Filename(f, exportIndex))
			return
		}

		if err := e.ExportAll(c); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := range c.Files {
			fmt.Printf("exported %s\n", export.Filename(&c.Files[i], i+1))
		}
	},
}

func init() {
	exportCmd.Flags().IntVarP(&exportIndex, "index", "i", 0, "export only the file at this 1-based index")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default: current directory)")
	exportCmd.Flags().BoolVarP(&exportDiskFormat, "disk-format", "D", false, "add MSX-DOS disk markers (0xFE/0xFF) around binary files")
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "overwrite existing files")
	rootCmd.AddCommand(exportCmd)
}
