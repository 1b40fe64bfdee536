/*
DESCRIPTION
  list.go implements the cast list command, printing the files held in a
  CAS container, optionally with per-block detail.

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

var (
	listExtended bool
	listIndex    int
)

var listCmd = &cobra.Command{
	Use:                   "list FILE",
	Short:                 "List files in a CAS container",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		if listIndex != 0 && !listExtended {
			fmt.Fprintln(os.Stderr, "-i/--index requires -e/--extended")
			os.Exit(1)
		}

		c, err := readContainer(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		for i := range c.Files {
			if listIndex != 0 && listIndex != i+1 {
				continue
			}
			printFile(&c.Files[i], i+1)
		}
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listExtended, "extended", "e", false, "show sizes, blocks and addresses")
	listCmd.Flags().IntVarP(&listIndex, "index", "i", 0, "show only the file at this 1-based index")
	rootCmd.AddCommand(listCmd)
}

func printFile(f *cas.File, index int) {
	name := f.NameString()
	if f.Kind == cas.Custom {
		name = "-"
	}
	fmt.Printf("%2d. %-6s %-8q %6d bytes  %d block(s)\n", index, f.Kind, name, f.DataSize(), len(f.Blocks))

	if !listExtended {
		return
	}
	if f.Addr != nil {
		fmt.Printf("    load 0x%04X  end 0x%04X  exec 0x%04X\n", f.Addr.Load, f.Addr.End, f.Addr.Exec)
	}
	for b, blk := range f.Blocks {
		fmt.Printf("    block %d: offset 0x%08X, %d bytes\n", b+1, blk.Offset, len(blk.Data))
	}
}
