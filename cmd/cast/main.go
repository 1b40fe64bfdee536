/*
DESCRIPTION
  cast is a command line toolkit for MSX CAS cassette archives: listing
  and exporting their contents, auditing them for suspicious bytes, and
  converting them to cassette tape WAV audio a real MSX can load.

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

// Package main is the cast CLI, a consumer of the cas core packages.
package main

import (
	"fmt"
	"os"

	"github.com/ausocean/utils/logging"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/cas/container/cas"
)

// Logging related constants.
const (
	logPath      = "cast.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 2
	logMaxAge    = 28 // days
	logSuppress  = true
)

var (
	log     logging.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cast",
	Short: "MSX CAS cassette archive toolkit",
	Long: `cast parses MSX CAS cassette containers, exports their logical files,
audits them for disk-format artefacts and converts them to cassette
tape WAV audio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level int8 = logging.Info
		if verbose {
			level = logging.Debug
		}
		log = logging.New(level, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		}, logSuppress)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readContainer loads and parses a CAS file. A parse error is reported
// and the partial container returned; everything parsed before the error
// remains usable.
func readContainer(path string) (*cas.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := cas.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; continuing with %d parsed file(s)\n", err, len(c.Files))
		log.Warning("partial parse", "path", path, "error", err.Error(), "files", len(c.Files))
	}
	log.Debug("parsed container", "path", path, "bytes", len(data), "files", len(c.Files))
	return c, nil
}
