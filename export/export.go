/*
NAME
  export.go

DESCRIPTION
  export.go writes logical files parsed from a CAS container back to disk
  in the conventional on-disk layouts: plain ASCII, tokenized BASIC body,
  and BSAVE binary with optional MSX-DOS disk markers.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package export writes parsed CAS files to disk in their conventional
// on-disk layouts.
package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ausocean/cas/container/cas"
)

// MSX-DOS disk-format marker bytes, prepended and appended to BSAVE
// binaries when disk format is requested.
const (
	diskStartMarker = 0xFE
	diskEndMarker   = 0xFF
)

// asciiEOF terminates an ASCII block in-band; it is not retained on disk.
const asciiEOF = 0x1A

// ErrExists is returned when the target file exists and Force is not set.
var ErrExists = errors.New("file exists")

// Exporter writes container files into a directory.
type Exporter struct {
	// Dir is the output directory. Empty means the current directory.
	Dir string

	// Force permits overwriting existing files.
	Force bool

	// DiskFormat adds the MSX-DOS 0xFE/0xFF markers around binary files.
	DiskFormat bool
}

// ExportAll writes every file of the container, returning on the first
// failure.
func (e *Exporter) ExportAll(c *cas.Container) error {
	for i := range c.Files {
		if err := e.ExportFile(&c.Files[i], i+1); err != nil {
			return err
		}
	}
	return nil
}

// ExportFile writes one file under its derived name; index is the file's
// one-based position in the container. It refuses to overwrite an
// existing file unless Force is set.
func (e *Exporter) ExportFile(f *cas.File, index int) error {
	path := filepath.Join(e.Dir, Filename(f, index))

	if !e.Force {
		if _, err := os.Stat(path); err == nil {
			return errors.Wrap(ErrExists, path)
		}
	}

	data := e.encode(f)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "exporting %s", path)
	}
	return nil
}

// encode renders the file's on-disk byte layout.
func (e *Exporter) encode(f *cas.File) []byte {
	var buf bytes.Buffer
	switch f.Kind {
	case cas.ASCII:
		// Block bytes with each block truncated at its first EOF marker;
		// the marker itself is not retained.
		for _, blk := range f.Blocks {
			d := blk.Data
			if i := bytes.IndexByte(d, asciiEOF); i >= 0 {
				d = d[:i]
			}
			buf.Write(d)
		}

	case cas.Binary:
		if e.DiskFormat {
			buf.WriteByte(diskStartMarker)
		}
		writeAddr(&buf, f.Addr)
		buf.Write(f.Payload())
		if e.DiskFormat {
			buf.WriteByte(diskEndMarker)
		}

	case cas.BASIC:
		// Tokenized body as held on tape; no leading marker byte.
		writeAddr(&buf, f.Addr)
		buf.Write(f.Payload())

	default:
		buf.Write(f.Payload())
	}
	return buf.Bytes()
}

// writeAddr appends the 6-byte little-endian address triple when present.
func writeAddr(buf *bytes.Buffer, a *cas.AddressTriple) {
	if a == nil {
		return
	}
	var b [6]byte
	binary.LittleEndian.PutUint16(b[0:2], a.Load)
	binary.LittleEndian.PutUint16(b[2:4], a.End)
	binary.LittleEndian.PutUint16(b[4:6], a.Exec)
	buf.Write(b[:])
}

// Filename derives the output name for a file: <index>-<name>.<ext> with
// trailing spaces trimmed from the name field, or <index>.<ext> when the
// name is empty or the file is custom, which carries no name.
func Filename(f *cas.File, index int) string {
	name := f.NameString()
	if name == "" || f.Kind == cas.Custom {
		return fmt.Sprintf("%d.%s", index, f.Kind.Ext())
	}
	return fmt.Sprintf("%d-%s.%s", index, name, f.Kind.Ext())
}
