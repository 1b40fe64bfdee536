/*
NAME
  cas.go

DESCRIPTION
  cas.go defines the typed model for MSX CAS cassette containers: the
  container itself, the logical files it holds and their data blocks.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package cas implements parsing and inspection of MSX CAS cassette
// container files. A CAS container concatenates a small number of typed
// logical files, each record delimited by a fixed 8-byte magic sequence.
package cas

import (
	"bytes"
	"strings"
)

// Magic is the 8-byte sequence delimiting tape records in a CAS container.
var Magic = []byte{0x1F, 0xA6, 0xDE, 0xBA, 0xCC, 0x13, 0x7D, 0x74}

// Type marker bytes. A file header carries ten copies of one of these
// directly after the magic; any other 10-byte run means a custom record.
const (
	markerASCII  = 0xEA
	markerBinary = 0xD0
	markerBASIC  = 0xD3

	markerLen = 10 // Length of the type marker run.
	nameLen   = 6  // Length of the file name field.
)

// Kind enumerates the logical file types found on MSX cassettes.
type Kind int

const (
	ASCII Kind = iota
	Binary
	BASIC
	Custom
)

// String returns the conventional lower-case name for a file kind.
func (k Kind) String() string {
	switch k {
	case ASCII:
		return "ascii"
	case Binary:
		return "binary"
	case BASIC:
		return "basic"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Ext returns the conventional on-disk file extension for a file kind.
func (k Kind) Ext() string {
	switch k {
	case ASCII:
		return "asc"
	case Binary:
		return "bin"
	case BASIC:
		return "bas"
	default:
		return "dat"
	}
}

// marker returns the type marker byte for a non-custom kind.
func (k Kind) marker() byte {
	switch k {
	case ASCII:
		return markerASCII
	case Binary:
		return markerBinary
	default:
		return markerBASIC
	}
}

// HeaderBytes returns the 16-byte file-record header for a non-custom
// file, i.e. the 10-byte type marker run followed by the 6-byte name.
// It returns nil for custom files, which carry no header.
func (f *File) HeaderBytes() []byte {
	if f.Kind == Custom {
		return nil
	}
	h := make([]byte, markerLen+nameLen)
	for i := 0; i < markerLen; i++ {
		h[i] = f.Kind.marker()
	}
	copy(h[markerLen:], f.Name[:])
	return h
}

// AddressTriple holds the little-endian load, end and exec addresses that
// prefix a binary payload. The end address is inclusive.
type AddressTriple struct {
	Load uint16
	End  uint16
	Exec uint16
}

// DataBlock is the unit separated by successive occurrences of the magic.
// Data is the raw byte range from the end of the block's magic (and, for
// the first binary block, the end of the address triple) up to the next
// magic or end of input. Offset is the block's file offset, kept for
// diagnostics.
type DataBlock struct {
	Offset int
	Data   []byte
}

// File is one logical file recovered from a container.
type File struct {
	// Kind tags the record variant. The 10-byte marker run is not stored;
	// it is redundant with the tag.
	Kind Kind

	// Name is the 6-byte name field from the file-record header, padded
	// with trailing ASCII spaces. Zero for custom files.
	Name [nameLen]byte

	// Addr is the address triple parsed off the front of a binary
	// payload. Nil for every other kind.
	Addr *AddressTriple

	// Blocks holds the file's data blocks in tape order.
	Blocks []DataBlock

	// Offset is the file offset of the file's first magic.
	Offset int
}

// NameString returns the file name with trailing spaces trimmed.
func (f *File) NameString() string {
	return strings.TrimRight(string(f.Name[:]), " ")
}

// DataSize returns the number of payload bytes across all data blocks,
// including the address triple for binary files.
func (f *File) DataSize() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Data)
	}
	if f.Addr != nil {
		n += 6
	}
	return n
}

// Payload returns the file's data blocks concatenated, without the
// address triple.
func (f *File) Payload() []byte {
	var buf bytes.Buffer
	for _, b := range f.Blocks {
		buf.Write(b.Data)
	}
	return buf.Bytes()
}

// Container is an ordered sequence of logical files parsed from a byte
// slice. Iteration order equals file-offset order. A container is created
// once by Parse and immutable thereafter.
type Container struct {
	Files []File
}
