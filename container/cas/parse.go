/*
NAME
  parse.go

DESCRIPTION
  parse.go implements the single-pass CAS container scanner. It walks the
  byte slice record by record, dispatching on the 10-byte type marker that
  follows each magic, and assembles a Container of typed files.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package cas

import (
	"bytes"

	"github.com/pkg/errors"
)

// Parse error sentinels. Errors returned by Parse wrap one of these with
// offset context.
var (
	ErrMalformedHeader = errors.New("malformed file header")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
)

// asciiEOF is the in-band end-of-file marker terminating an ASCII stream.
const asciiEOF = 0x1A

// Parse scans data and returns the container of logical files it holds.
//
// Parsing an empty input yields an empty container. Trailing bytes after
// the last recognised file that do not begin with a magic are ignored. On
// the first sub-record that cannot be parsed, Parse stops and returns the
// container holding everything successfully parsed before that point
// together with a non-nil error. The returned container is always
// non-nil, and block payloads borrow from data.
func Parse(data []byte) (*Container, error) {
	c := &Container{}
	cur := &cursor{data: data}

	for cur.atMagic() {
		f, err := parseFile(cur)
		if err != nil {
			return c, err
		}
		c.Files = append(c.Files, f)
	}
	return c, nil
}

// parseFile parses one logical file starting at the magic under the
// cursor.
func parseFile(cur *cursor) (File, error) {
	f := File{Offset: cur.pos}
	cur.consumeMagic()

	// A recognised 10-byte marker run means a typed file with a header;
	// anything else, including a short tail, is a custom record.
	f.Kind = peekKind(cur)
	if f.Kind == Custom {
		parseCustom(cur, &f)
		return f, nil
	}

	hdr, ok := cur.take(markerLen + nameLen)
	if !ok {
		return f, errors.Wrapf(ErrMalformedHeader, "truncated file header at offset %d", cur.pos)
	}
	copy(f.Name[:], hdr[markerLen:])

	var err error
	switch f.Kind {
	case ASCII:
		err = parseASCII(cur, &f)
	case Binary:
		err = parseBinary(cur, &f)
	case BASIC:
		err = parseBASIC(cur, &f)
	}
	return f, err
}

// peekKind inspects the 10 bytes after the file's magic and reports the
// file kind they announce. An unknown or truncated marker run is custom.
func peekKind(cur *cursor) Kind {
	if cur.remaining() < markerLen {
		return Custom
	}
	run := cur.data[cur.pos : cur.pos+markerLen]
	for _, k := range []Kind{ASCII, Binary, BASIC} {
		m := k.marker()
		ok := true
		for _, b := range run {
			if b != m {
				ok = false
				break
			}
		}
		if ok {
			return k
		}
	}
	return Custom
}

// parseASCII reads 256-byte logical blocks, each preceded by its own
// magic, until one contains the in-band EOF marker. The raw byte range of
// each block is kept intact, EOF marker and padding included.
func parseASCII(cur *cursor, f *File) error {
	for {
		if !cur.consumeMagic() {
			return errors.Wrapf(ErrUnexpectedEOF, "ascii file %q missing EOF marker at offset %d", f.NameString(), cur.pos)
		}
		blk := DataBlock{Offset: cur.pos}
		end := cur.nextMagic()
		blk.Data, _ = cur.take(end - cur.pos)
		f.Blocks = append(f.Blocks, blk)

		if bytes.IndexByte(blk.Data, asciiEOF) >= 0 {
			return nil
		}
		if cur.remaining() == 0 {
			return errors.Wrapf(ErrUnexpectedEOF, "ascii file %q missing EOF marker at offset %d", f.NameString(), cur.pos)
		}
	}
}

// parseBinary reads the single data block of a binary file: a 6-byte
// little-endian address triple followed by payload bytes running to the
// next magic. The triple's end-load span is treated as unreliable; the
// payload boundary is always the next magic or end of input.
func parseBinary(cur *cursor, f *File) error {
	if !cur.consumeMagic() {
		return errors.Wrapf(ErrUnexpectedEOF, "binary file %q missing data block at offset %d", f.NameString(), cur.pos)
	}
	var addr AddressTriple
	var ok bool
	if addr.Load, ok = cur.readUint16(); !ok {
		return errors.Wrapf(ErrMalformedHeader, "truncated address triple at offset %d", cur.pos)
	}
	if addr.End, ok = cur.readUint16(); !ok {
		return errors.Wrapf(ErrMalformedHeader, "truncated address triple at offset %d", cur.pos)
	}
	if addr.Exec, ok = cur.readUint16(); !ok {
		return errors.Wrapf(ErrMalformedHeader, "truncated address triple at offset %d", cur.pos)
	}
	f.Addr = &addr

	blk := DataBlock{Offset: cur.pos}
	end := cur.nextMagic()
	blk.Data, _ = cur.take(end - cur.pos)
	f.Blocks = []DataBlock{blk}
	return nil
}

// parseBASIC reads the single data block of a tokenized BASIC file: raw
// payload bytes to the next magic, with no embedded address triple.
func parseBASIC(cur *cursor, f *File) error {
	if !cur.consumeMagic() {
		return errors.Wrapf(ErrUnexpectedEOF, "basic file %q missing data block at offset %d", f.NameString(), cur.pos)
	}
	blk := DataBlock{Offset: cur.pos}
	end := cur.nextMagic()
	blk.Data, _ = cur.take(end - cur.pos)
	f.Blocks = []DataBlock{blk}
	return nil
}

// parseCustom reads an uninterpreted record: everything from the end of
// the magic, marker run included, to the next magic or end of input.
func parseCustom(cur *cursor, f *File) {
	blk := DataBlock{Offset: cur.pos}
	end := cur.nextMagic()
	blk.Data, _ = cur.take(end - cur.pos)
	f.Blocks = []DataBlock{blk}
}
