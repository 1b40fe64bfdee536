/*
NAME
  cursor.go

DESCRIPTION
  cursor.go provides a position-tracked, bounds-checked read cursor over
  the borrowed byte slice being parsed.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

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
	"encoding/binary"
)

// cursor is a position-tracked view over an immutable byte slice. All
// operations are bounds checked; a failed read reports ok=false and
// leaves the position unchanged, never returning partial data.
type cursor struct {
	data []byte
	pos  int
}

// remaining returns the number of unread bytes.
func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

// atMagic reports whether the bytes at the cursor are the record magic.
func (c *cursor) atMagic() bool {
	if c.remaining() < len(Magic) {
		return false
	}
	return bytes.Equal(c.data[c.pos:c.pos+len(Magic)], Magic)
}

// consumeMagic advances past the magic at the cursor, reporting whether
// one was present.
func (c *cursor) consumeMagic() bool {
	if !c.atMagic() {
		return false
	}
	c.pos += len(Magic)
	return true
}

// take consumes n bytes and returns them as a sub-slice of the underlying
// data.
func (c *cursor) take(n int) ([]byte, bool) {
	if n < 0 || c.remaining() < n {
		return nil, false
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, true
}

// readUint16 consumes a little-endian 16-bit value.
func (c *cursor) readUint16() (uint16, bool) {
	if c.remaining() < 2 {
		return 0, false
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, true
}

// nextMagic returns the offset of the next occurrence of the magic at or
// after the cursor, or len(data) when there is none. The search is
// byte-exact; magics are not required to be 8-byte aligned. The cursor
// position is not moved.
func (c *cursor) nextMagic() int {
	i := bytes.Index(c.data[c.pos:], Magic)
	if i < 0 {
		return len(c.data)
	}
	return c.pos + i
}
