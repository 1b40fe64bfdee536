/*
NAME
  cue.go

DESCRIPTION
  cue.go emits the cue and LIST/adtl chunks carrying timeline markers.
  Each marker becomes one cue point plus one labl entry whose text is the
  category-prefixed label, so a player can filter markers by category.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wav

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// cuePointSize is the encoded byte length of one cue point entry.
const cuePointSize = 24

// Marker is a timeline bookmark captured at a sample position.
type Marker struct {
	ID       uint32
	Frame    uint32 // Sample offset into the data chunk.
	Category string // Category tag embedded at the start of the label.
	Label    string
}

// Text returns the labl chunk text for the marker: the category tag, a
// separator, then the label.
func (m Marker) Text() string {
	return m.Category + ": " + m.Label
}

// lablPayload returns the NUL-terminated, even-padded text bytes for the
// marker. The pad byte is counted in the chunk size so every emitted
// sub-chunk has even length.
func (m Marker) lablPayload() []byte {
	t := []byte(m.Text())
	t = append(t, 0)
	if len(t)%2 != 0 {
		t = append(t, 0)
	}
	return t
}

// MarkerChunkBytes returns the total byte size of the cue and LIST/adtl
// chunks that Close emits for the given markers, headers included. Zero
// when there are no markers.
func MarkerChunkBytes(markers []Marker) int {
	if len(markers) == 0 {
		return 0
	}
	n := 8 + 4 + len(markers)*cuePointSize // cue chunk
	n += 8 + 4                             // LIST header + "adtl"
	for _, m := range markers {
		n += 8 + 4 + len(m.lablPayload())
	}
	return n
}

// writeMarkerChunks appends the cue chunk and the LIST/adtl chunk after
// the data chunk, returning the number of bytes written.
func (w *Writer) writeMarkerChunks() (int64, error) {
	var buf bytes.Buffer

	// cue chunk: count then one fixed-size record per marker. The play
	// position and the sample offset both carry the frame; the data
	// chunk is unsegmented so chunk and block starts are zero.
	buf.WriteString("cue ")
	writeU32(&buf, uint32(4+len(w.markers)*cuePointSize))
	writeU32(&buf, uint32(len(w.markers)))
	for _, m := range w.markers {
		writeU32(&buf, m.ID)
		writeU32(&buf, m.Frame)
		buf.WriteString("data")
		writeU32(&buf, 0)
		writeU32(&buf, 0)
		writeU32(&buf, m.Frame)
	}

	// LIST/adtl chunk: one labl per cue id.
	var adtl bytes.Buffer
	adtl.WriteString("adtl")
	for _, m := range w.markers {
		p := m.lablPayload()
		adtl.WriteString("labl")
		writeU32(&adtl, uint32(4+len(p)))
		writeU32(&adtl, m.ID)
		adtl.Write(p)
	}
	buf.WriteString("LIST")
	writeU32(&buf, uint32(adtl.Len()))
	buf.Write(adtl.Bytes())

	n, err := w.ws.Write(buf.Bytes())
	if err != nil {
		return int64(n), errors.Wrap(err, "writing marker chunks")
	}
	return int64(n), nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
