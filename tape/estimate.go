/*
NAME
  estimate.go

DESCRIPTION
  estimate.go computes expected audio duration and WAV byte size for a
  container and a parameter bundle, in closed form, without generating a
  single sample.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tape

import (
	"fmt"
	"math"

	"github.com/ausocean/cas/codec/wav"
	"github.com/ausocean/cas/container/cas"
)

// Estimate is the projected size of a modulation run.
type Estimate struct {
	// Duration is the audio length in seconds.
	Duration float64

	// WAVBytes is the file size of the header plus data chunk, ignoring
	// marker chunks.
	WAVBytes int64

	// Markers is the number of cue points that would be emitted, and
	// MarkerBytes the byte size of the resulting cue and LIST chunks.
	// Both are zero when markers are disabled.
	Markers     int
	MarkerBytes int
}

// Estimate projects the duration and output size of modulating c with
// this config. One bit cell lasts 1/baud seconds for either symbol, so a
// byte frame is 11/baud and a sync run of N bits is N/baud.
func (c Config) Estimate(cont *cas.Container) Estimate {
	tBit := 1 / float64(c.Baud)
	tByte := bitsPerByte * tBit

	var d float64
	for i := range cont.Files {
		f := &cont.Files[i]
		if f.Kind != cas.Custom {
			d += c.LongSilence + longSyncBits*tBit + 16*tByte
		}
		for b := range f.Blocks {
			n := len(f.Blocks[b].Data)
			if b == 0 && f.Addr != nil {
				n += 6
			}
			d += c.ShortSilence + shortSyncBits*tBit + float64(n)*tByte
		}
	}

	est := Estimate{
		Duration: d,
		WAVBytes: 44 + int64(math.Ceil(d*float64(c.SampleRate)))*int64(c.BitDepth/8)*int64(c.Channels),
	}
	if c.Markers {
		ms := c.enumerateMarkers(cont)
		est.Markers = len(ms)
		est.MarkerBytes = wav.MarkerChunkBytes(ms)
	}
	return est
}

// enumerateMarkers lists the markers a modulation run would emit, with
// the exact label texts, so chunk sizes come out exact. Frames are left
// zero; they do not affect size.
func (c Config) enumerateMarkers(cont *cas.Container) []wav.Marker {
	var ms []wav.Marker
	add := func(category, label string) {
		ms = append(ms, wav.Marker{ID: uint32(len(ms) + 1), Category: category, Label: label})
	}
	for i := range cont.Files {
		f := &cont.Files[i]
		index := i + 1
		add(CategoryStructure, fileLabel(f, index))
		if f.Kind != cas.Custom {
			add(CategoryDetail, silenceLabel(index, "long", c.LongSilence))
			add(CategoryDetail, fmt.Sprintf("file %d: header sync", index))
			add(CategoryDetail, fmt.Sprintf("file %d: file header", index))
		}
		for b := range f.Blocks {
			add(CategoryDetail, silenceLabel(index, "short", c.ShortSilence))
			add(CategoryDetail, fmt.Sprintf("file %d: block %d sync", index, b+1))
			add(CategoryDetail, blockLabel(f, index, b))
		}
	}
	return ms
}
