/*
NAME
  modulator.go

DESCRIPTION
  modulator.go turns parsed CAS containers into the MSX BIOS cassette
  signal: silence, sync pulse trains, serial-framed bytes and per-record
  headers, appended to a WAV writer as FSK-modulated tone.

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

package tape

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/ausocean/cas/codec/pcm"
	"github.com/ausocean/cas/codec/wav"
	"github.com/ausocean/cas/container/cas"
)

// Marker categories embedded at the start of each cue label, so player
// UIs can filter the timeline. Structure markers outline the tape; detail
// markers mark silences, syncs and blocks within a file. Verbose is
// reserved for byte-level markers, which the modulator does not emit.
const (
	CategoryStructure = "STRUCTURE"
	CategoryDetail    = "DETAIL"
	CategoryVerbose   = "VERBOSE"
)

// Modulator writes the MSX cassette encoding of bits, bytes and blocks
// onto a WAV writer. The two carrier cycles are synthesised once at
// construction and replayed for every bit.
type Modulator struct {
	w   *wav.Writer
	cfg Config

	// bit0 is one cycle at Baud Hz; bit1 one cycle at 2×Baud Hz, written
	// twice per 1-bit so both symbols occupy one bit cell.
	bit0 []byte
	bit1 []byte
}

// NewModulator validates cfg, synthesises the two carrier cycles and
// attaches the low-pass filter to the writer when enabled.
func NewModulator(w *wav.Writer, cfg Config) (*Modulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	wf := cfg.waveform()
	bit0, err := pcm.Cycle(wf, cfg.Baud)
	if err != nil {
		return nil, errors.Wrap(err, "synthesising 0-bit cycle")
	}
	bit1, err := pcm.Cycle(wf, 2*cfg.Baud)
	if err != nil {
		return nil, errors.Wrap(err, "synthesising 1-bit cycle")
	}

	if cfg.LowPass {
		lp, err := pcm.NewLowPass(cfg.LowPassCutoff, cfg.SampleRate)
		if err != nil {
			return nil, errors.Wrap(err, "creating low-pass filter")
		}
		w.SetLowPass(lp)
	}

	return &Modulator{w: w, cfg: cfg, bit0: bit0, bit1: bit1}, nil
}

// WriteBit emits one bit cell: a 0-bit is one cycle at the baud
// frequency, a 1-bit two cycles at twice the baud frequency.
func (m *Modulator) WriteBit(bit uint) error {
	if bit == 0 {
		return m.w.WriteSamples(m.bit0)
	}
	if err := m.w.WriteSamples(m.bit1); err != nil {
		return err
	}
	return m.w.WriteSamples(m.bit1)
}

// WriteByte emits one serial frame: a 0 start bit, the eight data bits
// LSB-first, then two 1 stop bits.
func (m *Modulator) WriteByte(b byte) error {
	if err := m.WriteBit(0); err != nil {
		return err
	}
	for i := 0; i < 8; i++ {
		if err := m.WriteBit(uint(b>>i) & 1); err != nil {
			return err
		}
	}
	if err := m.WriteBit(1); err != nil {
		return err
	}
	return m.WriteBit(1)
}

// WriteBytes emits each byte of p as a serial frame.
func (m *Modulator) WriteBytes(p []byte) error {
	for _, b := range p {
		if err := m.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// WriteSync emits n consecutive 1-bits, the carrier run a decoder locks
// its bit clock against.
func (m *Modulator) WriteSync(n int) error {
	for i := 0; i < n; i++ {
		if err := m.WriteBit(1); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile emits the complete tape program for one logical file. index
// is the file's one-based position in the container, used for markers
// and logging.
func (m *Modulator) WriteFile(f *cas.File, index int) error {
	m.marker(CategoryStructure, fileLabel(f, index))
	m.log("modulating file", "index", index, "kind", f.Kind.String(), "name", f.NameString(), "bytes", f.DataSize())

	if f.Kind != cas.Custom {
		m.marker(CategoryDetail, silenceLabel(index, "long", m.cfg.LongSilence))
		if err := m.w.WriteSilence(m.cfg.LongSilence); err != nil {
			return err
		}
		m.marker(CategoryDetail, fmt.Sprintf("file %d: header sync", index))
		if err := m.WriteSync(longSyncBits); err != nil {
			return err
		}
		m.marker(CategoryDetail, fmt.Sprintf("file %d: file header", index))
		if err := m.WriteBytes(f.HeaderBytes()); err != nil {
			return err
		}
	}

	for i, blk := range f.Blocks {
		m.marker(CategoryDetail, silenceLabel(index, "short", m.cfg.ShortSilence))
		if err := m.w.WriteSilence(m.cfg.ShortSilence); err != nil {
			return err
		}
		m.marker(CategoryDetail, fmt.Sprintf("file %d: block %d sync", index, i+1))
		if err := m.WriteSync(shortSyncBits); err != nil {
			return err
		}

		m.marker(CategoryDetail, blockLabel(f, index, i))
		if i == 0 && f.Addr != nil {
			var addr [6]byte
			binary.LittleEndian.PutUint16(addr[0:2], f.Addr.Load)
			binary.LittleEndian.PutUint16(addr[2:4], f.Addr.End)
			binary.LittleEndian.PutUint16(addr[4:6], f.Addr.Exec)
			if err := m.WriteBytes(addr[:]); err != nil {
				return err
			}
		}
		if err := m.WriteBytes(blk.Data); err != nil {
			return err
		}
	}
	return nil
}

// marker records a cue on the writer when marker emission is enabled.
func (m *Modulator) marker(category, label string) {
	if m.cfg.Markers {
		m.w.AddMarker(category, label)
	}
}

// log forwards to the config logger when one is set.
func (m *Modulator) log(msg string, args ...interface{}) {
	if m.cfg.Logger != nil {
		m.cfg.Logger.Debug(msg, args...)
	}
}

// Convert modulates every file of the container, in container order, onto
// w. The caller owns the writer and must close it; Convert writes no
// trailer of its own.
func Convert(c *cas.Container, w *wav.Writer, cfg Config) error {
	m, err := NewModulator(w, cfg)
	if err != nil {
		return err
	}
	for i := range c.Files {
		if err := m.WriteFile(&c.Files[i], i+1); err != nil {
			return errors.Wrapf(err, "modulating file %d", i+1)
		}
	}
	return nil
}

// Label constructors are shared with the estimator so marker chunk sizes
// can be computed without generating samples.

func fileLabel(f *cas.File, index int) string {
	if f.Kind == cas.Custom {
		return fmt.Sprintf("file %d: custom (%d bytes)", index, f.DataSize())
	}
	return fmt.Sprintf("file %d: %s %q (%d bytes)", index, f.Kind, f.NameString(), f.DataSize())
}

func silenceLabel(index int, kind string, seconds float64) string {
	return fmt.Sprintf("file %d: %s silence %.1fs", index, kind, seconds)
}

func blockLabel(f *cas.File, index, block int) string {
	n := len(f.Blocks[block].Data)
	if block == 0 && f.Addr != nil {
		n += 6
	}
	return fmt.Sprintf("file %d: block %d data (%d bytes)", index, block+1, n)
}
