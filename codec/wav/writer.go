/*
NAME
  writer.go

DESCRIPTION
  writer.go implements a streaming RIFF/WAVE PCM writer. The writer emits
  a header with placeholder sizes, appends samples as they are produced,
  and back-patches the RIFF and data chunk sizes on close. Cue point
  markers accumulated during writing are emitted as cue and LIST/adtl
  chunks after the data chunk.

AUTHOR
  David Sutton <davidsutton@ausocean.org>
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package wav provides streaming RIFF/WAVE PCM encoding with optional cue
// point markers.
package wav

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/ausocean/cas/codec/pcm"
)

// PCMFormat is the fmt chunk audio format value for linear PCM.
const PCMFormat = 1

// headerSize is the byte length of the RIFF, fmt and data chunk headers
// emitted before any samples.
const headerSize = 44

// Offsets of the size fields back-patched on close.
const (
	riffSizeOffset = 4
	dataSizeOffset = 40
)

var (
	errInvalidRate      = errors.New("sample rate must be a positive multiple of 1200")
	errInvalidChannels  = errors.New("channels must be 1 or 2")
	errInvalidBitDepth  = errors.New("bit depth must be 8 or 16")
	errInvalidAmplitude = errors.New("amplitude out of range for bit depth")

	// ErrSticky is wrapped by writes attempted after an earlier failure.
	ErrSticky = errors.New("writer failed earlier")
)

// Format describes the PCM layout of the output file.
type Format struct {
	SampleRate int
	BitDepth   int // 8 or 16.
	Channels   int // 1 or 2; stereo duplicates the mono signal.
	Amplitude  int // Peak amplitude: 1..127 for 8-bit, 1..255 for 16-bit.
}

// Validate reports the first invalid field of the format, if any.
func (f Format) Validate() error {
	if f.SampleRate < 1200 || f.SampleRate > 192000 || f.SampleRate%1200 != 0 {
		return errors.Wrapf(errInvalidRate, "got %d", f.SampleRate)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return errors.Wrapf(errInvalidChannels, "got %d", f.Channels)
	}
	if f.BitDepth != 8 && f.BitDepth != 16 {
		return errors.Wrapf(errInvalidBitDepth, "got %d", f.BitDepth)
	}
	max := 127
	if f.BitDepth == 16 {
		max = 255
	}
	if f.Amplitude < 1 || f.Amplitude > max {
		return errors.Wrapf(errInvalidAmplitude, "got %d, limit %d", f.Amplitude, max)
	}
	return nil
}

// bytesPerFrame returns the output bytes per mono source frame.
func (f Format) bytesPerFrame() int {
	return f.BitDepth / 8 * f.Channels
}

// Writer streams PCM samples into a RIFF/WAVE file. Input samples are
// always mono unsigned 8-bit frames; the writer widens to 16 bits and
// duplicates to stereo as the format requires. Any I/O error is sticky:
// subsequent writes fail fast and Close still attempts the back-patch.
type Writer struct {
	ws      io.WriteSeeker
	format  Format
	frames  uint32
	lp      *pcm.LowPass
	markers []Marker
	scratch []byte
	err     error
}

// NewWriter emits the RIFF, fmt and data headers with placeholder sizes
// onto ws and returns a writer appending to it.
func NewWriter(ws io.WriteSeeker, f Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	w := &Writer{ws: ws, format: f}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

// Create creates or truncates the file at path and returns a writer on
// it. Close closes the underlying file.
func Create(path string, f Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	fd, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path)
	}
	w, err := NewWriter(fd, f)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return w, nil
}

// writeHeader emits the canonical 44-byte RIFF/WAVE/PCM preamble. The
// RIFF and data sizes are placeholders until Close.
func (w *Writer) writeHeader() error {
	f := w.format
	h := make([]byte, headerSize)
	copy(h[0:4], "RIFF")
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], PCMFormat)
	binary.LittleEndian.PutUint16(h[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(f.SampleRate*f.bytesPerFrame()))
	binary.LittleEndian.PutUint16(h[32:34], uint16(f.bytesPerFrame()))
	binary.LittleEndian.PutUint16(h[34:36], uint16(f.BitDepth))
	copy(h[36:40], "data")
	_, err := w.ws.Write(h)
	if err != nil {
		w.err = err
	}
	return errors.Wrap(err, "writing wav header")
}

// SetLowPass attaches a low-pass filter applied to waveform samples
// passed to WriteSamples. Silence bypasses the filter; silence is defined
// as the centre value.
func (w *Writer) SetLowPass(lp *pcm.LowPass) {
	w.lp = lp
}

// Format returns the writer's PCM format.
func (w *Writer) Format() Format {
	return w.format
}

// Frames returns the number of mono frames written so far, which is the
// sample position markers are recorded at.
func (w *Writer) Frames() uint32 {
	return w.frames
}

// Err returns the writer's sticky error, if any.
func (w *Writer) Err() error {
	return w.err
}

// WriteSamples appends mono unsigned 8-bit frames to the data chunk,
// applying the attached low-pass filter and widening to the output
// format.
func (w *Writer) WriteSamples(mono []byte) error {
	if w.err != nil {
		return errors.Wrap(ErrSticky, w.err.Error())
	}
	if len(mono) == 0 {
		return nil
	}

	// Filter a copy; callers reuse their cycle buffers.
	src := mono
	if w.lp != nil {
		src = append([]byte(nil), mono...)
		w.lp.Filter(src)
	}
	return w.writeFrames(src)
}

// WriteSilence appends ⌊seconds·rate⌋ frames of the centre value.
func (w *Writer) WriteSilence(seconds float64) error {
	if w.err != nil {
		return errors.Wrap(ErrSticky, w.err.Error())
	}
	if seconds <= 0 {
		return nil
	}
	n := int(seconds * float64(w.format.SampleRate))
	const chunk = 4096
	buf := make([]byte, min(n, chunk))
	for i := range buf {
		buf[i] = pcm.Centre
	}
	for n > 0 {
		m := min(n, chunk)
		if err := w.writeFrames(buf[:m]); err != nil {
			return err
		}
		n -= m
	}
	return nil
}

// writeFrames encodes mono frames into the output sample layout and
// appends them.
func (w *Writer) writeFrames(mono []byte) error {
	bpf := w.format.bytesPerFrame()
	need := len(mono) * bpf
	if cap(w.scratch) < need {
		w.scratch = make([]byte, need)
	}
	out := w.scratch[:need]

	switch {
	case w.format.BitDepth == 8 && w.format.Channels == 1:
		copy(out, mono)
	case w.format.BitDepth == 8:
		for i, s := range mono {
			out[2*i] = s
			out[2*i+1] = s
		}
	default:
		for i, s := range mono {
			v := uint16((int(s) - pcm.Centre) << 8)
			for ch := 0; ch < w.format.Channels; ch++ {
				binary.LittleEndian.PutUint16(out[(i*w.format.Channels+ch)*2:], v)
			}
		}
	}

	if _, err := w.ws.Write(out); err != nil {
		w.err = err
		return errors.Wrap(err, "writing samples")
	}
	w.frames += uint32(len(mono))
	return nil
}

// AddMarker records a cue point at the current sample position. The
// marker is written out as part of the cue and adtl chunks on Close.
func (w *Writer) AddMarker(category, label string) {
	w.markers = append(w.markers, Marker{
		ID:       uint32(len(w.markers) + 1),
		Frame:    w.frames,
		Category: category,
		Label:    label,
	})
}

// Close finalises the file: it appends the cue and LIST/adtl chunks when
// markers were recorded, back-patches the RIFF and data chunk sizes, and
// closes the underlying writer when it implements io.Closer, as the file
// opened by Create does. Close back-patches even
// after a write error, so a partially written file still carries correct
// sizes for the samples that made it to disk.
func (w *Writer) Close() error {
	dataSize := int64(w.frames) * int64(w.format.bytesPerFrame())

	var trailer int64
	if len(w.markers) > 0 && w.err == nil {
		n, err := w.writeMarkerChunks()
		if err == nil {
			trailer = n
		} else if w.err == nil {
			w.err = err
		}
	}

	patchErr := w.patchSizes(uint32(36+dataSize+trailer), uint32(dataSize))

	var closeErr error
	if c, ok := w.ws.(io.Closer); ok {
		closeErr = c.Close()
	}

	if w.err != nil {
		return errors.Wrap(w.err, "wav writer failed")
	}
	if patchErr != nil {
		return patchErr
	}
	return errors.Wrap(closeErr, "closing wav file")
}

// patchSizes seeks back and fills in the RIFF and data chunk sizes.
func (w *Writer) patchSizes(riffSize, dataSize uint32) error {
	var b [4]byte
	if _, err := w.ws.Seek(riffSizeOffset, io.SeekStart); err != nil {
		return errors.Wrap(err, "seeking riff size")
	}
	binary.LittleEndian.PutUint32(b[:], riffSize)
	if _, err := w.ws.Write(b[:]); err != nil {
		return errors.Wrap(err, "patching riff size")
	}
	if _, err := w.ws.Seek(dataSizeOffset, io.SeekStart); err != nil {
		return errors.Wrap(err, "seeking data size")
	}
	binary.LittleEndian.PutUint32(b[:], dataSize)
	if _, err := w.ws.Write(b[:]); err != nil {
		return errors.Wrap(err, "patching data size")
	}
	return nil
}
