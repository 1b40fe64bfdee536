/*
NAME
  modulator_test.go

DESCRIPTION
  modulator_test.go contains tests for the MSX tape modulator, including
  a reference demodulator that recovers bytes from the generated sample
  stream the way the MSX BIOS does: by classifying carrier cycles in each
  bit cell.

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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ausocean/cas/codec/pcm"
	"github.com/ausocean/cas/codec/wav"
	"github.com/ausocean/cas/container/cas"
)

// memSeeker is an in-memory io.WriteSeeker backing the WAV writer in
// tests.
type memSeeker struct {
	buf []byte
	pos int
}

func (m *memSeeker) Write(p []byte) (int, error) {
	need := m.pos + len(p)
	if need > len(m.buf) {
		m.buf = append(m.buf, make([]byte, need-len(m.buf))...)
	}
	copy(m.buf[m.pos:], p)
	m.pos = need
	return len(p), nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 1:
		m.pos += int(offset)
	case 2:
		m.pos = len(m.buf) + int(offset)
	default:
		m.pos = int(offset)
	}
	return int64(m.pos), nil
}

// squareConfig is the test configuration: square wave so every sample
// sits hard at Centre±A and cycle classification is exact.
func squareConfig() Config {
	cfg := DefaultConfig()
	cfg.Wave = pcm.Square
	return cfg
}

// newTestModulator returns a modulator writing into a fresh memSeeker.
func newTestModulator(t *testing.T, cfg Config) (*Modulator, *wav.Writer, *memSeeker) {
	t.Helper()
	ms := &memSeeker{}
	w, err := wav.NewWriter(ms, cfg.WAVFormat())
	require.NoError(t, err)
	m, err := NewModulator(w, cfg)
	require.NoError(t, err)
	return m, w, ms
}

// samples returns the mono 8-bit data chunk payload written so far.
func (m *memSeeker) samples() []byte {
	return m.buf[44:]
}

// demodulate slices the stream into fixed bit cells of rate/baud
// samples, drops silence cells, and groups the serial frames between
// sync runs into byte slices. It fails the test on framing errors.
func demodulate(t *testing.T, stream []byte, rate, baud int) [][]byte {
	t.Helper()
	cell := rate / baud

	// Classify cells: -1 silence, otherwise the bit value.
	var bits []int
	for p := 0; p+cell <= len(stream); p += cell {
		bits = append(bits, classifyCell(stream[p:p+cell]))
	}

	var groups [][]byte
	i := 0
	for i < len(bits) {
		// Skip silence and sync.
		for i < len(bits) && bits[i] != 0 {
			i++
		}
		var group []byte
		for i < len(bits) && bits[i] == 0 {
			// One frame: start 0, eight data bits LSB-first, two 1s.
			require.GreaterOrEqual(t, len(bits)-i, 11, "truncated frame")
			var b byte
			for d := 0; d < 8; d++ {
				require.NotEqual(t, -1, bits[i+1+d], "silence inside frame")
				b |= byte(bits[i+1+d]) << d
			}
			require.Equal(t, 1, bits[i+9], "bad first stop bit")
			require.Equal(t, 1, bits[i+10], "bad second stop bit")
			group = append(group, b)
			i += 11
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// classifyCell reports -1 for a silence cell and otherwise the bit the
// cell carries, judged by carrier sign changes: one full cycle makes one
// internal crossing, two cycles make three.
func classifyCell(cell []byte) int {
	silent := true
	for _, s := range cell {
		if s != pcm.Centre {
			silent = false
			break
		}
	}
	if silent {
		return -1
	}

	crossings, prev := 0, 0
	for _, s := range cell {
		sign := 0
		if s > pcm.Centre {
			sign = 1
		} else if s < pcm.Centre {
			sign = -1
		}
		if sign != 0 && prev != 0 && sign != prev {
			crossings++
		}
		if sign != 0 {
			prev = sign
		}
	}
	if crossings >= 2 {
		return 1
	}
	return 0
}

// A 0-bit occupies ⌊rate/baud⌋ samples and a 1-bit 2·⌊rate/(2·baud)⌋.
func TestBitCellLengths(t *testing.T) {
	cfg := squareConfig()
	m, w, _ := newTestModulator(t, cfg)

	require.NoError(t, m.WriteBit(0))
	assert.EqualValues(t, 43200/1200, w.Frames())

	before := w.Frames()
	require.NoError(t, m.WriteBit(1))
	assert.EqualValues(t, 2*(43200/2400), w.Frames()-before)
}

// Each byte frame is 11 bit cells with the data bits LSB-first.
func TestByteFraming(t *testing.T) {
	cfg := squareConfig()
	m, w, ms := newTestModulator(t, cfg)

	require.NoError(t, m.WriteByte(0xA5))
	cell := cfg.SampleRate / cfg.Baud
	assert.EqualValues(t, 11*cell, w.Frames())

	// 0xA5 = 10100101 LSB-first transmitted 1,0,1,0,0,1,0,1.
	want := []int{0, 1, 0, 1, 0, 0, 1, 0, 1, 1, 1}
	stream := ms.samples()
	for i, wb := range want {
		got := classifyCell(stream[i*cell : (i+1)*cell])
		assert.Equal(t, wb, got, "bit cell %d", i)
	}
}

func TestSyncRun(t *testing.T) {
	cfg := squareConfig()
	m, w, _ := newTestModulator(t, cfg)
	require.NoError(t, m.WriteSync(100))
	cell := cfg.SampleRate / cfg.Baud
	assert.EqualValues(t, 100*cell, w.Frames())
}

// buildASCII assembles CAS bytes for a one-block ASCII file.
func buildASCII(name string, payload []byte) []byte {
	var b []byte
	b = append(b, cas.Magic...)
	b = append(b, bytes.Repeat([]byte{0xEA}, 10)...)
	n := []byte("      ")
	copy(n, name)
	b = append(b, n...)
	b = append(b, cas.Magic...)
	return append(b, payload...)
}

func buildBinary(name string, addr [6]byte, payload []byte) []byte {
	var b []byte
	b = append(b, cas.Magic...)
	b = append(b, bytes.Repeat([]byte{0xD0}, 10)...)
	n := []byte("      ")
	copy(n, name)
	b = append(b, n...)
	b = append(b, cas.Magic...)
	b = append(b, addr[:]...)
	return append(b, payload...)
}

// Modulate a parsed container and demodulate the stream back: every
// non-custom file's header and payload bytes must survive exactly.
func TestRoundTrip(t *testing.T) {
	input := buildASCII("HELLO ", []byte("HI\x1a"))
	input = append(input, buildBinary("PROG  ", [6]byte{0x00, 0x80, 0x02, 0x80, 0x00, 0x80}, []byte{0xAA, 0xBB, 0xCC})...)

	c, err := cas.Parse(input)
	require.NoError(t, err)
	require.Len(t, c.Files, 2)

	cfg := squareConfig()
	_, w, ms := newTestModulator(t, cfg)
	require.NoError(t, Convert(c, w, cfg))
	require.NoError(t, w.Close())

	groups := demodulate(t, ms.samples(), cfg.SampleRate, cfg.Baud)
	require.Len(t, groups, 4)

	// File 1: header block then data block.
	wantHdr := append(bytes.Repeat([]byte{0xEA}, 10), []byte("HELLO ")...)
	assert.Equal(t, wantHdr, groups[0])
	assert.Equal(t, []byte("HI\x1a"), groups[1])

	// File 2: header block then address triple + payload.
	wantHdr = append(bytes.Repeat([]byte{0xD0}, 10), []byte("PROG  ")...)
	assert.Equal(t, wantHdr, groups[2])
	assert.Equal(t, []byte{0x00, 0x80, 0x02, 0x80, 0x00, 0x80, 0xAA, 0xBB, 0xCC}, groups[3])
}

// A custom file has no header block: one group of raw payload.
func TestRoundTripCustom(t *testing.T) {
	var input []byte
	input = append(input, cas.Magic...)
	payload := append(bytes.Repeat([]byte{0x42}, 10), 'X', 'Y', 'Z')
	input = append(input, payload...)

	c, err := cas.Parse(input)
	require.NoError(t, err)

	cfg := squareConfig()
	_, w, ms := newTestModulator(t, cfg)
	require.NoError(t, Convert(c, w, cfg))
	require.NoError(t, w.Close())

	groups := demodulate(t, ms.samples(), cfg.SampleRate, cfg.Baud)
	require.Len(t, groups, 1)
	assert.Equal(t, payload, groups[0])
}

// The modulated length matches the closed-form estimate: for a 10-byte
// ASCII payload at 1200 baud and standard timing,
// 2.0 + 8000/1200 + 16·11/1200 + 1.0 + 2000/1200 + 10·11/1200 s.
func TestModulatedDurationMatchesEstimate(t *testing.T) {
	payload := []byte("ABCDEFGHI\x1a") // 10 bytes with the EOF marker
	c, err := cas.Parse(buildASCII("HELLO ", payload))
	require.NoError(t, err)

	cfg := squareConfig()
	_, w, _ := newTestModulator(t, cfg)
	require.NoError(t, Convert(c, w, cfg))

	want := 2.0 + 8000.0/1200 + 16*11.0/1200 + 1.0 + 2000.0/1200 + 10*11.0/1200
	est := cfg.Estimate(c)
	assert.InDelta(t, want, est.Duration, 1e-9)

	// Generated frames agree with the estimate to within one sample.
	assert.InDelta(t, want*float64(cfg.SampleRate), float64(w.Frames()), 1.0)
	require.NoError(t, w.Close())
}

// Estimated WAV size against the real file, marker chunks reported
// separately.
func TestEstimateWAVBytes(t *testing.T) {
	c, err := cas.Parse(buildASCII("HELLO ", []byte("HI\x1a")))
	require.NoError(t, err)

	for _, markers := range []bool{false, true} {
		cfg := squareConfig()
		cfg.Markers = markers

		ms := &memSeeker{}
		w, err := wav.NewWriter(ms, cfg.WAVFormat())
		require.NoError(t, err)
		require.NoError(t, Convert(c, w, cfg))
		require.NoError(t, w.Close())

		est := cfg.Estimate(c)
		assert.InDelta(t, float64(est.WAVBytes+int64(est.MarkerBytes)), float64(len(ms.buf)), 1.0, "markers=%v", markers)
		if markers {
			assert.NotZero(t, est.Markers)
			assert.NotZero(t, est.MarkerBytes)
		} else {
			assert.Zero(t, est.MarkerBytes)
		}
	}
}

// Marker emission: one structure marker per file plus detail markers for
// silences, syncs, header and blocks, with category-prefixed labels.
func TestMarkers(t *testing.T) {
	c, err := cas.Parse(buildASCII("HELLO ", []byte("HI\x1a")))
	require.NoError(t, err)

	cfg := squareConfig()
	cfg.Markers = true
	_, w, ms := newTestModulator(t, cfg)

	require.NoError(t, Convert(c, w, cfg))
	require.NoError(t, w.Close())

	// 1 structure + long silence, header sync, header, short silence,
	// block sync, block = 7 markers.
	est := cfg.Estimate(c)
	assert.Equal(t, 7, est.Markers)

	out := ms.buf
	assert.Contains(t, string(out), "STRUCTURE: file 1: ascii \"HELLO\" (3 bytes)")
	assert.Contains(t, string(out), "DETAIL: file 1: header sync")
	assert.Contains(t, string(out), "DETAIL: file 1: long silence 2.0s")
	assert.Contains(t, string(out), "DETAIL: file 1: block 1 data (3 bytes)")
}

// Without markers the writer emits no cue chunk and the stream ends at
// the data chunk.
func TestNoMarkersNoCueChunk(t *testing.T) {
	c, err := cas.Parse(buildASCII("HELLO ", []byte("HI\x1a")))
	require.NoError(t, err)

	cfg := squareConfig()
	_, w, ms := newTestModulator(t, cfg)
	require.NoError(t, Convert(c, w, cfg))
	require.NoError(t, w.Close())

	assert.NotContains(t, string(ms.buf[len(ms.buf)-64:]), "cue ")
	assert.EqualValues(t, len(ms.buf)-44, w.Frames())
}

// Silence regions hold the centre value even with the low-pass enabled.
func TestLowPassSilenceStaysCentred(t *testing.T) {
	c, err := cas.Parse(buildASCII("HELLO ", []byte("HI\x1a")))
	require.NoError(t, err)

	cfg := squareConfig()
	cfg.LowPass = true
	cfg.LowPassCutoff = 6000
	_, w, ms := newTestModulator(t, cfg)
	require.NoError(t, Convert(c, w, cfg))
	require.NoError(t, w.Close())

	// The first LongSilence seconds are silence.
	n := int(cfg.LongSilence * float64(cfg.SampleRate))
	for i, s := range ms.samples()[:n] {
		require.EqualValues(t, pcm.Centre, s, "sample %d", i)
	}
}

// The 2400 baud turbo rate halves the stream length.
func TestTurboBaud(t *testing.T) {
	c, err := cas.Parse(buildASCII("HELLO ", []byte("HI\x1a")))
	require.NoError(t, err)

	std := squareConfig()
	std.LongSilence, std.ShortSilence = 0, 0
	turbo := std
	turbo.Baud = 2400

	_, w1, _ := newTestModulator(t, std)
	require.NoError(t, Convert(c, w1, std))
	_, w2, _ := newTestModulator(t, turbo)
	require.NoError(t, Convert(c, w2, turbo))

	assert.EqualValues(t, w1.Frames(), 2*w2.Frames())
}
