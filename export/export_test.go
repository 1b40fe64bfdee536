/*
NAME
  export_test.go

DESCRIPTION
  export_test.go contains tests for the on-disk export layouts.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ausocean/cas/container/cas"
)

func newFile(kind cas.Kind, name string, blocks ...[]byte) cas.File {
	var f cas.File
	f.Kind = kind
	n := []byte("      ")
	copy(n, name)
	copy(f.Name[:], n)
	for _, b := range blocks {
		f.Blocks = append(f.Blocks, cas.DataBlock{Data: b})
	}
	return f
}

func readBack(t *testing.T, dir, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return b
}

// ASCII export truncates each block at its first EOF marker and drops
// the marker.
func TestExportASCII(t *testing.T) {
	dir := t.TempDir()
	f := newFile(cas.ASCII, "HELLO", []byte("PART ONE "), []byte("PART TWO\x1apadding"))

	e := &Exporter{Dir: dir}
	require.NoError(t, e.ExportFile(&f, 1))

	got := readBack(t, dir, "1-HELLO.asc")
	assert.Equal(t, []byte("PART ONE PART TWO"), got)
}

// Binary export is triple + payload, with disk markers only on request.
func TestExportBinary(t *testing.T) {
	dir := t.TempDir()
	f := newFile(cas.Binary, "PROG", []byte{0xAA, 0xBB, 0xCC})
	f.Addr = &cas.AddressTriple{Load: 0x8000, End: 0x8002, Exec: 0x8000}

	e := &Exporter{Dir: dir}
	require.NoError(t, e.ExportFile(&f, 1))
	got := readBack(t, dir, "1-PROG.bin")
	assert.Equal(t, []byte{0x00, 0x80, 0x02, 0x80, 0x00, 0x80, 0xAA, 0xBB, 0xCC}, got)

	e = &Exporter{Dir: dir, Force: true, DiskFormat: true}
	require.NoError(t, e.ExportFile(&f, 1))
	got = readBack(t, dir, "1-PROG.bin")
	assert.Equal(t, []byte{0xFE, 0x00, 0x80, 0x02, 0x80, 0x00, 0x80, 0xAA, 0xBB, 0xCC, 0xFF}, got)
}

// BASIC export never gains a marker byte, and tape-parsed BASIC has no
// triple to write.
func TestExportBASIC(t *testing.T) {
	dir := t.TempDir()
	f := newFile(cas.BASIC, "GAME", []byte{0x10, 0x20, 0x30})

	e := &Exporter{Dir: dir, DiskFormat: true}
	require.NoError(t, e.ExportFile(&f, 2))

	got := readBack(t, dir, "2-GAME.bas")
	assert.Equal(t, []byte{0x10, 0x20, 0x30}, got)
}

func TestExportCustom(t *testing.T) {
	dir := t.TempDir()
	f := newFile(cas.Custom, "", []byte{0x01, 0x02})

	e := &Exporter{Dir: dir}
	require.NoError(t, e.ExportFile(&f, 3))

	got := readBack(t, dir, "3.dat")
	assert.Equal(t, []byte{0x01, 0x02}, got)
}

// Names trim trailing spaces; empty names fall back to index-only.
func TestFilename(t *testing.T) {
	f := newFile(cas.ASCII, "AB")
	assert.Equal(t, "1-AB.asc", Filename(&f, 1))

	f = newFile(cas.Custom, "")
	assert.Equal(t, "7.dat", Filename(&f, 7))

	f = newFile(cas.BASIC, "GAME12")
	assert.Equal(t, "2-GAME12.bas", Filename(&f, 2))
}

// Existing files are not overwritten unless forced.
func TestExportRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	f := newFile(cas.Custom, "", []byte{0x01})

	e := &Exporter{Dir: dir}
	require.NoError(t, e.ExportFile(&f, 1))

	err := e.ExportFile(&f, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExists))

	e.Force = true
	assert.NoError(t, e.ExportFile(&f, 1))
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	c := &cas.Container{Files: []cas.File{
		newFile(cas.ASCII, "ONE", []byte("A\x1a")),
		newFile(cas.Custom, "", []byte{0xFF}),
	}}

	e := &Exporter{Dir: dir}
	require.NoError(t, e.ExportAll(c))

	assert.FileExists(t, filepath.Join(dir, "1-ONE.asc"))
	assert.FileExists(t, filepath.Join(dir, "2.dat"))
}
