/*
NAME
  audit.go

DESCRIPTION
  audit.go inspects a parsed container for recognised-but-suspicious
  conditions, chiefly MSX-DOS disk-format marker bytes embedded in tape
  payloads where they do not belong.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package cas

import "fmt"

// Disk-format marker bytes. These conventionally belong only to the
// on-disk BSAVE and tokenized BASIC layouts, never to cassette payloads.
const (
	diskStartMarker = 0xFE
	diskEndMarker   = 0xFF
)

// IssueKind classifies an audit finding.
type IssueKind int

const (
	// IssueDiskStartMarker flags a binary payload beginning with 0xFE.
	IssueDiskStartMarker IssueKind = iota

	// IssueDiskEndMarker flags a binary payload ending with 0xFF.
	IssueDiskEndMarker

	// IssueBASICDiskMarker flags a BASIC payload beginning with 0xFF.
	IssueBASICDiskMarker

	// IssueLengthMismatch flags a binary payload whose scanned length
	// disagrees with the end-load span of its address triple.
	IssueLengthMismatch
)

// Issue is one audit finding. Issues are reported, never raised; they do
// not invalidate the container.
type Issue struct {
	FileIndex int // Zero-based index of the file in the container.
	Kind      IssueKind
	Offset    int // File offset of the offending byte or block.
	Desc      string
}

// Audit inspects the binary and BASIC payloads of a parsed container and
// returns the issues found, in file order.
func Audit(c *Container) []Issue {
	var issues []Issue
	for i := range c.Files {
		f := &c.Files[i]
		switch f.Kind {
		case Binary:
			issues = append(issues, auditBinary(f, i)...)
		case BASIC:
			issues = append(issues, auditBASIC(f, i)...)
		}
	}
	return issues
}

func auditBinary(f *File, index int) []Issue {
	if len(f.Blocks) == 0 || len(f.Blocks[0].Data) == 0 {
		return nil
	}
	blk := f.Blocks[0]
	var issues []Issue

	if blk.Data[0] == diskStartMarker {
		issues = append(issues, Issue{
			FileIndex: index,
			Kind:      IssueDiskStartMarker,
			Offset:    blk.Offset,
			Desc:      fmt.Sprintf("binary file %q: disk-format start marker 0xFE embedded in tape payload", f.NameString()),
		})
	}
	if last := len(blk.Data) - 1; blk.Data[last] == diskEndMarker {
		issues = append(issues, Issue{
			FileIndex: index,
			Kind:      IssueDiskEndMarker,
			Offset:    blk.Offset + last,
			Desc:      fmt.Sprintf("binary file %q: disk-format end marker 0xFF embedded in tape payload", f.NameString()),
		})
	}
	if f.Addr != nil {
		want := int(f.Addr.End) - int(f.Addr.Load) + 1
		if want != len(blk.Data) {
			issues = append(issues, Issue{
				FileIndex: index,
				Kind:      IssueLengthMismatch,
				Offset:    blk.Offset,
				Desc: fmt.Sprintf("binary file %q: scanned payload is %d bytes but address triple spans %d",
					f.NameString(), len(blk.Data), want),
			})
		}
	}
	return issues
}

func auditBASIC(f *File, index int) []Issue {
	if len(f.Blocks) == 0 || len(f.Blocks[0].Data) == 0 {
		return nil
	}
	blk := f.Blocks[0]
	if blk.Data[0] != diskEndMarker {
		return nil
	}
	return []Issue{{
		FileIndex: index,
		Kind:      IssueBASICDiskMarker,
		Offset:    blk.Offset,
		Desc:      fmt.Sprintf("basic file %q: disk-tokenized BASIC marker 0xFF embedded in tape payload", f.NameString()),
	}}
}
