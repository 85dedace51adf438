// Package sniff classifies voice-message files by their leading bytes.
//
// Two families exist. SILK files carry one vendor byte followed by the
// "#!SILK_V3" marker; everything else is treated as a headerless AMR
// payload. There is no "unknown" result: AMR is the fallback family.
package sniff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Family identifies the codec family of an input file.
type Family int

const (
	FamilyAMR  Family = iota // Headerless AMR payload (default).
	FamilySILK               // SILK v3 stream with one vendor prefix byte.
)

// silkMarker follows the single vendor byte in SILK files.
var silkMarker = []byte("#!SILK_V3")

// HeaderLen is the number of leading bytes inspected: one vendor byte plus
// the marker.
const HeaderLen = 1 + 9

// String returns the short family name used in logs.
func (f Family) String() string {
	switch f {
	case FamilySILK:
		return "silk"
	case FamilyAMR:
		return "amr"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Extension returns the native container extension of the family.
func (f Family) Extension() string {
	if f == FamilySILK {
		return ".silk"
	}
	return ".amr"
}

// Classify reads up to the first HeaderLen bytes of path and reports its
// family. Files shorter than HeaderLen (including empty files) are not a
// SILK match and classify as FamilyAMR. Only open and read errors are
// returned.
func Classify(path string) (Family, error) {
	f, err := os.Open(path)
	if err != nil {
		return FamilyAMR, err
	}
	defer f.Close()

	head := make([]byte, HeaderLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return FamilyAMR, fmt.Errorf("read header of %s: %w", path, err)
	}
	return ClassifyBytes(head[:n]), nil
}

// ClassifyBytes applies the classification rule to the leading bytes of a
// file. Only head[1:10] is compared; the first byte is ignored.
func ClassifyBytes(head []byte) Family {
	if len(head) < HeaderLen {
		return FamilyAMR
	}
	if bytes.Equal(head[1:HeaderLen], silkMarker) {
		return FamilySILK
	}
	return FamilyAMR
}
