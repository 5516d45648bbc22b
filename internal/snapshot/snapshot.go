// Package snapshot implements the supplemental artifact-export feature
// (SPEC_FULL.md §9): it compacts a recovered string table with
// github.com/axiomhq/fsst so a caller can store or transmit it without
// round-tripping the full rewritten source. This is a pure function of
// its input slice — no table is cached across calls, preserving the
// no-shared-state invariant of spec.md §5.
package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/axiomhq/fsst"
)

// Export trains an FSST symbol table over entries and serializes the
// table plus every entry's encoded form into one blob:
// [4-byte table length][table bytes][4-byte entry count]{[4-byte
// length][encoded bytes]}*.
func Export(entries []string) ([]byte, error) {
	tbl := fsst.TrainStrings(entries)
	tableBytes, err := tbl.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal table: %w", err)
	}

	out := make([]byte, 0, len(tableBytes)+8+len(entries)*8)
	out = appendUint32Prefixed(out, tableBytes)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(entries)))
	for _, s := range entries {
		encoded := tbl.EncodeAll([]byte(s))
		out = appendUint32Prefixed(out, encoded)
	}
	return out, nil
}

// Import reverses Export, decoding every entry back to its original
// string.
func Import(blob []byte) ([]string, error) {
	tableBytes, rest, err := readUint32Prefixed(blob)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read table: %w", err)
	}
	tbl := &fsst.Table{}
	if err := tbl.UnmarshalBinary(tableBytes); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal table: %w", err)
	}
	if len(rest) < 4 {
		return nil, fmt.Errorf("snapshot: truncated entry count")
	}
	count := binary.LittleEndian.Uint32(rest)
	rest = rest[4:]

	entries := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		var encoded []byte
		encoded, rest, err = readUint32Prefixed(rest)
		if err != nil {
			return nil, fmt.Errorf("snapshot: read entry %d: %w", i, err)
		}
		entries = append(entries, string(tbl.DecodeAll(encoded)))
	}
	return entries, nil
}

func appendUint32Prefixed(dst, payload []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}

func readUint32Prefixed(src []byte) (payload, rest []byte, err error) {
	if len(src) < 4 {
		return nil, nil, fmt.Errorf("truncated length prefix")
	}
	n := binary.LittleEndian.Uint32(src)
	src = src[4:]
	if uint64(len(src)) < uint64(n) {
		return nil, nil, fmt.Errorf("truncated payload")
	}
	return src[:n], src[n:], nil
}
