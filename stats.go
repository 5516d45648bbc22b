package jsdeob

import "github.com/go-jsobf/jsdeob/internal/snapshot"

// Stats is the optional statistics record spec.md §6 describes: counts
// of how much each pass rewrote during one Deobfuscate call, for the
// excluded CLI/progress-reporting layers to display.
type Stats struct {
	HexNumeralsNormalized      int
	ArrayAccessesInlined       int
	DecoderCallsInlined        int
	StringMerges               int
	ResolverCallsInlined       int
	PropertyAccessesSimplified int
	BooleansSimplified         int
	DeadCodeRemovals           int
	ConstantFolds              int

	// StringTable is the recovered "|"-split string payload, beyond
	// spec.md's nine enumerated counters (SPEC_FULL.md §9): nil when C4
	// found no string table in this run.
	StringTable []string
}

// Export serializes StringTable via the snapshot package's FSST-backed
// encoder (SPEC_FULL.md §9). It reports an error if this run recovered
// no string table.
func (s *Stats) Export() ([]byte, error) {
	if len(s.StringTable) == 0 {
		return nil, Error("no string table recovered in this run")
	}
	return snapshot.Export(s.StringTable)
}

// ImportStringTable reverses Stats.Export, decoding a previously
// exported blob back into its original string slice.
func ImportStringTable(blob []byte) ([]string, error) {
	return snapshot.Import(blob)
}
