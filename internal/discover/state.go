// Package discover implements the one-shot artifact discovery pass
// (spec.md §4.4): it scans the freshly parsed tree (and occasionally
// the raw source) to find the constant arrays, the compressed string
// table and its decoder, and any global-identifier resolvers, and
// assembles them into an immutable DiscoveryState for the pipeline
// driver's rewrite phases to consume.
package discover

import (
	"github.com/go-jsobf/jsdeob/internal/jsast"
	"github.com/go-jsobf/jsdeob/internal/literal"
)

// ConstantArray is an all-literal array keyed by its declared name.
type ConstantArray struct {
	Name     string
	Elements []literal.Value
}

// StringTable is the decompressed, "|"-split string payload, together
// with the name of the one-argument function that indexes it.
// DecoderName is empty when no decoder could be identified, in which
// case the pipeline driver skips Phase 2 entirely (spec.md §4.4).
type StringTable struct {
	Entries     []string
	DecoderName string
}

// GlobalResolver is a switch-on-parameter function mapping string keys
// to allow-listed global identifier names.
type GlobalResolver struct {
	Name string
	Map  map[string]string
}

// State is the read-only result of a single discovery run.
type State struct {
	Arrays    map[string]*ConstantArray
	Table     *StringTable
	Resolvers []*GlobalResolver
}

// Run performs Phase 0 discovery (spec.md §4.6) once, over the freshly
// parsed program and its original source text (needed for the decoder
// textual fallback, spec.md §4.4 strategy 2).
func Run(prog *jsast.Program, rawSource string) *State {
	return &State{
		Arrays:    discoverArrays(prog),
		Table:     discoverStringTable(prog, rawSource),
		Resolvers: discoverResolvers(prog),
	}
}
