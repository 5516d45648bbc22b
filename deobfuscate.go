package jsdeob

import (
	"github.com/go-jsobf/jsdeob/internal/discover"
	"github.com/go-jsobf/jsdeob/internal/jsast"
	"github.com/go-jsobf/jsdeob/internal/rewrite"
)

const (
	phase1Cap = 10
	phase2Cap = 10
	phase3Cap = 10
	phase4Cap = 3
)

// Deobfuscate parses source, runs artifact discovery once, then drives
// the five C5 passes through the fixed phase order of spec.md §4.6.
// It never returns a non-nil error for well-formed input the parser
// accepts; a ParseError means the parser itself rejected the source,
// and a PrintError or InternalError means a pass produced a tree this
// module's own printer or invariants could not handle — both indicate
// a bug in this module, not a malformed caller input.
func Deobfuscate(source string) (out string, stats *Stats, err error) {
	defer errRecover(&err)

	prog, perr := jsast.Parse(source)
	if perr != nil {
		return "", nil, &ParseError{Err: perr}
	}

	state := discover.Run(prog, source)
	stats = &Stats{}
	if state.Table != nil {
		stats.StringTable = state.Table.Entries
	}

	// Phase 1: P1 interleaved with P3 to a fixed point.
	for i := 0; i < phase1Cap; i++ {
		n1 := rewrite.ArrayAccess(prog, state.Arrays)
		merges, folds := rewrite.Fold(prog)
		stats.ArrayAccessesInlined += n1
		stats.StringMerges += merges
		stats.ConstantFolds += folds
		if n1 == 0 && merges == 0 && folds == 0 {
			break
		}
	}

	// Phase 2: decoder calls interleaved with array access, nested
	// indirection is common (spec.md §4.6).
	if state.Table != nil && state.Table.DecoderName != "" {
		for i := 0; i < phase2Cap; i++ {
			n2 := rewrite.Decoder(prog, state.Table)
			n1 := rewrite.ArrayAccess(prog, state.Arrays)
			stats.DecoderCallsInlined += n2
			stats.ArrayAccessesInlined += n1
			if n2 == 0 && n1 == 0 {
				break
			}
		}
	}

	// Phase 3: P3 to a fixed point.
	for i := 0; i < phase3Cap; i++ {
		merges, folds := rewrite.Fold(prog)
		stats.StringMerges += merges
		stats.ConstantFolds += folds
		if merges == 0 && folds == 0 {
			break
		}
	}

	// Phase 4: global resolver calls, only if any resolver was found.
	if len(state.Resolvers) > 0 {
		for i := 0; i < phase4Cap; i++ {
			n4 := rewrite.Resolver(prog, state.Resolvers)
			stats.ResolverCallsInlined += n4
			if n4 == 0 {
				break
			}
		}
	}

	// Phase 5: cosmetic cleanup once, then one more fold pass.
	cosmetic := rewrite.Cosmetic(prog)
	stats.HexNumeralsNormalized += cosmetic.HexNumeralsNormalized
	stats.PropertyAccessesSimplified += cosmetic.PropertyAccessesSimplified
	stats.BooleansSimplified += cosmetic.BooleansSimplified
	stats.DeadCodeRemovals += cosmetic.DeadCodeRemovals
	merges, folds := rewrite.Fold(prog)
	stats.StringMerges += merges
	stats.ConstantFolds += folds

	printed, printErr := jsast.Print(prog)
	if printErr != nil {
		return "", nil, &PrintError{Err: printErr}
	}
	return printed, stats, nil
}
