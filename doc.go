// Package jsdeob implements a multi-pass, AST-based deobfuscator for
// scripts hidden behind large literal-array indirection, a compressed
// string table, a global-identifier resolver, and cosmetic transforms
// such as hex numerals, `!0`/`!1` booleans, and bracketed property
// access. It does not implement general optimization, control-flow
// deflattening, opaque-predicate removal, or VM-bytecode recovery, and
// it makes no source-position or byte-stability guarantees across
// releases.
//
// Deobfuscate is the entry point to the pipeline. Besides it, this
// package exports the Stats record it returns, the error kinds, and
// ImportStringTable for reading back a Stats.Export blob; everything
// else in this module lives under internal/.
package jsdeob
