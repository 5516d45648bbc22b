package rewrite

import (
	"github.com/go-jsobf/jsdeob/internal/discover"
	"github.com/go-jsobf/jsdeob/internal/jsast"
	"github.com/go-jsobf/jsdeob/internal/literal"
)

// Decoder runs P2 (spec.md §4.5): a call "NAME(IDX)" where NAME is the
// discovered string-table decoder and IDX evaluates to a non-negative
// in-range integer is replaced by the literal string at that index.
// Skipped entirely by the driver when discovery found no decoder name.
func Decoder(prog *jsast.Program, table *discover.StringTable) int {
	if table == nil || table.DecoderName == "" {
		return 0
	}
	count := 0
	jsast.Transform(prog, func(e jsast.Expression) jsast.Expression {
		call, ok := e.(*jsast.CallExpression)
		if !ok || len(call.Arguments) != 1 {
			return e
		}
		callee, ok := call.Callee.(*jsast.Identifier)
		if !ok || callee.Name != table.DecoderName {
			return e
		}
		idx, ok := literal.Eval(call.Arguments[0])
		if !ok || idx.Kind != literal.KindNumber {
			return e
		}
		i := int(idx.Num)
		if float64(i) != idx.Num || i < 0 || i >= len(table.Entries) {
			return e
		}
		count++
		return &jsast.StringLiteral{Value: table.Entries[i]}
	}, nil)
	return count
}
