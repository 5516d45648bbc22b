package rewrite

import (
	"github.com/go-jsobf/jsdeob/internal/jsast"
	"github.com/go-jsobf/jsdeob/internal/literal"
)

// Fold runs P3 (spec.md §4.5): every binary expression is evaluated on
// the post-order exit and, if evaluable, replaced by its materialized
// literal. A "+" fold that produces a string is counted separately
// from every other fold, matching the two distinct counters spec.md
// §6 exposes (StringMerges and ConstantFolds).
func Fold(prog *jsast.Program) (stringMerges, constantFolds int) {
	jsast.Transform(prog, func(e jsast.Expression) jsast.Expression {
		bin, ok := e.(*jsast.BinaryExpression)
		if !ok {
			return e
		}
		v, ok := literal.Eval(bin)
		if !ok {
			return e
		}
		node, ok := literal.Materialize(v)
		if !ok {
			return e
		}
		if bin.Operator == "+" && v.Kind == literal.KindString {
			stringMerges++
		} else {
			constantFolds++
		}
		return node
	}, nil)
	return stringMerges, constantFolds
}
