package rewrite

import (
	"github.com/go-jsobf/jsdeob/internal/discover"
	"github.com/go-jsobf/jsdeob/internal/jsast"
	"github.com/go-jsobf/jsdeob/internal/literal"
)

// ArrayAccess runs P1 (spec.md §4.5): every computed member expression
// "ID[IDX]" where ID names a discovered constant array and IDX
// evaluates to a non-negative in-range integer is replaced by the
// literal at that index. It reports how many sites it rewrote so the
// driver can interleave it with P3 to a fixed point.
func ArrayAccess(prog *jsast.Program, arrays map[string]*discover.ConstantArray) int {
	count := 0
	jsast.Transform(prog, func(e jsast.Expression) jsast.Expression {
		member, ok := e.(*jsast.MemberExpression)
		if !ok || !member.Computed {
			return e
		}
		id, ok := member.Object.(*jsast.Identifier)
		if !ok {
			return e
		}
		arr, ok := arrays[id.Name]
		if !ok {
			return e
		}
		idx, ok := literal.Eval(member.Property)
		if !ok || idx.Kind != literal.KindNumber {
			return e
		}
		i := int(idx.Num)
		if float64(i) != idx.Num || i < 0 || i >= len(arr.Elements) {
			return e
		}
		node, ok := literal.Materialize(arr.Elements[i])
		if !ok {
			return e
		}
		count++
		return node
	}, nil)
	return count
}
