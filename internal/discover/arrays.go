package discover

import (
	"github.com/go-jsobf/jsdeob/internal/jsast"
	"github.com/go-jsobf/jsdeob/internal/literal"
)

// minArrayLen is the length threshold from spec.md §4.4: shorter
// arrays are not indirection tables and are left alone.
const minArrayLen = 10

// discoverArrays finds every variable declarator whose initializer is
// an array literal of at least minArrayLen elements, all of them
// evaluable by the literal evaluator. It sees the declarators that
// jsast.Walk passes to its statement visitor: those at top level and
// in function declarations, not those inside function expressions.
// Arrays
// with any non-literal element are rejected in full, not partially
// accepted (spec.md §3's ConstantArray invariant).
func discoverArrays(prog *jsast.Program) map[string]*ConstantArray {
	arrays := make(map[string]*ConstantArray)
	jsast.Walk(prog, nil, func(s jsast.Statement) {
		decl, ok := s.(*jsast.VariableDeclaration)
		if !ok {
			return
		}
		for _, d := range decl.Declarations {
			arr, ok := d.Init.(*jsast.ArrayLiteral)
			if !ok || len(arr.Elements) < minArrayLen {
				continue
			}
			elems := make([]literal.Value, 0, len(arr.Elements))
			ok = true
			for _, e := range arr.Elements {
				v, evaluable := literal.Eval(e)
				if !evaluable {
					ok = false
					break
				}
				elems = append(elems, v)
			}
			if !ok {
				continue
			}
			arrays[d.Name.Name] = &ConstantArray{Name: d.Name.Name, Elements: elems}
		}
	})
	return arrays
}
