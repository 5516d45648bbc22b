package rewrite

import (
	"regexp"

	"github.com/go-jsobf/jsdeob/internal/jsast"
)

var identLike = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// reservedWords is the fixed ECMAScript reserved-keyword set spec.md
// §4.5 requires P5's dotted-member conversion to avoid.
var reservedWords = buildReservedWords()

func buildReservedWords() map[string]bool {
	words := []string{
		"break", "case", "catch", "class", "const", "continue", "debugger",
		"default", "delete", "do", "else", "export", "extends", "finally",
		"for", "function", "if", "import", "in", "instanceof", "new",
		"return", "super", "switch", "this", "throw", "try", "typeof",
		"var", "void", "while", "with", "yield", "let", "static", "enum",
		"await", "implements", "package", "protected", "interface",
		"private", "public", "null", "true", "false",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func validDottableName(s string) bool {
	return identLike.MatchString(s) && !reservedWords[s]
}

// CosmeticStats tallies the independently-named P5 counters spec.md §6
// exposes, since one tree walk advances several of them at once.
type CosmeticStats struct {
	HexNumeralsNormalized      int
	PropertyAccessesSimplified int
	BooleansSimplified         int
	DeadCodeRemovals           int
}

// Cosmetic runs P5 (spec.md §4.5) as a single tree walk.
func Cosmetic(prog *jsast.Program) CosmeticStats {
	var st CosmeticStats

	jsast.Transform(prog, func(e jsast.Expression) jsast.Expression {
		switch n := e.(type) {
		case *jsast.NumberLiteral:
			if n.Hex {
				n.Hex = false
				st.HexNumeralsNormalized++
			}
			return n

		case *jsast.StringLiteral:
			return n

		case *jsast.MemberExpression:
			if !n.Computed {
				return n
			}
			if seq, ok := n.Property.(*jsast.SequenceExpression); ok {
				last := seq.Expressions[len(seq.Expressions)-1]
				if lit, ok := last.(*jsast.StringLiteral); ok && validDottableName(lit.Value) {
					st.PropertyAccessesSimplified++
					return &jsast.MemberExpression{Object: n.Object, Property: &jsast.Identifier{Name: lit.Value}}
				}
				st.PropertyAccessesSimplified++
				return &jsast.MemberExpression{Object: n.Object, Property: last, Computed: isComputedResult(last)}
			}
			if lit, ok := n.Property.(*jsast.StringLiteral); ok && validDottableName(lit.Value) {
				st.PropertyAccessesSimplified++
				return &jsast.MemberExpression{Object: n.Object, Property: &jsast.Identifier{Name: lit.Value}}
			}
			return n

		case *jsast.UnaryExpression:
			if n.Operator != "!" {
				return n
			}
			if num, ok := n.Operand.(*jsast.NumberLiteral); ok {
				st.BooleansSimplified++
				return &jsast.BooleanLiteral{Value: num.Value == 0}
			}
			return n

		case *jsast.ConditionalExpression:
			if b, ok := n.Test.(*jsast.BooleanLiteral); ok {
				st.DeadCodeRemovals++
				if b.Value {
					return n.Consequent
				}
				return n.Alternate
			}
			return n

		case *jsast.LogicalExpression:
			if b, ok := n.Left.(*jsast.BooleanLiteral); ok {
				st.DeadCodeRemovals++
				switch {
				case n.Operator == "&&" && b.Value:
					return n.Right
				case n.Operator == "&&" && !b.Value:
					return &jsast.BooleanLiteral{Value: false}
				case n.Operator == "||" && b.Value:
					return &jsast.BooleanLiteral{Value: true}
				case n.Operator == "||" && !b.Value:
					return n.Right
				}
			}
			return n

		default:
			return e
		}
	}, func(s jsast.Statement) jsast.Statement {
		switch n := s.(type) {
		case *jsast.EmptyStatement:
			st.DeadCodeRemovals++
			return nil

		case *jsast.IfStatement:
			b, ok := n.Test.(*jsast.BooleanLiteral)
			if !ok {
				return n
			}
			st.DeadCodeRemovals++
			if b.Value {
				return n.Consequent
			}
			if n.Alternate == nil {
				return nil
			}
			return n.Alternate

		default:
			return s
		}
	})

	return st
}

// isComputedResult reports whether the remaining property expression
// still needs bracket notation (it is anything but a valid dottable
// name), used by the sequence-collapse-without-a-valid-name branch of
// P5, which keeps the access computed rather than inventing a dotted
// form from a non-identifier value (spec.md §9's asymmetric rule).
func isComputedResult(e jsast.Expression) bool {
	lit, ok := e.(*jsast.StringLiteral)
	if !ok {
		return true
	}
	return !validDottableName(lit.Value)
}
