// Package literal is the pipeline's partial evaluator: a pure,
// total, never-throwing function from an expression node to either a
// concrete value or "not evaluable". Every inliner pass (internal/
// rewrite) and the artifact discoverer (internal/discover) go through
// this package rather than re-implementing constant folding locally,
// the same way the teacher's bit-reversal and prefix-decoding helpers
// live in one shared place (internal/prefix) instead of being
// duplicated per codec.
package literal

import (
	"math"
	"strconv"

	"github.com/go-jsobf/jsdeob/internal/jsast"
)

// Kind tags which arm of Value is populated.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNull
	KindUndefined
)

// Value is the tagged union spec.md §3 calls LiteralValue.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
}

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func Bool(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func Null() Value            { return Value{Kind: KindNull} }
func Undefined() Value       { return Value{Kind: KindUndefined} }

// Eval partially evaluates e. The second return is false when e falls
// outside the literal/unary/binary-on-literals domain spec.md §4.3
// defines; callers must treat that as "do not rewrite", never as an
// error.
func Eval(e jsast.Expression) (Value, bool) {
	switch n := e.(type) {
	case *jsast.NumberLiteral:
		return Number(n.Value), true
	case *jsast.StringLiteral:
		return String(n.Value), true
	case *jsast.BooleanLiteral:
		return Bool(n.Value), true
	case *jsast.NullLiteral:
		return Null(), true
	case *jsast.UnaryExpression:
		return evalUnary(n)
	case *jsast.BinaryExpression:
		return evalBinary(n)
	default:
		return Value{}, false
	}
}

func evalUnary(n *jsast.UnaryExpression) (Value, bool) {
	if n.Operator == "void" {
		return Undefined(), true
	}
	v, ok := Eval(n.Operand)
	if !ok {
		return Value{}, false
	}
	switch n.Operator {
	case "!":
		return Bool(!truthy(v)), true
	case "-":
		if v.Kind != KindNumber {
			return Value{}, false
		}
		return Number(-v.Num), true
	case "+":
		if v.Kind != KindNumber {
			return Value{}, false
		}
		return Number(v.Num), true
	case "~":
		if v.Kind != KindNumber {
			return Value{}, false
		}
		return Number(float64(^toInt32(v.Num))), true
	default:
		return Value{}, false
	}
}

func evalBinary(n *jsast.BinaryExpression) (Value, bool) {
	l, ok := Eval(n.Left)
	if !ok {
		return Value{}, false
	}
	r, ok := Eval(n.Right)
	if !ok {
		return Value{}, false
	}

	if n.Operator == "+" {
		if l.Kind == KindString || r.Kind == KindString {
			return String(toStringValue(l) + toStringValue(r)), true
		}
	}

	if l.Kind != KindNumber || r.Kind != KindNumber {
		return Value{}, false
	}
	a, b := l.Num, r.Num

	switch n.Operator {
	case "+":
		return Number(a + b), true
	case "-":
		return Number(a - b), true
	case "*":
		return Number(a * b), true
	case "/":
		if b == 0 {
			return Value{}, false
		}
		return Number(a / b), true
	case "%":
		if b == 0 {
			return Value{}, false
		}
		return Number(math.Mod(a, b)), true
	case "**":
		return Number(math.Pow(a, b)), true
	case "&":
		return Number(float64(toInt32(a) & toInt32(b))), true
	case "|":
		return Number(float64(toInt32(a) | toInt32(b))), true
	case "^":
		return Number(float64(toInt32(a) ^ toInt32(b))), true
	case "<<":
		return Number(float64(toInt32(a) << (toUint32(b) & 31))), true
	case ">>":
		return Number(float64(toInt32(a) >> (toUint32(b) & 31))), true
	case ">>>":
		return Number(float64(toUint32(a) >> (toUint32(b) & 31))), true
	default:
		return Value{}, false
	}
}

func truthy(v Value) bool {
	switch v.Kind {
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case KindString:
		return v.Str != ""
	case KindBool:
		return v.Bool
	case KindNull, KindUndefined:
		return false
	default:
		return false
	}
}

func toStringValue(v Value) string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return formatNumber(v.Num)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	default:
		return ""
	}
}

func toInt32(f float64) int32 {
	return int32(toUint32(f))
}

func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(f))
}

// Materialize builds the AST node for v, following the rules spec.md
// §3 fixes: negative numbers print as unary minus over the positive
// literal, Undefined becomes "void 0", and non-finite numbers are
// refused (the caller must treat that as "not materializable" and
// leave the original expression alone).
func Materialize(v Value) (jsast.Expression, bool) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return nil, false
		}
		if v.Num < 0 {
			return &jsast.UnaryExpression{
				Operator: "-",
				Operand:  &jsast.NumberLiteral{Value: -v.Num},
			}, true
		}
		return &jsast.NumberLiteral{Value: v.Num}, true
	case KindString:
		return &jsast.StringLiteral{Value: v.Str}, true
	case KindBool:
		return &jsast.BooleanLiteral{Value: v.Bool}, true
	case KindNull:
		return &jsast.NullLiteral{}, true
	case KindUndefined:
		return &jsast.UnaryExpression{
			Operator: "void",
			Operand:  &jsast.NumberLiteral{Value: 0},
		}, true
	default:
		return nil, false
	}
}

// formatNumber mirrors the printer's own number formatting so that
// "+"-concatenation of a number with a string produces the same text
// the printer would later emit for that number on its own.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
