package literal

import (
	"testing"

	"github.com/go-jsobf/jsdeob/internal/jsast"
)

func TestEvalLiterals(t *testing.T) {
	cases := []struct {
		name string
		expr jsast.Expression
		want Value
	}{
		{"number", &jsast.NumberLiteral{Value: 3}, Number(3)},
		{"string", &jsast.StringLiteral{Value: "hi"}, String("hi")},
		{"bool", &jsast.BooleanLiteral{Value: true}, Bool(true)},
		{"null", &jsast.NullLiteral{}, Null()},
		{"void", &jsast.UnaryExpression{Operator: "void", Operand: &jsast.Identifier{Name: "x"}}, Undefined()},
		{"neg", &jsast.UnaryExpression{Operator: "-", Operand: &jsast.NumberLiteral{Value: 3}}, Number(-3)},
		{"not-zero", &jsast.UnaryExpression{Operator: "!", Operand: &jsast.NumberLiteral{Value: 0}}, Bool(true)},
		{"bitwise-not", &jsast.UnaryExpression{Operator: "~", Operand: &jsast.NumberLiteral{Value: 0}}, Number(-1)},
		{
			"concat-strings",
			&jsast.BinaryExpression{Operator: "+", Left: &jsast.StringLiteral{Value: "a"}, Right: &jsast.StringLiteral{Value: "b"}},
			String("ab"),
		},
		{
			"concat-number-string",
			&jsast.BinaryExpression{Operator: "+", Left: &jsast.NumberLiteral{Value: 2}, Right: &jsast.StringLiteral{Value: "x"}},
			String("2x"),
		},
		{
			"arith",
			&jsast.BinaryExpression{Operator: "+", Left: &jsast.NumberLiteral{Value: 2}, Right: &jsast.NumberLiteral{Value: 3}},
			Number(5),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Eval(c.expr)
			if !ok {
				t.Fatalf("Eval(%s) not evaluable", c.name)
			}
			if got != c.want {
				t.Errorf("Eval(%s) = %+v, want %+v", c.name, got, c.want)
			}
		})
	}
}

func TestEvalDivisionByZeroNotEvaluable(t *testing.T) {
	e := &jsast.BinaryExpression{Operator: "/", Left: &jsast.NumberLiteral{Value: 1}, Right: &jsast.NumberLiteral{Value: 0}}
	if _, ok := Eval(e); ok {
		t.Error("division by zero should not be evaluable")
	}
}

func TestEvalUnknownNodeNotEvaluable(t *testing.T) {
	if _, ok := Eval(&jsast.Identifier{Name: "x"}); ok {
		t.Error("identifier should not be evaluable")
	}
}

func TestMaterializeNegativeNumber(t *testing.T) {
	e, ok := Materialize(Number(-5))
	if !ok {
		t.Fatal("expected materializable")
	}
	u, ok := e.(*jsast.UnaryExpression)
	if !ok || u.Operator != "-" {
		t.Fatalf("expected unary minus wrapper, got %#v", e)
	}
	lit, ok := u.Operand.(*jsast.NumberLiteral)
	if !ok || lit.Value != 5 {
		t.Fatalf("expected positive literal 5, got %#v", u.Operand)
	}
}

func TestMaterializeUndefined(t *testing.T) {
	e, ok := Materialize(Undefined())
	if !ok {
		t.Fatal("expected materializable")
	}
	u, ok := e.(*jsast.UnaryExpression)
	if !ok || u.Operator != "void" {
		t.Fatalf("expected void 0, got %#v", e)
	}
}

func TestMaterializeNonFiniteRefused(t *testing.T) {
	if _, ok := Materialize(Number(1)); !ok {
		t.Fatal("finite number should materialize")
	}
	nan := Number(0)
	nan.Num = nan.Num / nan.Num // NaN without importing math in the test
	if _, ok := Materialize(nan); ok {
		t.Error("NaN should not materialize")
	}
}
