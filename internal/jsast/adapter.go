package jsast

import (
	"fmt"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
	"github.com/dop251/goja/token"
)

// ParseError is returned when the underlying parser cannot produce a
// tree even in recovery mode.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "jsast: parse: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Parse delegates to goja's ECMAScript parser (the third-party
// collaborator spec.md §4.2 calls for) and normalizes the resulting
// tree into this package's own node kinds. goja is configured for its
// most permissive mode so that minor syntax it cannot fully model
// (classes, template literals, destructuring, ...) is still returned as
// a tree rather than a hard failure; anything the converter doesn't
// recognize becomes an Unknown leaf instead of aborting the parse.
func Parse(src string) (*Program, error) {
	prog, err := parser.ParseFile(nil, "", src, parser.IgnoreRegExpErrors)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	c := &converter{src: src}
	out := &Program{Comments: scanComments(src)}
	for _, s := range prog.Body {
		out.Body = append(out.Body, c.convertStmt(s))
	}
	return out, nil
}

type converter struct {
	src string
}

func (c *converter) echo(n ast.Node) string {
	if n == nil {
		return ""
	}
	from, to := int(n.Idx0())-1, int(n.Idx1())-1
	if from < 0 || to > len(c.src) || from > to {
		return ""
	}
	return c.src[from:to]
}

func (c *converter) convertStmt(s ast.Statement) Statement {
	if s == nil {
		return &EmptyStatement{}
	}
	offset := int(s.Idx0()) - 1
	switch n := s.(type) {
	case *ast.BlockStatement:
		out := &BlockStatement{baseStmt: baseStmt{Offset: offset}}
		for _, item := range n.List {
			out.Body = append(out.Body, c.convertStmt(item))
		}
		return out
	case *ast.ExpressionStatement:
		return &ExpressionStatement{baseStmt: baseStmt{Offset: offset}, Expression: c.convertExpr(n.Expression)}
	case *ast.VariableStatement:
		decl := &VariableDeclaration{baseStmt: baseStmt{Offset: offset}, Kind: "var"}
		for _, item := range n.List {
			ve, ok := item.(*ast.VariableExpression)
			if !ok {
				continue
			}
			d := &VariableDeclarator{Name: Identifier{Name: string(ve.Name)}}
			if ve.Initializer != nil {
				d.Init = c.convertExpr(ve.Initializer)
			}
			decl.Declarations = append(decl.Declarations, d)
		}
		return decl
	case *ast.FunctionDeclaration:
		return &FunctionDeclaration{baseStmt: baseStmt{Offset: offset}, Function: c.convertFunctionLiteral(n.Function)}
	case *ast.IfStatement:
		out := &IfStatement{baseStmt: baseStmt{Offset: offset}, Test: c.convertExpr(n.Test), Consequent: c.convertStmt(n.Consequent)}
		if n.Alternate != nil {
			out.Alternate = c.convertStmt(n.Alternate)
		}
		return out
	case *ast.ReturnStatement:
		out := &ReturnStatement{baseStmt: baseStmt{Offset: offset}}
		if n.Argument != nil {
			out.Argument = c.convertExpr(n.Argument)
		}
		return out
	case *ast.SwitchStatement:
		out := &SwitchStatement{baseStmt: baseStmt{Offset: offset}, Discriminant: c.convertExpr(n.Discriminant)}
		for _, cs := range n.Body {
			sc := &SwitchCase{}
			if cs.Test != nil {
				sc.Test = c.convertExpr(cs.Test)
			}
			for _, st := range cs.Consequent {
				sc.Consequent = append(sc.Consequent, c.convertStmt(st))
			}
			out.Cases = append(out.Cases, sc)
		}
		return out
	case *ast.EmptyStatement:
		return &EmptyStatement{baseStmt: baseStmt{Offset: offset}}
	default:
		return &Unknown{baseStmtMarker: true, Source: c.echo(s), Offset: offset}
	}
}

func (c *converter) convertFunctionLiteral(fn *ast.FunctionLiteral) *FunctionLiteral {
	if fn == nil {
		return nil
	}
	out := &FunctionLiteral{}
	if fn.Name != nil {
		out.Name = string(fn.Name.Name)
	}
	if fn.ParameterList != nil {
		for _, p := range fn.ParameterList.List {
			if id, ok := p.Target.(*ast.Identifier); ok {
				out.Params = append(out.Params, string(id.Name))
			}
		}
	}
	if block, ok := fn.Body.(*ast.BlockStatement); ok {
		body := c.convertStmt(block)
		if b, ok := body.(*BlockStatement); ok {
			out.Body = b
		}
	}
	return out
}

func (c *converter) convertExpr(e ast.Expression) Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.NumberLiteral:
		hex := len(n.Literal) > 1 && n.Literal[0] == '0' && (n.Literal[1] == 'x' || n.Literal[1] == 'X')
		return &NumberLiteral{Value: n.Value, Hex: hex}
	case *ast.StringLiteral:
		return &StringLiteral{Value: string(n.Value)}
	case *ast.BooleanLiteral:
		return &BooleanLiteral{Value: n.Value}
	case *ast.NullLiteral:
		return &NullLiteral{}
	case *ast.ArrayLiteral:
		out := &ArrayLiteral{}
		for _, item := range n.Value {
			out.Elements = append(out.Elements, c.convertExpr(item))
		}
		return out
	case *ast.Identifier:
		return &Identifier{Name: string(n.Name)}
	case *ast.UnaryExpression:
		return &UnaryExpression{Operator: operatorString(n.Operator), Operand: c.convertExpr(n.Operand)}
	case *ast.BinaryExpression:
		op := operatorString(n.Operator)
		if op == "&&" || op == "||" {
			return &LogicalExpression{Operator: op, Left: c.convertExpr(n.Left), Right: c.convertExpr(n.Right)}
		}
		return &BinaryExpression{Operator: op, Left: c.convertExpr(n.Left), Right: c.convertExpr(n.Right)}
	case *ast.ConditionalExpression:
		return &ConditionalExpression{
			Test:       c.convertExpr(n.Test),
			Consequent: c.convertExpr(n.Consequent),
			Alternate:  c.convertExpr(n.Alternate),
		}
	case *ast.DotExpression:
		return &MemberExpression{Object: c.convertExpr(n.Left), Property: &Identifier{Name: string(n.Identifier.Name)}, Computed: false}
	case *ast.BracketExpression:
		return &MemberExpression{Object: c.convertExpr(n.Left), Property: c.convertExpr(n.Member), Computed: true}
	case *ast.CallExpression:
		out := &CallExpression{Callee: c.convertExpr(n.Callee)}
		for _, a := range n.ArgumentList {
			out.Arguments = append(out.Arguments, c.convertExpr(a))
		}
		return out
	case *ast.SequenceExpression:
		out := &SequenceExpression{}
		for _, item := range n.Sequence {
			out.Expressions = append(out.Expressions, c.convertExpr(item))
		}
		return out
	case *ast.FunctionLiteral:
		return c.convertFunctionLiteral(n)
	case *ast.AssignExpression:
		if n.Operator == token.ASSIGN {
			return &AssignmentExpression{Left: c.convertExpr(n.Left), Right: c.convertExpr(n.Right)}
		}
		return &Unknown{Source: c.echo(e)}
	default:
		return &Unknown{Source: c.echo(e)}
	}
}

// operatorString renders a goja token as the textual operator this
// package's node kinds store. Anything not in the literal evaluator's
// domain (§4.3) is returned as its raw token string, which is harmless
// since no pass matches on it.
func operatorString(t token.Token) string {
	switch t {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.MULTIPLY:
		return "*"
	case token.SLASH:
		return "/"
	case token.REMAINDER:
		return "%"
	case token.EXPONENT:
		return "**"
	case token.AND:
		return "&"
	case token.OR:
		return "|"
	case token.EXCLUSIVE_OR:
		return "^"
	case token.SHIFT_LEFT:
		return "<<"
	case token.SHIFT_RIGHT:
		return ">>"
	case token.UNSIGNED_SHIFT_RIGHT:
		return ">>>"
	case token.LOGICAL_AND:
		return "&&"
	case token.LOGICAL_OR:
		return "||"
	case token.LESS:
		return "<"
	case token.LESS_OR_EQUAL:
		return "<="
	case token.GREATER:
		return ">"
	case token.GREATER_OR_EQUAL:
		return ">="
	case token.EQUAL:
		return "=="
	case token.NOT_EQUAL:
		return "!="
	case token.STRICT_EQUAL:
		return "==="
	case token.STRICT_NOT_EQUAL:
		return "!=="
	case token.NOT:
		return "!"
	case token.BITWISE_NOT:
		return "~"
	case token.TYPEOF:
		return "typeof"
	case token.VOID:
		return "void"
	case token.DELETE:
		return "delete"
	default:
		return fmt.Sprintf("%v", t)
	}
}
