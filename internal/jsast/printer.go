package jsast

import (
	"strconv"
	"strings"
)

// PrintError is returned when the printer cannot emit source for a
// rewritten tree. The rewrites this module performs never produce a
// tree print can't handle, so this should never occur in practice; a
// caller seeing it has found a bug.
type PrintError struct {
	Reason string
}

func (e *PrintError) Error() string { return "jsast: print: " + e.Reason }

// Print renders a Program back to source. It always emits canonical
// double-quoted strings and decimal numerals (see NumberLiteral.Hex),
// matching spec.md §4.2's printer contract. Comments recovered at parse
// time (Program.Comments) are reinserted immediately before the
// statement that originally followed them; any left over once the tree
// is exhausted (a trailing end-of-file comment, or one that sat inside
// a block whose statements were all removed by a rewrite pass) are
// flushed at the very end instead of being dropped.
func Print(p *Program) (string, error) {
	var b strings.Builder
	pr := &printer{sb: &b, comments: p.Comments}
	for _, s := range p.Body {
		pr.stmt(s)
	}
	pr.flushRemainingComments()
	return b.String(), nil
}

type printer struct {
	sb       *strings.Builder
	comments []Comment
	cpos     int
}

func (p *printer) w(s string) { p.sb.WriteString(s) }

// flushCommentsBefore emits every pending comment that appeared before
// byte offset off in the original source. Line comments need a
// terminating newline or the next emitted token would be swallowed
// into them, so every comment is followed by one.
func (p *printer) flushCommentsBefore(off int) {
	for p.cpos < len(p.comments) && p.comments[p.cpos].Offset < off {
		p.w(p.comments[p.cpos].Text)
		p.w("\n")
		p.cpos++
	}
}

func (p *printer) flushRemainingComments() {
	for ; p.cpos < len(p.comments); p.cpos++ {
		p.w(p.comments[p.cpos].Text)
		p.w("\n")
	}
}

// stmtOffset reports the byte offset a statement node was parsed from,
// used to decide which pending comments belong before it. Nodes
// synthesized by a rewrite pass rather than carried from the parse
// (none currently are, at statement granularity) would report 0 and
// simply surface any pending comments immediately before them.
func stmtOffset(s Statement) (int, bool) {
	switch n := s.(type) {
	case *BlockStatement:
		return n.Offset, true
	case *ExpressionStatement:
		return n.Offset, true
	case *VariableDeclaration:
		return n.Offset, true
	case *FunctionDeclaration:
		return n.Offset, true
	case *IfStatement:
		return n.Offset, true
	case *ReturnStatement:
		return n.Offset, true
	case *SwitchStatement:
		return n.Offset, true
	case *EmptyStatement:
		return n.Offset, true
	case *Unknown:
		return n.Offset, true
	default:
		return 0, false
	}
}

func (p *printer) stmt(s Statement) {
	if off, ok := stmtOffset(s); ok {
		p.flushCommentsBefore(off)
	}
	switch n := s.(type) {
	case *BlockStatement:
		p.w("{")
		for _, item := range n.Body {
			p.stmt(item)
		}
		p.w("}")
	case *ExpressionStatement:
		p.expr(n.Expression, 0)
		p.w(";")
	case *VariableDeclaration:
		p.w(n.Kind)
		p.w(" ")
		for i, d := range n.Declarations {
			if i > 0 {
				p.w(",")
			}
			p.w(d.Name.Name)
			if d.Init != nil {
				p.w("=")
				p.expr(d.Init, 2)
			}
		}
		p.w(";")
	case *FunctionDeclaration:
		p.function(n.Function)
	case *IfStatement:
		p.w("if(")
		p.expr(n.Test, 0)
		p.w(")")
		p.stmt(n.Consequent)
		if n.Alternate != nil {
			p.w("else ")
			p.stmt(n.Alternate)
		}
	case *ReturnStatement:
		p.w("return")
		if n.Argument != nil {
			p.w(" ")
			p.expr(n.Argument, 0)
		}
		p.w(";")
	case *SwitchStatement:
		p.w("switch(")
		p.expr(n.Discriminant, 0)
		p.w("){")
		for _, c := range n.Cases {
			if c.Test != nil {
				p.w("case ")
				p.expr(c.Test, 0)
				p.w(":")
			} else {
				p.w("default:")
			}
			for _, st := range c.Consequent {
				p.stmt(st)
			}
		}
		p.w("}")
	case *EmptyStatement:
		// P5 removes empty statements from statement lists (spec.md
		// §4.5); one that is still here, such as the branch of
		// "if(x);", needs its ";" to keep the meaning.
		p.w(";")
	case *Unknown:
		p.w(n.Source)
	case nil:
		// An if branch whose statement a rewrite pass removed.
		p.w(";")
	default:
		// Unreachable for a tree built only from convertStmt/the
		// rewrite passes, both of which only ever produce the kinds
		// handled above.
	}
}

func (p *printer) function(fn *FunctionLiteral) {
	p.w("function")
	if fn.Name != "" {
		p.w(" " + fn.Name)
	}
	p.w("(")
	p.w(strings.Join(fn.Params, ","))
	p.w(")")
	if fn.Body != nil {
		p.stmt(fn.Body)
	} else {
		p.w("{}")
	}
}

// prec gives a rough binding power for deciding when an operand needs
// parentheses. It only needs to be precise enough to keep printed
// output re-parseable, not to match a particular style guide.
func prec(e Expression) int {
	switch n := e.(type) {
	case *NumberLiteral, *StringLiteral, *BooleanLiteral, *NullLiteral, *Identifier:
		return 100
	case *MemberExpression, *CallExpression:
		return 90
	case *UnaryExpression:
		return 80
	case *BinaryExpression:
		return binaryPrec(n.Operator)
	case *LogicalExpression:
		if n.Operator == "&&" {
			return 20
		}
		return 10
	case *ConditionalExpression:
		return 5
	case *SequenceExpression:
		return 0
	default:
		return 50
	}
}

func binaryPrec(op string) int {
	switch op {
	case "**":
		return 70
	case "*", "/", "%":
		return 60
	case "+", "-":
		return 50
	case "<<", ">>", ">>>":
		return 45
	case "<", "<=", ">", ">=":
		return 40
	case "==", "!=", "===", "!==":
		return 35
	case "&":
		return 34
	case "^":
		return 33
	case "|":
		return 32
	default:
		return 30
	}
}

func (p *printer) expr(e Expression, parentPrec int) {
	if e == nil {
		return
	}
	needParens := prec(e) < parentPrec
	if needParens {
		p.w("(")
	}
	switch n := e.(type) {
	case *NumberLiteral:
		p.w(formatNumber(n.Value))
	case *StringLiteral:
		p.w(strconv.Quote(n.Value))
	case *BooleanLiteral:
		if n.Value {
			p.w("true")
		} else {
			p.w("false")
		}
	case *NullLiteral:
		p.w("null")
	case *ArrayLiteral:
		p.w("[")
		for i, item := range n.Elements {
			if i > 0 {
				p.w(",")
			}
			p.expr(item, 2)
		}
		p.w("]")
	case *Identifier:
		p.w(n.Name)
	case *UnaryExpression:
		if isWordOperator(n.Operator) {
			p.w(n.Operator + " ")
		} else {
			p.w(n.Operator)
		}
		p.expr(n.Operand, prec(n))
	case *BinaryExpression:
		pp := prec(n)
		p.expr(n.Left, pp)
		if isWordOperator(n.Operator) {
			p.w(" " + n.Operator + " ")
		} else {
			p.w(n.Operator)
		}
		p.expr(n.Right, pp+1)
	case *LogicalExpression:
		pp := prec(n)
		p.expr(n.Left, pp)
		p.w(n.Operator)
		p.expr(n.Right, pp+1)
	case *ConditionalExpression:
		p.expr(n.Test, 6)
		p.w("?")
		p.expr(n.Consequent, 0)
		p.w(":")
		p.expr(n.Alternate, 0)
	case *MemberExpression:
		p.expr(n.Object, 90)
		if n.Computed {
			p.w("[")
			p.expr(n.Property, 0)
			p.w("]")
		} else {
			p.w(".")
			if id, ok := n.Property.(*Identifier); ok {
				p.w(id.Name)
			}
		}
	case *CallExpression:
		p.expr(n.Callee, 90)
		p.w("(")
		for i, a := range n.Arguments {
			if i > 0 {
				p.w(",")
			}
			p.expr(a, 2)
		}
		p.w(")")
	case *SequenceExpression:
		for i, item := range n.Expressions {
			if i > 0 {
				p.w(",")
			}
			p.expr(item, 2)
		}
	case *AssignmentExpression:
		p.expr(n.Left, 0)
		p.w("=")
		p.expr(n.Right, 2)
	case *FunctionLiteral:
		p.function(n)
	case *Unknown:
		p.w(n.Source)
	}
	if needParens {
		p.w(")")
	}
}

func isWordOperator(op string) bool {
	switch op {
	case "void", "typeof", "delete", "in", "instanceof":
		return true
	default:
		return false
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
