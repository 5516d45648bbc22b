package jsast

// Transform walks the whole program once, depth-first (children before
// parents), and applies exprFn to every expression and stmtFn to every
// statement it visits, except that statements inside the body of a
// function expression (as opposed to a function declaration) get no
// stmtFn call; their expressions still get exprFn. Either hook may be
// nil. A stmtFn that returns
// nil drops that statement from its enclosing list (used by P5's empty-
// statement and dead-branch removal); exprFn must never return nil for
// a non-nil input — "no rewrite" means returning the same node.
//
// This is the one generic walker the five inliner passes (internal/
// rewrite) and parts of artifact discovery share, mirroring how the
// teacher centralizes its bit-level helpers (ReverseUint32, the shared
// prefixDecoder) in one place instead of duplicating them per codec.
func Transform(p *Program, exprFn func(Expression) Expression, stmtFn func(Statement) Statement) {
	p.Body = transformStmtList(p.Body, exprFn, stmtFn)
}

func transformStmtList(list []Statement, exprFn func(Expression) Expression, stmtFn func(Statement) Statement) []Statement {
	out := list[:0]
	for _, s := range list {
		if r := transformStmt(s, exprFn, stmtFn); r != nil {
			out = append(out, r)
		}
	}
	return out
}

func transformStmt(s Statement, exprFn func(Expression) Expression, stmtFn func(Statement) Statement) Statement {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *BlockStatement:
		n.Body = transformStmtList(n.Body, exprFn, stmtFn)
	case *ExpressionStatement:
		n.Expression = transformExpr(n.Expression, exprFn)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			if d.Init != nil {
				d.Init = transformExpr(d.Init, exprFn)
			}
		}
	case *FunctionDeclaration:
		if n.Function != nil && n.Function.Body != nil {
			n.Function.Body.Body = transformStmtList(n.Function.Body.Body, exprFn, stmtFn)
		}
	case *IfStatement:
		n.Test = transformExpr(n.Test, exprFn)
		n.Consequent = transformStmt(n.Consequent, exprFn, stmtFn)
		if n.Alternate != nil {
			n.Alternate = transformStmt(n.Alternate, exprFn, stmtFn)
		}
	case *ReturnStatement:
		if n.Argument != nil {
			n.Argument = transformExpr(n.Argument, exprFn)
		}
	case *SwitchStatement:
		n.Discriminant = transformExpr(n.Discriminant, exprFn)
		for _, c := range n.Cases {
			if c.Test != nil {
				c.Test = transformExpr(c.Test, exprFn)
			}
			c.Consequent = transformStmtList(c.Consequent, exprFn, stmtFn)
		}
	}
	if stmtFn != nil {
		return stmtFn(s)
	}
	return s
}

func transformExpr(e Expression, fn func(Expression) Expression) Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *UnaryExpression:
		n.Operand = transformExpr(n.Operand, fn)
	case *BinaryExpression:
		n.Left = transformExpr(n.Left, fn)
		n.Right = transformExpr(n.Right, fn)
	case *LogicalExpression:
		n.Left = transformExpr(n.Left, fn)
		n.Right = transformExpr(n.Right, fn)
	case *ConditionalExpression:
		n.Test = transformExpr(n.Test, fn)
		n.Consequent = transformExpr(n.Consequent, fn)
		n.Alternate = transformExpr(n.Alternate, fn)
	case *MemberExpression:
		n.Object = transformExpr(n.Object, fn)
		n.Property = transformExpr(n.Property, fn)
	case *CallExpression:
		n.Callee = transformExpr(n.Callee, fn)
		for i, a := range n.Arguments {
			n.Arguments[i] = transformExpr(a, fn)
		}
	case *SequenceExpression:
		for i, item := range n.Expressions {
			n.Expressions[i] = transformExpr(item, fn)
		}
	case *ArrayLiteral:
		for i, item := range n.Elements {
			n.Elements[i] = transformExpr(item, fn)
		}
	case *AssignmentExpression:
		n.Left = transformExpr(n.Left, fn)
		n.Right = transformExpr(n.Right, fn)
	case *FunctionLiteral:
		if n.Body != nil {
			n.Body.Body = transformStmtList(n.Body.Body, fn, nil)
		}
	}
	if fn == nil {
		return e
	}
	return fn(e)
}

// Walk calls visitExpr on every expression in the program and visitStmt
// on every statement outside the bodies of function expressions,
// read-only: statements inside a function expression's body are not
// passed to visitStmt, though their expressions reach visitExpr. It is
// used by artifact discovery, which only needs to find nodes, never
// mutate them.
func Walk(p *Program, visitExpr func(Expression), visitStmt func(Statement)) {
	for _, s := range p.Body {
		walkStmt(s, visitExpr, visitStmt)
	}
}

func walkStmt(s Statement, visitExpr func(Expression), visitStmt func(Statement)) {
	if s == nil {
		return
	}
	if visitStmt != nil {
		visitStmt(s)
	}
	switch n := s.(type) {
	case *BlockStatement:
		for _, item := range n.Body {
			walkStmt(item, visitExpr, visitStmt)
		}
	case *ExpressionStatement:
		walkExpr(n.Expression, visitExpr)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			if d.Init != nil {
				walkExpr(d.Init, visitExpr)
			}
		}
	case *FunctionDeclaration:
		if n.Function != nil && n.Function.Body != nil {
			for _, item := range n.Function.Body.Body {
				walkStmt(item, visitExpr, visitStmt)
			}
		}
	case *IfStatement:
		walkExpr(n.Test, visitExpr)
		walkStmt(n.Consequent, visitExpr, visitStmt)
		if n.Alternate != nil {
			walkStmt(n.Alternate, visitExpr, visitStmt)
		}
	case *ReturnStatement:
		if n.Argument != nil {
			walkExpr(n.Argument, visitExpr)
		}
	case *SwitchStatement:
		walkExpr(n.Discriminant, visitExpr)
		for _, c := range n.Cases {
			if c.Test != nil {
				walkExpr(c.Test, visitExpr)
			}
			for _, st := range c.Consequent {
				walkStmt(st, visitExpr, visitStmt)
			}
		}
	}
}

func walkExpr(e Expression, visit func(Expression)) {
	if e == nil {
		return
	}
	if visit != nil {
		visit(e)
	}
	switch n := e.(type) {
	case *UnaryExpression:
		walkExpr(n.Operand, visit)
	case *BinaryExpression:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *LogicalExpression:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *ConditionalExpression:
		walkExpr(n.Test, visit)
		walkExpr(n.Consequent, visit)
		walkExpr(n.Alternate, visit)
	case *MemberExpression:
		walkExpr(n.Object, visit)
		walkExpr(n.Property, visit)
	case *CallExpression:
		walkExpr(n.Callee, visit)
		for _, a := range n.Arguments {
			walkExpr(a, visit)
		}
	case *SequenceExpression:
		for _, item := range n.Expressions {
			walkExpr(item, visit)
		}
	case *ArrayLiteral:
		for _, item := range n.Elements {
			walkExpr(item, visit)
		}
	case *AssignmentExpression:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *FunctionLiteral:
		if n.Body != nil {
			for _, item := range n.Body.Body {
				walkStmt(item, visit, nil)
			}
		}
	}
}
