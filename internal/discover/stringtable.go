package discover

import (
	"regexp"
	"strings"

	"github.com/go-jsobf/jsdeob/internal/jsast"
	"github.com/go-jsobf/jsdeob/internal/lzstring"
)

const decoderCallee = "decompressFromUTF16"

// decoderAssignmentPattern matches "NAME = function(P){ return A[P]; }",
// the textual fallback shape from spec.md §4.4 strategy 2, allowing the
// whitespace and optional trailing semicolon real minifiers vary.
var decoderAssignmentPattern = regexp.MustCompile(
	`([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*function\s*\(\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\)\s*\{\s*return\s+([A-Za-z_$][A-Za-z0-9_$]*)\[\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\]\s*;?\s*\}`,
)

// discoverStringTable finds the first call to <obj>.decompressFromUTF16,
// decompresses its argument, and locates the decoder function name.
func discoverStringTable(prog *jsast.Program, rawSource string) *StringTable {
	call, arg := findDecompressCall(prog)
	if call == nil {
		return nil
	}

	blob, ok := resolveStringArgument(prog, arg)
	if !ok {
		return nil
	}
	decompressed := lzstring.Decompress(blob)
	if decompressed == "" {
		return nil
	}
	entries := strings.Split(decompressed, "|")

	decoder := findDecoderByAST(prog, call)
	if decoder == "" {
		decoder = findDecoderByText(rawSource)
	}
	return &StringTable{Entries: entries, DecoderName: decoder}
}

func findDecompressCall(prog *jsast.Program) (*jsast.CallExpression, jsast.Expression) {
	var found *jsast.CallExpression
	jsast.Walk(prog, func(e jsast.Expression) {
		if found != nil {
			return
		}
		call, ok := e.(*jsast.CallExpression)
		if !ok || len(call.Arguments) != 1 {
			return
		}
		member, ok := call.Callee.(*jsast.MemberExpression)
		if !ok {
			return
		}
		id, ok := member.Property.(*jsast.Identifier)
		if !ok || id.Name != decoderCallee {
			return
		}
		found = call
	}, nil)
	if found == nil {
		return nil, nil
	}
	return found, found.Arguments[0]
}

// resolveStringArgument accepts either an inline string literal or an
// identifier bound to a declarator whose initializer is a string
// literal, per spec.md §4.4.
func resolveStringArgument(prog *jsast.Program, arg jsast.Expression) (string, bool) {
	switch n := arg.(type) {
	case *jsast.StringLiteral:
		return n.Value, true
	case *jsast.Identifier:
		var value string
		var found bool
		jsast.Walk(prog, nil, func(s jsast.Statement) {
			if found {
				return
			}
			decl, ok := s.(*jsast.VariableDeclaration)
			if !ok {
				return
			}
			for _, d := range decl.Declarations {
				if d.Name.Name != n.Name {
					continue
				}
				if lit, ok := d.Init.(*jsast.StringLiteral); ok {
					value, found = lit.Value, true
					return
				}
			}
		})
		return value, found
	default:
		return "", false
	}
}

// findDecoderByAST implements spec.md §4.4 strategy 1: within the
// enclosing function body of the decompressFromUTF16 call (or the
// top-level program body, if the call isn't inside any function), look
// for an assignment "NAME = function(P){ return ARR[P]; }" whose target
// name resolves outside that scope — i.e. is not one of the scope's own
// parameters or var/function-declared locals.
func findDecoderByAST(prog *jsast.Program, call *jsast.CallExpression) string {
	if call == nil {
		return ""
	}
	scope, locals := findEnclosingScope(prog, call)
	for _, s := range scope {
		expr, ok := s.(*jsast.ExpressionStatement)
		if !ok {
			continue
		}
		assign, ok := expr.Expression.(*jsast.AssignmentExpression)
		if !ok {
			continue
		}
		target, ok := assign.Left.(*jsast.Identifier)
		if !ok {
			continue
		}
		fn, ok := assign.Right.(*jsast.FunctionLiteral)
		if !ok || len(fn.Params) != 1 || fn.Body == nil || len(fn.Body.Body) != 1 {
			continue
		}
		if locals[target.Name] {
			continue // must resolve outside the enclosing scope
		}
		ret, ok := fn.Body.Body[0].(*jsast.ReturnStatement)
		if !ok || ret.Argument == nil {
			continue
		}
		member, ok := ret.Argument.(*jsast.MemberExpression)
		if !ok || !member.Computed {
			continue
		}
		_, okArr := member.Object.(*jsast.Identifier)
		paramID, okParam := member.Property.(*jsast.Identifier)
		if !okArr || !okParam || paramID.Name != fn.Params[0] {
			continue
		}
		return target.Name
	}
	return ""
}

// findEnclosingScope locates the statement list and local-name set of
// the innermost function body that lexically contains call, descending
// through nested function literals until the one directly surrounding
// the call is found. It falls back to the top-level program body when
// the call isn't nested in any function.
func findEnclosingScope(prog *jsast.Program, call *jsast.CallExpression) ([]jsast.Statement, map[string]bool) {
	if stmts, params, ok := searchScope(prog.Body, nil, call); ok {
		locals := collectLocals(stmts)
		for _, p := range params {
			locals[p] = true
		}
		return stmts, locals
	}
	return prog.Body, collectLocals(prog.Body)
}

// searchScope returns the statement list call belongs to, preferring
// the innermost function whose body contains it.
func searchScope(stmts []jsast.Statement, params []string, call *jsast.CallExpression) ([]jsast.Statement, []string, bool) {
	for _, s := range stmts {
		for _, fn := range nestedFunctionLiterals(s) {
			if fn.Body == nil {
				continue
			}
			if inner, innerParams, ok := searchScope(fn.Body.Body, fn.Params, call); ok {
				return inner, innerParams, true
			}
		}
		if containsCall(s, call) {
			return stmts, params, true
		}
	}
	return nil, nil, false
}

// containsCall reports whether call occurs anywhere within statement s
// (including inside nested function literals; callers that want a
// boundary at the nearest function scope check nestedFunctionLiterals
// first and only fall through to containsCall once that has failed).
func containsCall(s jsast.Statement, call *jsast.CallExpression) bool {
	found := false
	jsast.Walk(&jsast.Program{Body: []jsast.Statement{s}}, func(e jsast.Expression) {
		if ce, ok := e.(*jsast.CallExpression); ok && ce == call {
			found = true
		}
	}, nil)
	return found
}

// nestedFunctionLiterals collects every function literal reachable from
// s without crossing into another function's body: declarations and
// function expressions assigned or passed within s's own scope (blocks,
// if/else, switch bodies all share that scope in this AST, since var
// is function-scoped, not block-scoped).
func nestedFunctionLiterals(s jsast.Statement) []*jsast.FunctionLiteral {
	var out []*jsast.FunctionLiteral
	var visitExpr func(jsast.Expression)
	visitExpr = func(e jsast.Expression) {
		switch n := e.(type) {
		case nil:
			return
		case *jsast.FunctionLiteral:
			out = append(out, n)
		case *jsast.UnaryExpression:
			visitExpr(n.Operand)
		case *jsast.BinaryExpression:
			visitExpr(n.Left)
			visitExpr(n.Right)
		case *jsast.LogicalExpression:
			visitExpr(n.Left)
			visitExpr(n.Right)
		case *jsast.ConditionalExpression:
			visitExpr(n.Test)
			visitExpr(n.Consequent)
			visitExpr(n.Alternate)
		case *jsast.MemberExpression:
			visitExpr(n.Object)
			visitExpr(n.Property)
		case *jsast.CallExpression:
			visitExpr(n.Callee)
			for _, a := range n.Arguments {
				visitExpr(a)
			}
		case *jsast.SequenceExpression:
			for _, item := range n.Expressions {
				visitExpr(item)
			}
		case *jsast.ArrayLiteral:
			for _, item := range n.Elements {
				visitExpr(item)
			}
		case *jsast.AssignmentExpression:
			visitExpr(n.Left)
			visitExpr(n.Right)
		}
	}
	var visitStmt func(jsast.Statement)
	visitStmt = func(s jsast.Statement) {
		switch n := s.(type) {
		case *jsast.BlockStatement:
			for _, item := range n.Body {
				visitStmt(item)
			}
		case *jsast.ExpressionStatement:
			visitExpr(n.Expression)
		case *jsast.VariableDeclaration:
			for _, d := range n.Declarations {
				if d.Init != nil {
					visitExpr(d.Init)
				}
			}
		case *jsast.FunctionDeclaration:
			if n.Function != nil {
				out = append(out, n.Function)
			}
		case *jsast.IfStatement:
			visitExpr(n.Test)
			visitStmt(n.Consequent)
			if n.Alternate != nil {
				visitStmt(n.Alternate)
			}
		case *jsast.ReturnStatement:
			if n.Argument != nil {
				visitExpr(n.Argument)
			}
		case *jsast.SwitchStatement:
			visitExpr(n.Discriminant)
			for _, c := range n.Cases {
				if c.Test != nil {
					visitExpr(c.Test)
				}
				for _, st := range c.Consequent {
					visitStmt(st)
				}
			}
		}
	}
	visitStmt(s)
	return out
}

// collectLocals gathers the names a function scope binds directly:
// var-declared names and named function declarations, descending into
// nested blocks/if/switch bodies (same function scope) but not into
// nested function bodies (a different scope).
func collectLocals(stmts []jsast.Statement) map[string]bool {
	locals := map[string]bool{}
	var visit func(jsast.Statement)
	visit = func(s jsast.Statement) {
		switch n := s.(type) {
		case *jsast.BlockStatement:
			for _, item := range n.Body {
				visit(item)
			}
		case *jsast.VariableDeclaration:
			for _, d := range n.Declarations {
				locals[d.Name.Name] = true
			}
		case *jsast.FunctionDeclaration:
			if n.Function != nil && n.Function.Name != "" {
				locals[n.Function.Name] = true
			}
		case *jsast.IfStatement:
			visit(n.Consequent)
			if n.Alternate != nil {
				visit(n.Alternate)
			}
		case *jsast.SwitchStatement:
			for _, c := range n.Cases {
				for _, st := range c.Consequent {
					visit(st)
				}
			}
		}
	}
	for _, s := range stmts {
		visit(s)
	}
	return locals
}

// findDecoderByText implements spec.md §4.4 strategy 2: the obfuscated
// file ships the codec library's own implementation (which also
// contains the literal string "decompressFromUTF16"), so the call site
// is always the LAST occurrence in the source, not the first. Scanning
// forward from an earlier occurrence would find the library's own
// internals instead of the decoder assignment; spec.md §9 calls this
// out as the critical detail to preserve.
func findDecoderByText(src string) string {
	last := strings.LastIndex(src, decoderCallee)
	if last < 0 {
		return ""
	}
	end := last + 1000
	if end > len(src) {
		end = len(src)
	}
	window := src[last:end]
	m := decoderAssignmentPattern.FindStringSubmatch(window)
	if m == nil {
		return ""
	}
	name, param, _, propParam := m[1], m[2], m[3], m[4]
	if param != propParam {
		return ""
	}
	return name
}
