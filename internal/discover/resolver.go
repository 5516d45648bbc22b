package discover

import (
	"github.com/go-jsobf/jsdeob/internal/allowlist"
	"github.com/go-jsobf/jsdeob/internal/jsast"
)

// minResolverMappings is the spec.md §4.4 threshold: a switch-on-param
// function needs at least this many case labels that resolve to an
// allow-listed global before it is promoted to a GlobalResolver. Below
// it, a switch this shape is just as likely to be ordinary program
// logic.
const minResolverMappings = 5

// discoverResolvers finds every function declaration, and every
// function expression that is the initializer of a var declarator,
// whose body is a single switch statement on its sole parameter, where
// at least minResolverMappings string-literal case labels map to an
// allow-listed global identifier. Function expressions in any other
// position (assigned, passed as arguments) are not considered, and
// neither is anything inside a function expression's body (see
// jsast.Walk).
func discoverResolvers(prog *jsast.Program) []*GlobalResolver {
	var resolvers []*GlobalResolver

	consider := func(name string, fn *jsast.FunctionLiteral) {
		if fn == nil || len(fn.Params) != 1 || fn.Body == nil || len(fn.Body.Body) != 1 {
			return
		}
		sw, ok := fn.Body.Body[0].(*jsast.SwitchStatement)
		if !ok {
			return
		}
		disc, ok := sw.Discriminant.(*jsast.Identifier)
		if !ok || disc.Name != fn.Params[0] {
			return
		}
		mapping := make(map[string]string)
		for _, c := range sw.Cases {
			if c.Test == nil {
				continue
			}
			key, ok := c.Test.(*jsast.StringLiteral)
			if !ok {
				continue
			}
			target, ok := resolverTarget(c.Consequent)
			if !ok || !allowlist.Globals[target] {
				continue
			}
			mapping[key.Value] = target
		}
		if len(mapping) < minResolverMappings {
			return
		}
		if name == "" {
			name = fn.Name
		}
		if name == "" {
			return
		}
		resolvers = append(resolvers, &GlobalResolver{Name: name, Map: mapping})
	}

	jsast.Walk(prog, nil, func(s jsast.Statement) {
		if fd, ok := s.(*jsast.FunctionDeclaration); ok {
			consider(fd.Function.Name, fd.Function)
		}
	})
	jsast.Walk(prog, nil, func(s jsast.Statement) {
		decl, ok := s.(*jsast.VariableDeclaration)
		if !ok {
			return
		}
		for _, d := range decl.Declarations {
			if fn, ok := d.Init.(*jsast.FunctionLiteral); ok {
				consider(d.Name.Name, fn)
			}
		}
	})
	return resolvers
}

// resolverTarget extracts the global name a case body resolves to. It
// accepts "return NAME;", "return OBJ["NAME"];" and "return OBJ.NAME;",
// the three shapes spec.md §4.4 names.
func resolverTarget(body []jsast.Statement) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	ret, ok := body[0].(*jsast.ReturnStatement)
	if !ok || ret.Argument == nil {
		return "", false
	}
	switch n := ret.Argument.(type) {
	case *jsast.Identifier:
		return n.Name, true
	case *jsast.MemberExpression:
		if n.Computed {
			if lit, ok := n.Property.(*jsast.StringLiteral); ok {
				return lit.Value, true
			}
			return "", false
		}
		if id, ok := n.Property.(*jsast.Identifier); ok {
			return id.Name, true
		}
	}
	return "", false
}
