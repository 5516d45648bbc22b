package rewrite

import (
	"github.com/go-jsobf/jsdeob/internal/discover"
	"github.com/go-jsobf/jsdeob/internal/jsast"
)

// Resolver runs P4 (spec.md §4.5): a call "NAME(\"KEY\")" where NAME is
// a discovered global resolver and KEY maps to an allow-listed global
// is replaced by a bare identifier for that global. Targets outside
// AllowedGlobals are never inlined, even when the resolver's own case
// mapping names them (spec.md §6).
func Resolver(prog *jsast.Program, resolvers []*discover.GlobalResolver) int {
	if len(resolvers) == 0 {
		return 0
	}
	byName := make(map[string]*discover.GlobalResolver, len(resolvers))
	for _, r := range resolvers {
		byName[r.Name] = r
	}
	count := 0
	jsast.Transform(prog, func(e jsast.Expression) jsast.Expression {
		call, ok := e.(*jsast.CallExpression)
		if !ok || len(call.Arguments) != 1 {
			return e
		}
		callee, ok := call.Callee.(*jsast.Identifier)
		if !ok {
			return e
		}
		r, ok := byName[callee.Name]
		if !ok {
			return e
		}
		key, ok := call.Arguments[0].(*jsast.StringLiteral)
		if !ok {
			return e
		}
		target, ok := r.Map[key.Value]
		if !ok || !AllowedGlobals[target] {
			return e
		}
		count++
		return &jsast.Identifier{Name: target}
	}, nil)
	return count
}
