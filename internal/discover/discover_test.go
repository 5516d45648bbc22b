package discover

import (
	"testing"

	"github.com/go-jsobf/jsdeob/internal/jsast"
)

func mustParse(t *testing.T, src string) *jsast.Program {
	t.Helper()
	prog, err := jsast.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func TestDiscoverArrays(t *testing.T) {
	src := `var _0x1 = [0,1,2,3,4,5,6,7,8,9,10];`
	state := Run(mustParse(t, src), src)
	arr, ok := state.Arrays["_0x1"]
	if !ok {
		t.Fatalf("expected array _0x1 to be discovered")
	}
	if len(arr.Elements) != 11 {
		t.Errorf("len = %d, want 11", len(arr.Elements))
	}
}

func TestDiscoverArraysRejectsShortAndMixed(t *testing.T) {
	src := `var tooShort = [1,2,3]; var mixed = [1,2,3,4,5,6,7,8,9,foo()];`
	state := Run(mustParse(t, src), src)
	if _, ok := state.Arrays["tooShort"]; ok {
		t.Errorf("tooShort should not be discovered (len < 10)")
	}
	if _, ok := state.Arrays["mixed"]; ok {
		t.Errorf("mixed should not be discovered (non-literal element)")
	}
}

func TestDiscoverStringTableAndDecoder(t *testing.T) {
	// A real lzstring payload for "alpha|beta|gamma" would require the
	// full encoder; here the blob decompresses to "", which
	// discoverStringTable treats as "no table" before any decoder-name
	// search runs, so this confirms it does not panic and finds nothing
	// rather than a spurious table.
	src := `x.decompressFromUTF16(""); D = function(i){ return T[i]; };`
	state := Run(mustParse(t, src), src)
	if state.Table != nil {
		t.Errorf("expected no table for an empty decompressed payload, got %+v", state.Table)
	}
}

func TestDiscoverStringTableIdentifierArgument(t *testing.T) {
	src := `var S = "";
x.decompressFromUTF16(S);
D = function(i){ return T[i]; };`
	state := Run(mustParse(t, src), src)
	if state.Table != nil {
		t.Errorf("expected no table for an empty decompressed payload, got %+v", state.Table)
	}
}

func TestDiscoverResolvers(t *testing.T) {
	src := `function R(k){
  switch(k){
    case "a": return window;
    case "b": return document;
    case "c": return console;
    case "d": return Math;
    case "e": return JSON;
    default: return undefined;
  }
}`
	state := Run(mustParse(t, src), src)
	if len(state.Resolvers) != 1 {
		t.Fatalf("expected 1 resolver, got %d", len(state.Resolvers))
	}
	r := state.Resolvers[0]
	if r.Name != "R" {
		t.Errorf("resolver name = %q, want R", r.Name)
	}
	if r.Map["a"] != "window" || r.Map["c"] != "console" {
		t.Errorf("unexpected mapping: %+v", r.Map)
	}
}

func TestDiscoverResolversRejectsBelowThreshold(t *testing.T) {
	src := `function R(k){
  switch(k){
    case "a": return window;
    case "b": return document;
    default: return undefined;
  }
}`
	state := Run(mustParse(t, src), src)
	if len(state.Resolvers) != 0 {
		t.Errorf("expected no resolvers below the 5-mapping threshold, got %d", len(state.Resolvers))
	}
}

func TestDiscoverResolversRejectsDisallowedTarget(t *testing.T) {
	src := `function R(k){
  switch(k){
    case "a": return notAllowedGlobalName;
    case "b": return alsoNotAllowed;
    case "c": return stillNotAllowed;
    case "d": return nopeNotThisOne;
    case "e": return noneOfThese;
    default: return undefined;
  }
}`
	state := Run(mustParse(t, src), src)
	if len(state.Resolvers) != 0 {
		t.Errorf("expected no resolvers when no case target is allow-listed, got %d", len(state.Resolvers))
	}
}
