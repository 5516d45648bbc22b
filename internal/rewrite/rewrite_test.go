package rewrite

import (
	"testing"

	"github.com/go-jsobf/jsdeob/internal/discover"
	"github.com/go-jsobf/jsdeob/internal/jsast"
	"github.com/go-jsobf/jsdeob/internal/literal"
)

func mustParse(t *testing.T, src string) *jsast.Program {
	t.Helper()
	prog, err := jsast.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func mustPrint(t *testing.T, prog *jsast.Program) string {
	t.Helper()
	out, err := jsast.Print(prog)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	return out
}

func TestArrayAccess(t *testing.T) {
	prog := mustParse(t, `var y = arr[2];`)
	arrays := map[string]*discover.ConstantArray{
		"arr": {Name: "arr", Elements: []literal.Value{
			literal.Number(10), literal.Number(20), literal.String("hit"),
		}},
	}
	n := ArrayAccess(prog, arrays)
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
	if got := mustPrint(t, prog); got != `var y="hit";` {
		t.Errorf("got %q", got)
	}
}

func TestArrayAccessOutOfRangeLeftAlone(t *testing.T) {
	prog := mustParse(t, `var y = arr[99];`)
	arrays := map[string]*discover.ConstantArray{
		"arr": {Name: "arr", Elements: []literal.Value{literal.Number(1)}},
	}
	if n := ArrayAccess(prog, arrays); n != 0 {
		t.Errorf("count = %d, want 0 for out-of-range index", n)
	}
}

func TestDecoder(t *testing.T) {
	prog := mustParse(t, `var y = D(2);`)
	table := &discover.StringTable{Entries: []string{"alpha", "beta", "gamma"}, DecoderName: "D"}
	n := Decoder(prog, table)
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
	if got := mustPrint(t, prog); got != `var y="gamma";` {
		t.Errorf("got %q", got)
	}
}

func TestDecoderSkippedWithoutName(t *testing.T) {
	prog := mustParse(t, `var y = D(2);`)
	if n := Decoder(prog, &discover.StringTable{Entries: []string{"a"}}); n != 0 {
		t.Errorf("count = %d, want 0 when no decoder name is known", n)
	}
	if n := Decoder(prog, nil); n != 0 {
		t.Errorf("count = %d, want 0 for nil table", n)
	}
}

func TestFold(t *testing.T) {
	prog := mustParse(t, `var a = 2+3; var b = "x"+"y"; var c = 1+2+3;`)
	merges, folds := Fold(prog)
	if merges != 1 {
		t.Errorf("merges = %d, want 1", merges)
	}
	if folds != 3 {
		t.Errorf("folds = %d, want 3 (1 in a, and 2 nested in c's chain)", folds)
	}
	got := mustPrint(t, prog)
	want := `var a=5;var b="xy";var c=6;`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolver(t *testing.T) {
	prog := mustParse(t, `var w = R("a"); var q = R("zzz");`)
	resolvers := []*discover.GlobalResolver{
		{Name: "R", Map: map[string]string{"a": "window", "b": "document"}},
	}
	n := Resolver(prog, resolvers)
	if n != 1 {
		t.Fatalf("count = %d, want 1 (unmapped key left alone)", n)
	}
	got := mustPrint(t, prog)
	if got != `var w=window;var q=R("zzz");` {
		t.Errorf("got %q", got)
	}
}

func TestResolverRejectsDisallowedTarget(t *testing.T) {
	prog := mustParse(t, `var w = R("a");`)
	resolvers := []*discover.GlobalResolver{
		{Name: "R", Map: map[string]string{"a": "notAllowedGlobalName"}},
	}
	if n := Resolver(prog, resolvers); n != 0 {
		t.Errorf("count = %d, want 0 for a target outside the allow-list", n)
	}
}

func TestCosmeticHexNormalization(t *testing.T) {
	prog := mustParse(t, `var x = 0x1F;`)
	st := Cosmetic(prog)
	if st.HexNumeralsNormalized != 1 {
		t.Errorf("HexNumeralsNormalized = %d, want 1", st.HexNumeralsNormalized)
	}
	if got := mustPrint(t, prog); got != `var x=31;` {
		t.Errorf("got %q", got)
	}
}

func TestCosmeticDottedMemberConversion(t *testing.T) {
	prog := mustParse(t, `var y = obj["prop"];`)
	st := Cosmetic(prog)
	if st.PropertyAccessesSimplified != 1 {
		t.Errorf("PropertyAccessesSimplified = %d, want 1", st.PropertyAccessesSimplified)
	}
	if got := mustPrint(t, prog); got != `var y=obj.prop;` {
		t.Errorf("got %q", got)
	}
}

func TestCosmeticDottedMemberConversionSkipsReserved(t *testing.T) {
	prog := mustParse(t, `var y = obj["class"];`)
	st := Cosmetic(prog)
	if st.PropertyAccessesSimplified != 0 {
		t.Errorf("PropertyAccessesSimplified = %d, want 0 for a reserved word", st.PropertyAccessesSimplified)
	}
	if got := mustPrint(t, prog); got != `var y=obj["class"];` {
		t.Errorf("got %q, reserved-word access must stay bracketed", got)
	}
}

func TestCosmeticBooleanSimplification(t *testing.T) {
	prog := mustParse(t, `var a = !0; var b = !1;`)
	st := Cosmetic(prog)
	if st.BooleansSimplified != 2 {
		t.Errorf("BooleansSimplified = %d, want 2", st.BooleansSimplified)
	}
	if got := mustPrint(t, prog); got != `var a=true;var b=false;` {
		t.Errorf("got %q", got)
	}
}

func TestCosmeticEmptyStatementRemoval(t *testing.T) {
	prog := mustParse(t, `;;var x=1;;`)
	st := Cosmetic(prog)
	if st.DeadCodeRemovals != 3 {
		t.Errorf("DeadCodeRemovals = %d, want 3", st.DeadCodeRemovals)
	}
	if got := mustPrint(t, prog); got != `var x=1;` {
		t.Errorf("got %q", got)
	}
}

func TestCosmeticIfBooleanCollapse(t *testing.T) {
	prog := mustParse(t, `if(true){x=1;}else{x=2;}`)
	Cosmetic(prog)
	if got := mustPrint(t, prog); got != `{x=1;}` {
		t.Errorf("got %q", got)
	}
}
