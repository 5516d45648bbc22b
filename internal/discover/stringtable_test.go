package discover

import "testing"

func TestFindDecoderByASTIgnoresDecoyOutsideEnclosingScope(t *testing.T) {
	src := `X = function(p){ return A[p]; };
function wrapper(){
  x.decompressFromUTF16(S);
  D = function(i){ return T[i]; };
}`
	prog := mustParse(t, src)
	call, _ := findDecompressCall(prog)
	if call == nil {
		t.Fatalf("expected to find the decompressFromUTF16 call")
	}
	if got := findDecoderByAST(prog, call); got != "D" {
		t.Errorf("got %q, want %q (the decoy top-level X must not be picked)", got, "D")
	}
}

func TestFindDecoderByASTRejectsLocalOfEnclosingScope(t *testing.T) {
	src := `function wrapper(){
  var D;
  x.decompressFromUTF16(S);
  D = function(i){ return T[i]; };
}`
	prog := mustParse(t, src)
	call, _ := findDecompressCall(prog)
	if call == nil {
		t.Fatalf("expected to find the decompressFromUTF16 call")
	}
	if got := findDecoderByAST(prog, call); got != "" {
		t.Errorf("got %q, want \"\" since D is a local var of the enclosing scope", got)
	}
}

func TestFindDecoderByASTTopLevelCallUsesTopLevelScope(t *testing.T) {
	src := `function unrelated(){
  D = function(i){ return T[i]; };
}
x.decompressFromUTF16(S);
D = function(i){ return T[i]; };`
	prog := mustParse(t, src)
	call, _ := findDecompressCall(prog)
	if call == nil {
		t.Fatalf("expected to find the decompressFromUTF16 call")
	}
	if got := findDecoderByAST(prog, call); got != "D" {
		t.Errorf("got %q, want %q", got, "D")
	}
}
