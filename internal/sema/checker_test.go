package sema

import (
	"testing"

	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
	"github.com/ludo-technologies/mc-analyzer/internal/parser"
)

func parseAndCheck(t *testing.T, src string) (*diagnostic.Collector, bool) {
	t.Helper()
	diags := &diagnostic.Collector{}
	prog := parser.Parse(src, diags)
	if diags.HasErrors() {
		t.Fatalf("parse errors for %q: %v", src, diags.Diagnostics())
	}
	ok := NewChecker(diags).CheckProgram(prog)
	return diags, ok
}

func TestCheckProgram_ValidMain(t *testing.T) {
	diags, ok := parseAndCheck(t, `int main() { int x = 1; return x; }`)
	if !ok {
		t.Fatalf("expected program-semantic check to pass")
	}
	if diags.HasErrors() {
		t.Errorf("unexpected errors: %v", diags.Diagnostics())
	}
}

func TestCheckProgram_MissingMain(t *testing.T) {
	_, ok := parseAndCheck(t, `int f() { return 0; }`)
	if ok {
		t.Fatalf("expected program-semantic check to fail without main")
	}
}

func TestCheckProgram_MainWrongReturnType(t *testing.T) {
	_, ok := parseAndCheck(t, `bool main() { return true; }`)
	if ok {
		t.Fatalf("expected program-semantic check to fail for non-int main")
	}
}

func TestCheckProgram_MainWithParams(t *testing.T) {
	_, ok := parseAndCheck(t, `int main(int x) { return x; }`)
	if ok {
		t.Fatalf("expected program-semantic check to fail for main with parameters")
	}
}

func TestCheckFunction_UndeclaredVariable(t *testing.T) {
	diags, _ := parseAndCheck(t, `int main() { return y; }`)
	found := false
	for _, d := range diags.Diagnostics() {
		if d.Message == "undeclared variable 'y'" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected undeclared-variable diagnostic, got %v", diags.Diagnostics())
	}
}

func TestCheckFunction_TypeMismatchAssign(t *testing.T) {
	diags, _ := parseAndCheck(t, `int main() { int x = 1; x = true; return x; }`)
	if !diags.HasErrors() {
		t.Errorf("expected a type error assigning bool to int")
	}
}

func TestCheckFunction_InferredTypesSet(t *testing.T) {
	diagsCollector := &diagnostic.Collector{}
	prog := parser.Parse(`int main() { int x = 1 + 2; return x; }`, diagsCollector)
	NewChecker(diagsCollector).CheckProgram(prog)

	decl, ok := prog.Functions[0].Body.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected first statement to be a VarDecl")
	}
	if decl.Init.Type() != ast.Int {
		t.Errorf("expected initializer type int, got %v", decl.Init.Type())
	}
}

func TestCheckFunction_ScopeShadowing(t *testing.T) {
	_, ok := parseAndCheck(t, `int main() { int x = 1; { int x = 2; } return x; }`)
	if !ok {
		t.Fatalf("shadowing in a nested block must be allowed")
	}
}

func TestCheckFunction_RedeclarationSameScope(t *testing.T) {
	diags, _ := parseAndCheck(t, `int main() { int x = 1; int x = 2; return x; }`)
	if !diags.HasErrors() {
		t.Errorf("expected redeclaration error")
	}
}
