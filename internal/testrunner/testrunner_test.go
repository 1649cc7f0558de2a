package testrunner

import "testing"

func TestParseDirectives_SingleLine(t *testing.T) {
	got := ParseDirectives("int main() { return 0; } // EXPECT: OK")
	if len(got) != 1 || got[0] != "OK" {
		t.Fatalf("got %v, want [OK]", got)
	}
}

func TestParseDirectives_Multiple(t *testing.T) {
	src := `int main() {
	int x;
	return x;
	// EXPECT: unassigned
	// EXPECT: division by zero
}`
	got := ParseDirectives(src)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 directives", got)
	}
}

func TestParseDirectives_None(t *testing.T) {
	if got := ParseDirectives("int main() { return 0; }"); len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestRun_OKDirectivePassesOnCleanProgram(t *testing.T) {
	src := "int main() { return 0; } // EXPECT: OK"
	result, err := Run("ok.mc", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed() {
		t.Fatalf("expected pass, got unmatched=%v extra=%v", result.Unmatched, result.Extra)
	}
}

func TestRun_OKDirectiveFailsWhenDiagnosticsExist(t *testing.T) {
	src := `int main() {
	int x;
	return x;
}
// EXPECT: OK`
	result, err := Run("notok.mc", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed() {
		t.Fatal("expected failure: OK directive with real diagnostics present")
	}
}

func TestRun_ExpectationMatchesDiagnostic(t *testing.T) {
	src := `int main() {
	int x;
	return x;
}
// EXPECT: may be unassigned`
	result, err := Run("unassigned.mc", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed() {
		t.Fatalf("expected pass, got unmatched=%v extra=%v", result.Unmatched, result.Extra)
	}
}

func TestRun_UnmatchedExpectationFails(t *testing.T) {
	src := "int main() { return 0; }\n// EXPECT: this never happens"
	result, err := Run("bad.mc", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed() {
		t.Fatal("expected failure: expectation matches no diagnostic")
	}
	if len(result.Unmatched) != 1 {
		t.Fatalf("expected 1 unmatched expectation, got %v", result.Unmatched)
	}
}

func TestRun_ExtraDiagnosticFails(t *testing.T) {
	src := `int main() {
	int x;
	return x;
}
// EXPECT: some unrelated text`
	result, err := Run("extra.mc", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed() {
		t.Fatal("expected failure: diagnostic matches no expectation")
	}
	if len(result.Extra) == 0 {
		t.Fatal("expected at least one unaccounted-for diagnostic")
	}
}

func TestRun_NoDirectivesIsSpecError(t *testing.T) {
	if _, err := Run("none.mc", "int main() { return 0; }"); err == nil {
		t.Fatal("expected an error for a file with no EXPECT directives")
	}
}
