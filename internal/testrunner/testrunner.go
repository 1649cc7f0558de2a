// Package testrunner implements the "// EXPECT:" golden-test harness:
// parse a single MC source file's directive comments, run it through
// the full analysis pipeline, and report whether the produced
// diagnostics match exactly (as a two-way substring cover) what the
// file declares it expects.
package testrunner

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/ludo-technologies/mc-analyzer/internal/analyzer"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
	"github.com/ludo-technologies/mc-analyzer/internal/parser"
	"github.com/ludo-technologies/mc-analyzer/internal/sema"
)

const directivePrefix = "// EXPECT:"

// ParseDirectives scans src for "// EXPECT: <text>" lines and returns
// the trimmed expectation text of each, in source order.
func ParseDirectives(src string) []string {
	var out []string
	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.Index(line, directivePrefix); idx != -1 {
			text := strings.TrimSpace(line[idx+len(directivePrefix):])
			if text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

// Result is the outcome of running one golden file.
type Result struct {
	Path        string
	Expected    []string
	Diagnostics []string
	Unmatched   []string // expected substrings matched by no diagnostic
	Extra       []string // diagnostics matched by no expected substring
}

// Passed reports whether every expectation was matched and no
// diagnostic went unaccounted for.
func (r Result) Passed() bool {
	return len(r.Unmatched) == 0 && len(r.Extra) == 0
}

// Run parses src, checks it, runs every CFG analysis, and compares the
// resulting diagnostics against src's EXPECT directives: a test passes
// when every expected substring is matched by at least one diagnostic
// and every diagnostic matches at least one expected substring.
// "// EXPECT: OK" asserts zero diagnostics. A file with no directives
// is a test-spec error.
func Run(path, src string) (Result, error) {
	expected := ParseDirectives(src)
	if len(expected) == 0 {
		return Result{}, fmt.Errorf("%s: no EXPECT directives found", path)
	}

	diags := &diagnostic.Collector{}
	prog := parser.Parse(src, diags)
	if !diags.HasErrors() {
		if sema.NewChecker(diags).CheckProgram(prog) {
			analyzer.AnalyzeProgram(prog, diags)
		}
	}

	var rendered []string
	for _, d := range diags.Diagnostics() {
		rendered = append(rendered, d.String())
	}

	result := Result{Path: path, Expected: expected, Diagnostics: rendered}

	if len(expected) == 1 && strings.EqualFold(expected[0], "OK") {
		if len(rendered) != 0 {
			result.Extra = append([]string(nil), rendered...)
		}
		return result, nil
	}

	matchedDiag := make([]bool, len(rendered))
	for _, exp := range expected {
		found := false
		for i, d := range rendered {
			if containsFold(d, exp) {
				found = true
				matchedDiag[i] = true
			}
		}
		if !found {
			result.Unmatched = append(result.Unmatched, exp)
		}
	}
	for i, d := range rendered {
		if !matchedDiag[i] {
			result.Extra = append(result.Extra, d)
		}
	}
	return result, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
