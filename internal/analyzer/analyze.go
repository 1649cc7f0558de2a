package analyzer

import (
	"fmt"
	"log"

	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
)

// AnalyzeProgram runs the CFG builder and all five analyses over every
// function in prog. Each function gets a fresh CFG, analyzed
// independently and discarded once its diagnostics are collected — no
// state is shared across functions.
func AnalyzeProgram(prog *ast.Program, diags *diagnostic.Collector) {
	for _, fn := range prog.Functions {
		AnalyzeFunction(fn, diags)
	}
}

// AnalyzeFunction builds fn's CFG and runs the five analyses over it,
// each reading the shared immutable CFG and writing only its own fact
// stores and diagnostics. A panic anywhere in this pipeline signals an
// internal bug, not a malformed program: it is caught, logged, and
// turned into a single diagnostic on fn rather than crashing the whole
// run.
func AnalyzeFunction(fn *ast.FunctionDef, diags *diagnostic.Collector) {
	local := &diagnostic.Collector{}
	if err := runFunctionAnalyses(fn, local); err != nil {
		diags.Errorf("internal", fn, "%v", err)
		return
	}
	for _, d := range local.Diagnostics() {
		diags.Add(d)
	}
}

// runFunctionAnalyses runs the pipeline, recovering from any panic and
// returning it as an *InternalError so the caller can substitute the
// internal-error diagnostic. diags accumulates the real, positioned
// diagnostics on success.
func runFunctionAnalyses(fn *ast.FunctionDef, diags *diagnostic.Collector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ierr := &InternalError{Func: fn.Name, Cause: fmt.Errorf("%v", r)}
			log.Printf("mc-analyzer: %v", ierr)
			err = ierr
		}
	}()

	cfg := NewCFGBuilder().Build(fn)

	CheckAlwaysReturns(fn, cfg, diags)
	CheckUnreachable(cfg, diags)
	CheckDefiniteAssignment(fn, cfg, diags)
	CheckDeadStore(fn, cfg, diags)
	CheckZeroDivision(cfg, diags)

	return nil
}
