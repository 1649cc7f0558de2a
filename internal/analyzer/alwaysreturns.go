package analyzer

import (
	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
)

// CheckAlwaysReturns runs a DFS from entry to exit that cuts at any
// block ending in a ReturnStmt. Reaching exit through that search means
// some path falls off the end of the function without returning a
// value.
func CheckAlwaysReturns(fn *ast.FunctionDef, cfg *CFG, diags *diagnostic.Collector) {
	if fn.ReturnType == ast.Invalid {
		return
	}

	reachesExit := false
	cfg.Walk(cfg.Entry, func(b *BasicBlock) bool {
		if b.ID == cfg.Exit {
			reachesExit = true
			return false
		}
		if endsInReturn(b) {
			return false
		}
		return true
	})

	if reachesExit {
		diags.Warningf("always-returns", fn, "function '%s' may not return a value on all paths", fn.Name)
	}
}

func endsInReturn(b *BasicBlock) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	_, ok := b.Stmts[len(b.Stmts)-1].(*ast.ReturnStmt)
	return ok
}
