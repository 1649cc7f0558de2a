package analyzer

import (
	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
)

// CheckUnreachable flags every statement sitting in a block the builder
// produced but that no chain of edges from entry reaches. The builder
// never omits a dead branch at construction time (MC has none to omit);
// unreachability only shows up post hoc, as the residue of a return's
// fall-through being cut.
func CheckUnreachable(cfg *CFG, diags *diagnostic.Collector) {
	reachable := cfg.Reachable(cfg.Entry)
	for _, b := range cfg.Blocks {
		if reachable[b.ID] {
			continue
		}
		for _, stmt := range b.Stmts {
			diags.Warningf("unreachable", stmt, "Unreachable code")
		}
	}
}
