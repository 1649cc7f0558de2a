package analyzer

import (
	"testing"

	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
	"github.com/ludo-technologies/mc-analyzer/internal/parser"
)

func buildCFG(t *testing.T, src string) *CFG {
	t.Helper()
	diags := &diagnostic.Collector{}
	prog := parser.Parse(src, diags)
	if diags.HasErrors() {
		t.Fatalf("parse errors for %q: %v", src, diags.Diagnostics())
	}
	return NewCFGBuilder().Build(prog.Functions[0])
}

func TestCFGBuilder_LinearSequence(t *testing.T) {
	cfg := buildCFG(t, `int main() { int x = 1; int y = 2; return x; }`)

	// entry, exit: exactly one block each containing statements plus
	// no splits.
	if cfg.Block(cfg.Entry).ID != cfg.Entry {
		t.Fatal("entry block missing")
	}
	if len(cfg.Blocks) != 2 {
		t.Errorf("expected 2 blocks for a linear sequence, got %d", len(cfg.Blocks))
	}
	if len(cfg.EdgesFrom(cfg.Entry)) != 1 {
		t.Errorf("expected exactly one edge out of entry, got %d", len(cfg.EdgesFrom(cfg.Entry)))
	}
}

func TestCFGBuilder_SingleBranchIf(t *testing.T) {
	cfg := buildCFG(t, `int main() { int x = 1; if (x) { x = 2; } return x; }`)

	// entry, if_then, if_join, exit.
	if len(cfg.Blocks) != 4 {
		t.Errorf("expected 4 blocks for a single-branch if, got %d", len(cfg.Blocks))
	}
	splitEdges := cfg.EdgesFrom(cfg.Entry)
	if len(splitEdges) != 2 {
		t.Fatalf("expected 2 outgoing edges from the condition block, got %d", len(splitEdges))
	}
}

func TestCFGBuilder_TwoBranchIf(t *testing.T) {
	cfg := buildCFG(t, `int main() { int x = 1; if (x) { x = 2; } else { x = 3; } return x; }`)

	// entry, if_then, if_else, if_join, exit.
	if len(cfg.Blocks) != 5 {
		t.Errorf("expected 5 blocks for a two-branch if, got %d", len(cfg.Blocks))
	}
}

func TestCFGBuilder_While(t *testing.T) {
	cfg := buildCFG(t, `int main() { int i = 0; while (i) { i = 0; } return i; }`)

	// entry, while_cond, while_body, while_after, exit.
	if len(cfg.Blocks) != 5 {
		t.Errorf("expected 5 blocks for a while loop, got %d", len(cfg.Blocks))
	}

	var condID BlockID = -1
	for _, b := range cfg.Blocks {
		if b.Label == "while_cond" {
			condID = b.ID
		}
	}
	if condID == -1 {
		t.Fatal("expected a while_cond block")
	}
	if len(cfg.EdgesFrom(condID)) != 2 {
		t.Errorf("expected while_cond to have 2 outgoing edges, got %d", len(cfg.EdgesFrom(condID)))
	}
}

func TestCFGBuilder_MultiReturn(t *testing.T) {
	cfg := buildCFG(t, `int main() { if (1) { return 1; } return 0; }`)

	returnBlocks := 0
	for _, b := range cfg.Blocks {
		if endsInReturn(b) {
			returnBlocks++
			if len(b.Succs) != 1 || b.Succs[0] != cfg.Exit {
				t.Errorf("return block %s must connect only to exit", b.Label)
			}
		}
	}
	if returnBlocks != 2 {
		t.Errorf("expected 2 return blocks, got %d", returnBlocks)
	}
}

func TestCFGBuilder_EntryHasNoPredecessors(t *testing.T) {
	cfg := buildCFG(t, `int main() { return 0; }`)
	if len(cfg.Block(cfg.Entry).Preds) != 0 {
		t.Errorf("entry must have no predecessors, got %v", cfg.Block(cfg.Entry).Preds)
	}
}

func TestCFGBuilder_ExitHasNoSuccessors(t *testing.T) {
	cfg := buildCFG(t, `int main() { return 0; }`)
	if len(cfg.Block(cfg.Exit).Succs) != 0 {
		t.Errorf("exit must have no successors, got %v", cfg.Block(cfg.Exit).Succs)
	}
}

func TestCFGBuilder_StatementsAfterReturnLandInUnreachableBlock(t *testing.T) {
	cfg := buildCFG(t, `int main() { return 0; int y = 1; return y; }`)

	reachable := cfg.Reachable(cfg.Entry)
	var found int
	for _, b := range cfg.Blocks {
		if reachable[b.ID] {
			continue
		}
		found += len(b.Stmts)
	}
	if found != 2 {
		t.Errorf("expected the 2 statements after the first return to land in an unreachable block, got %d", found)
	}
}

func TestCFGBuilder_BothArmsTerminateLeavesUnreachableJoin(t *testing.T) {
	cfg := buildCFG(t, `int main() { if (1) { return 1; } else { return 0; } }`)

	reachable := cfg.Reachable(cfg.Entry)
	foundUnreachableJoin := false
	for _, b := range cfg.Blocks {
		if b.Label == "if_join" && !reachable[b.ID] {
			foundUnreachableJoin = true
			if len(b.Stmts) != 0 {
				t.Errorf("unreachable join block should carry no statements, got %v", b.Stmts)
			}
		}
	}
	if !foundUnreachableJoin {
		t.Errorf("expected the join block to be unreachable when both arms return")
	}
}
