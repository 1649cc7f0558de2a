package analyzer

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
)

// maySetLattice is the backward, union-joined live-variable lattice for
// dead-store detection. Bottom is the empty set; Join unions, since a
// variable is live at a join point if it is live on any outgoing path.
type maySetLattice struct {
	u *universe
}

func (l *maySetLattice) Bottom() *bitset.BitSet { return l.u.empty() }

func (l *maySetLattice) Equal(a, b *bitset.BitSet) bool { return a.Equal(b) }

func (l *maySetLattice) Direction() Direction { return Backward }

// Transfer walks the block in reverse: live := (live - written) ∪ read,
// statement by statement, starting from OUT[b].
func (l *maySetLattice) Transfer(b *BasicBlock, out *bitset.BitSet) *bitset.BitSet {
	live := out.Clone()
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		stmt := b.Stmts[i]
		if name, ok := varsWrittenStmt(stmt); ok {
			if idx, ok := l.u.bit(name); ok {
				live.Clear(idx)
			}
		}
		live = live.Union(l.u.setOf(varsReadStmt(stmt)))
	}
	return live
}

func (l *maySetLattice) Join(states []*bitset.BitSet) *bitset.BitSet {
	if len(states) == 0 {
		return l.u.empty()
	}
	result := states[0].Clone()
	for _, s := range states[1:] {
		result = result.Union(s)
	}
	return result
}

// CheckDeadStore runs the may-analysis (live variables) to a fixed
// point, then re-traverses each block in reverse from OUT[b], flagging
// any write whose name is not in the live set at that point.
func CheckDeadStore(fn *ast.FunctionDef, cfg *CFG, diags *diagnostic.Collector) {
	names := declaredVariables(fn)
	u := newUniverse(names)

	lat := &maySetLattice{u: u}
	result := RunFixedPoint[*bitset.BitSet](cfg, lat)

	for _, b := range cfg.Blocks {
		live := result.Out[b.ID].Clone()
		for i := len(b.Stmts) - 1; i >= 0; i-- {
			stmt := b.Stmts[i]
			if name, ok := varsWrittenStmt(stmt); ok {
				if idx, ok := u.bit(name); ok {
					if !live.Test(idx) {
						diags.Warningf("dead-store", stmt, "Dead store to '%s'", name)
					}
					live.Clear(idx)
				}
			}
			live = live.Union(u.setOf(varsReadStmt(stmt)))
		}
	}
}
