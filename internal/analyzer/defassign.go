package analyzer

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
)

// mustSetLattice is the forward, intersection-joined set-of-variables
// lattice for definite assignment. Bottom is the full universe, the
// identity element for intersection: a variable is definitely assigned
// at a join point only if every incoming path assigned it, so the
// starting point before any real fact has arrived must be "everything
// assigned", not "nothing assigned" — otherwise the first predecessor
// to report in would wipe out every other path's contribution.
type mustSetLattice struct {
	u      *universe
	params []string
}

func (l *mustSetLattice) Bottom() *bitset.BitSet { return l.u.full() }

func (l *mustSetLattice) Equal(a, b *bitset.BitSet) bool { return a.Equal(b) }

func (l *mustSetLattice) Direction() Direction { return Forward }

func (l *mustSetLattice) Transfer(b *BasicBlock, in *bitset.BitSet) *bitset.BitSet {
	out := in.Clone()
	for _, stmt := range b.Stmts {
		if name, ok := varsWrittenStmt(stmt); ok {
			if i, ok := l.u.bit(name); ok {
				out.Set(i)
			}
		}
	}
	return out
}

func (l *mustSetLattice) Join(states []*bitset.BitSet) *bitset.BitSet {
	if len(states) == 0 {
		return l.u.full()
	}
	result := states[0].Clone()
	for _, s := range states[1:] {
		result = result.Intersection(s)
	}
	return result
}

// Seed sets the initial conditions: IN[entry] is the parameter set;
// IN[b != entry] starts at the full universe, the optimistic "top" a
// must-analysis needs so intersection can only shrink it toward the
// truth as real predecessor facts arrive.
func (l *mustSetLattice) Seed(cfg *CFG) map[BlockID]*bitset.BitSet {
	seed := make(map[BlockID]*bitset.BitSet, len(cfg.Blocks))
	for _, b := range cfg.Blocks {
		if b.ID == cfg.Entry {
			seed[b.ID] = l.u.setOf(l.params)
		} else {
			seed[b.ID] = l.u.full()
		}
	}
	return seed
}

// CheckDefiniteAssignment runs the must-analysis to a fixed point, then
// walks each block's statements in order from IN[b], flagging any read
// of a variable not yet in the running assigned set.
func CheckDefiniteAssignment(fn *ast.FunctionDef, cfg *CFG, diags *diagnostic.Collector) {
	names := declaredVariables(fn)
	u := newUniverse(names)

	var paramNames []string
	for _, p := range fn.Params {
		paramNames = append(paramNames, p.Name)
	}

	lat := &mustSetLattice{u: u, params: paramNames}
	result := RunFixedPoint[*bitset.BitSet](cfg, lat)

	for _, b := range cfg.Blocks {
		assigned := result.In[b.ID].Clone()
		for _, stmt := range b.Stmts {
			for _, name := range varsReadStmt(stmt) {
				if i, ok := u.bit(name); ok && !assigned.Test(i) {
					diags.Warningf("definite-assignment", stmt, "Variable '%s' may be unassigned", name)
				}
			}
			if name, ok := varsWrittenStmt(stmt); ok {
				if i, ok := u.bit(name); ok {
					assigned.Set(i)
				}
			}
		}
	}
}
