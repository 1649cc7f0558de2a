package analyzer

import (
	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
)

// ZeroState is the three-valued abstract domain division denominators
// are evaluated over.
type ZeroState int

const (
	Unknown ZeroState = iota
	Zero
	Nonzero
)

// joinZeroState implements the join table: equal values stay put,
// anything else (including a missing key, which defaults to Unknown)
// collapses to Unknown.
func joinZeroState(a, b ZeroState) ZeroState {
	if a == b {
		return a
	}
	return Unknown
}

// zeroMap is a snapshot of the abstract state: variable name -> ZeroState,
// with a missing key meaning Unknown. Maps are never mutated in place
// once handed to a caller — every transform returns a fresh copy, since
// edge refinement must not disturb a predecessor's OUT.
type zeroMap map[string]ZeroState

func (m zeroMap) get(name string) ZeroState {
	if v, ok := m[name]; ok {
		return v
	}
	return Unknown
}

func (m zeroMap) with(name string, v ZeroState) zeroMap {
	out := make(zeroMap, len(m)+1)
	for k, val := range m {
		out[k] = val
	}
	if v == Unknown {
		delete(out, name)
	} else {
		out[name] = v
	}
	return out
}

func (m zeroMap) equal(other zeroMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if other[k] != v {
			return false
		}
	}
	return true
}

// evalZero abstractly evaluates an expression: literals and variable
// references are precise, everything else is Unknown.
func evalZero(expr ast.Expr, state zeroMap) ZeroState {
	switch e := expr.(type) {
	case *ast.IntLit:
		if e.Value == 0 {
			return Zero
		}
		return Nonzero
	case *ast.BoolLit:
		return Nonzero
	case *ast.NameExpr:
		return state.get(e.Name)
	default:
		return Unknown
	}
}

// zeroLattice is the forward lattice over zeroMap states, with edge
// refinement: the one analysis among the three sharing the generic
// driver that needs path-sensitive strengthening.
type zeroLattice struct{}

func (zeroLattice) Bottom() zeroMap { return zeroMap{} }

func (zeroLattice) Equal(a, b zeroMap) bool { return a.equal(b) }

func (zeroLattice) Direction() Direction { return Forward }

func (zeroLattice) Transfer(b *BasicBlock, in zeroMap) zeroMap {
	state := in
	for _, stmt := range b.Stmts {
		state = transferZeroStmt(stmt, state)
	}
	return state
}

func transferZeroStmt(stmt ast.Stmt, state zeroMap) zeroMap {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			return state.with(s.Name, evalZero(s.Init, state))
		}
		return state.with(s.Name, Unknown)
	case *ast.Assign:
		return state.with(s.Name, evalZero(s.Value, state))
	default:
		return state
	}
}

func (zeroLattice) Join(states []zeroMap) zeroMap {
	if len(states) == 0 {
		return zeroMap{}
	}
	result := states[0]
	for _, s := range states[1:] {
		merged := make(zeroMap)
		for k := range result {
			merged[k] = joinZeroState(result.get(k), s.get(k))
		}
		for k := range s {
			if _, ok := merged[k]; !ok {
				merged[k] = joinZeroState(result.get(k), s.get(k))
			}
		}
		result = merged
	}
	return result
}

// RefineEdge strengthens the state along a conditional edge: a branch
// on a bare variable reference (or its negation) asserts that
// variable's zero-ness on the edge representing the branch actually
// taken. Any other predicate condition leaves the state unrefined.
func (zeroLattice) RefineEdge(state zeroMap, edge Edge) zeroMap {
	name, invert, ok := refinementTarget(edge.Cond)
	if !ok {
		return state
	}
	assumeTrue := edge.AssumeTrue
	if invert {
		assumeTrue = !assumeTrue
	}
	if assumeTrue {
		return state.with(name, Nonzero)
	}
	return state.with(name, Zero)
}

// refinementTarget recognizes the two predicate shapes refinement
// handles: a bare variable reference, or its negation.
func refinementTarget(cond ast.Expr) (name string, invert bool, ok bool) {
	switch c := cond.(type) {
	case *ast.NameExpr:
		return c.Name, false, true
	case *ast.UnaryExpr:
		if c.Op == "!" {
			if n, ok := c.Right.(*ast.NameExpr); ok {
				return n.Name, true, true
			}
		}
	}
	return "", false, false
}

// CheckZeroDivision runs the diagnostic pass: after the fixed point,
// re-walk each block from IN[b] maintaining a running state, flagging
// every '/' whose right operand is a variable reference not provably
// Nonzero.
func CheckZeroDivision(cfg *CFG, diags *diagnostic.Collector) {
	result := RunFixedPoint[zeroMap](cfg, zeroLattice{})

	for _, b := range cfg.Blocks {
		state := result.In[b.ID]
		for _, stmt := range b.Stmts {
			checkZeroDivisionExprInStmt(stmt, state, diags)
			state = transferZeroStmt(stmt, state)
		}
	}
}

// checkZeroDivisionExprInStmt inspects every expression a statement
// carries for unguarded '/' operations, without descending into nested
// block bodies (those belong to other blocks and are visited via the
// block loop in CheckZeroDivision).
func checkZeroDivisionExprInStmt(stmt ast.Stmt, state zeroMap, diags *diagnostic.Collector) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		checkZeroDivisionExpr(s.Init, state, diags)
	case *ast.Assign:
		checkZeroDivisionExpr(s.Value, state, diags)
	case *ast.IfStmt:
		checkZeroDivisionExpr(s.Cond, state, diags)
	case *ast.WhileStmt:
		checkZeroDivisionExpr(s.Cond, state, diags)
	case *ast.ReturnStmt:
		checkZeroDivisionExpr(s.Value, state, diags)
	case *ast.PrintStmt:
		checkZeroDivisionExpr(s.Value, state, diags)
	}
}

func checkZeroDivisionExpr(expr ast.Expr, state zeroMap, diags *diagnostic.Collector) {
	switch e := expr.(type) {
	case nil:
		return
	case *ast.BinaryExpr:
		checkZeroDivisionExpr(e.Left, state, diags)
		checkZeroDivisionExpr(e.Right, state, diags)
		if e.Op == "/" {
			if name, ok := e.Right.(*ast.NameExpr); ok && state.get(name.Name) != Nonzero {
				diags.Warningf("zero-analysis", e, "Possible division by zero")
			}
		}
	case *ast.UnaryExpr:
		checkZeroDivisionExpr(e.Right, state, diags)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			checkZeroDivisionExpr(arg, state, diags)
		}
	}
}
