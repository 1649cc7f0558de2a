// Package analyzer implements the control-flow graph builder and the
// five dataflow analyses that run on top of it: always-returns,
// unreachable-code, definite-assignment, dead-store, and zero-state
// division-by-zero detection. This is the analytical core; everything
// upstream (lexer, parser, sema) is an external collaborator whose only
// contract here is a well-formed, type-annotated AST.
package analyzer

import "github.com/ludo-technologies/mc-analyzer/internal/ast"

// BlockID identifies a basic block within one function's CFG.
type BlockID int

// Edge is a directed control transfer between two blocks. A nil Cond
// marks an unconditional (fall-through) edge; a non-nil Cond marks one
// arm of an if/while split, with AssumeTrue recording which branch this
// edge represents.
type Edge struct {
	From, To   BlockID
	Cond       ast.Expr
	AssumeTrue bool
	HasCond    bool
}

// BasicBlock is a maximal straight-line run of statements. IfStmt and
// WhileStmt nodes appear in a block purely as markers: their condition is
// what the block's outgoing edges represent, not something the block
// itself executes as control flow.
type BasicBlock struct {
	ID    BlockID
	Label string
	Stmts []ast.Stmt

	Preds []BlockID
	Succs []BlockID
}

// CFG is one function's control-flow graph: an arena of blocks, indexed
// by id, with edges carrying indices rather than owning references —
// this sidesteps the reference-counting a strict owning tree would need
// for the cycles while loops introduce.
type CFG struct {
	FuncName string
	Blocks   []*BasicBlock
	Edges    []Edge
	Entry    BlockID
	Exit     BlockID
}

// Block returns the block with the given id.
func (c *CFG) Block(id BlockID) *BasicBlock {
	return c.Blocks[id]
}

// NewBlock appends a fresh, unconnected block to the CFG and returns its
// id.
func (c *CFG) NewBlock(label string) BlockID {
	id := BlockID(len(c.Blocks))
	c.Blocks = append(c.Blocks, &BasicBlock{ID: id, Label: label})
	return id
}

// Connect adds an unconditional edge from -> to.
func (c *CFG) Connect(from, to BlockID) {
	c.addEdge(Edge{From: from, To: to})
}

// ConnectCond adds a conditional edge from -> to, labeled with cond and
// the polarity this edge represents.
func (c *CFG) ConnectCond(from, to BlockID, cond ast.Expr, assumeTrue bool) {
	c.addEdge(Edge{From: from, To: to, Cond: cond, AssumeTrue: assumeTrue, HasCond: true})
}

func (c *CFG) addEdge(e Edge) {
	c.Edges = append(c.Edges, e)
	c.Blocks[e.From].Succs = append(c.Blocks[e.From].Succs, e.To)
	c.Blocks[e.To].Preds = append(c.Blocks[e.To].Preds, e.From)
}

// EdgesFrom returns the outgoing edges of block id, in the order they
// were added.
func (c *CFG) EdgesFrom(id BlockID) []Edge {
	var out []Edge
	for _, e := range c.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// EdgesTo returns the incoming edges of block id, in the order they were
// added.
func (c *CFG) EdgesTo(id BlockID) []Edge {
	var in []Edge
	for _, e := range c.Edges {
		if e.To == id {
			in = append(in, e)
		}
	}
	return in
}

// Walk visits every block reachable from entry via successors exactly
// once, in depth-first order. visit returning false stops the traversal
// from expanding that block's successors, mirroring the always-returns
// analysis's need to cut at return blocks.
func (c *CFG) Walk(start BlockID, visit func(*BasicBlock) bool) {
	seen := make(map[BlockID]bool)
	var dfs func(BlockID)
	dfs = func(id BlockID) {
		if seen[id] {
			return
		}
		seen[id] = true
		if !visit(c.Blocks[id]) {
			return
		}
		for _, s := range c.Blocks[id].Succs {
			dfs(s)
		}
	}
	dfs(start)
}

// Reachable returns the set of block ids reachable from entry.
func (c *CFG) Reachable(start BlockID) map[BlockID]bool {
	seen := make(map[BlockID]bool)
	c.Walk(start, func(b *BasicBlock) bool {
		seen[b.ID] = true
		return true
	})
	return seen
}
