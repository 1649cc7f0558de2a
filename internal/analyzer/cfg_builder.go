package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/mc-analyzer/internal/ast"
)

// CFGBuilder threads a "current block" through a recursive descent over
// one function's statements, specialized to MC's closed statement set:
// no exceptions, break/continue, or loop-else arms to account for.
type CFGBuilder struct {
	cfg     *CFG
	current BlockID
	hasCur  bool
}

// NewCFGBuilder creates a builder for a single function.
func NewCFGBuilder() *CFGBuilder {
	return &CFGBuilder{}
}

// Build translates fn's body into a CFG: create entry and exit, build
// the body from entry, and connect whatever the body's tail leaves
// dangling to exit.
func (b *CFGBuilder) Build(fn *ast.FunctionDef) *CFG {
	b.cfg = &CFG{FuncName: fn.Name}
	entry := b.cfg.NewBlock("entry")
	exit := b.cfg.NewBlock("exit")
	b.cfg.Entry = entry
	b.cfg.Exit = exit

	b.current = entry
	b.hasCur = true

	b.buildBlock(fn.Body)

	if b.hasCur {
		b.cfg.Connect(b.current, exit)
	}
	return b.cfg
}

// buildBlock builds a nested block of statements, threading b.current
// through each one in order.
func (b *CFGBuilder) buildBlock(block *ast.BlockStmt) {
	for _, stmt := range block.Stmts {
		if !b.hasCur {
			// The fall-through path already terminated (a return was
			// hit); this and any further statements in source order
			// still need a home, so open a fresh block with no
			// predecessors. The unreachable-code analysis flags
			// statements living in such a block.
			b.current, b.hasCur = b.cfg.NewBlock("unreachable"), true
		}
		b.buildStmt(stmt)
	}
}

func (b *CFGBuilder) buildStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl, *ast.Assign, *ast.PrintStmt:
		b.append(stmt)
	case *ast.ReturnStmt:
		b.append(stmt)
		b.cfg.Connect(b.current, b.cfg.Exit)
		b.hasCur = false
	case *ast.IfStmt:
		b.buildIf(s)
	case *ast.WhileStmt:
		b.buildWhile(s)
	case *ast.BlockStmt:
		b.buildBlock(s)
	default:
		panic(fmt.Sprintf("unhandled statement kind %T", stmt))
	}
}

func (b *CFGBuilder) append(stmt ast.Stmt) {
	blk := b.cfg.Block(b.current)
	blk.Stmts = append(blk.Stmts, stmt)
}

func (b *CFGBuilder) buildIf(s *ast.IfStmt) {
	// The IfStmt is appended to the splitting block as a marker: its
	// condition is what the two outgoing edges below represent.
	b.append(s)
	condBlock := b.current

	thenID := b.cfg.NewBlock("if_then")
	joinID := b.cfg.NewBlock("if_join")

	b.cfg.ConnectCond(condBlock, thenID, s.Cond, true)

	if s.Else != nil {
		elseID := b.cfg.NewBlock("if_else")
		b.cfg.ConnectCond(condBlock, elseID, s.Cond, false)

		b.current, b.hasCur = elseID, true
		b.buildBlock(s.Else)
		if b.hasCur {
			b.cfg.Connect(b.current, joinID)
		}
	} else {
		b.cfg.ConnectCond(condBlock, joinID, s.Cond, false)
	}

	b.current, b.hasCur = thenID, true
	b.buildBlock(s.Then)
	if b.hasCur {
		b.cfg.Connect(b.current, joinID)
	}

	b.current, b.hasCur = joinID, true
}

func (b *CFGBuilder) buildWhile(s *ast.WhileStmt) {
	condID := b.cfg.NewBlock("while_cond")
	bodyID := b.cfg.NewBlock("while_body")
	afterID := b.cfg.NewBlock("while_after")

	b.cfg.Connect(b.current, condID)

	condBlk := b.cfg.Block(condID)
	condBlk.Stmts = append(condBlk.Stmts, s)

	b.cfg.ConnectCond(condID, bodyID, s.Cond, true)
	b.cfg.ConnectCond(condID, afterID, s.Cond, false)

	b.current, b.hasCur = bodyID, true
	b.buildBlock(s.Body)
	if b.hasCur {
		b.cfg.Connect(b.current, condID)
	}

	b.current, b.hasCur = afterID, true
}
