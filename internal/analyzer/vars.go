package analyzer

import "github.com/ludo-technologies/mc-analyzer/internal/ast"

// varsReadStmt returns the variable names a statement reads: the
// condition of an if/while, the value of an assignment/declaration/
// print/return. VarDecl and Assign's own target name is a write, not a
// read, and is excluded here.
func varsReadStmt(stmt ast.Stmt) []string {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			return varsReadExpr(s.Init)
		}
		return nil
	case *ast.Assign:
		return varsReadExpr(s.Value)
	case *ast.IfStmt:
		return varsReadExpr(s.Cond)
	case *ast.WhileStmt:
		return varsReadExpr(s.Cond)
	case *ast.ReturnStmt:
		return varsReadExpr(s.Value)
	case *ast.PrintStmt:
		return varsReadExpr(s.Value)
	default:
		return nil
	}
}

// varsWrittenStmt returns the variable name a statement writes, if any.
// A VarDecl without an initializer does not count as a write: the
// variable remains unassigned until a later store.
func varsWrittenStmt(stmt ast.Stmt) (string, bool) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init == nil {
			return "", false
		}
		return s.Name, true
	case *ast.Assign:
		return s.Name, true
	default:
		return "", false
	}
}

// varsReadExpr recurses structurally over an expression, collecting
// every variable reference it contains: binary, unary, and
// call-argument subexpressions all contribute their reads.
func varsReadExpr(expr ast.Expr) []string {
	switch e := expr.(type) {
	case nil:
		return nil
	case *ast.IntLit, *ast.BoolLit:
		return nil
	case *ast.NameExpr:
		return []string{e.Name}
	case *ast.CallExpr:
		var out []string
		for _, arg := range e.Args {
			out = append(out, varsReadExpr(arg)...)
		}
		return out
	case *ast.BinaryExpr:
		out := varsReadExpr(e.Left)
		out = append(out, varsReadExpr(e.Right)...)
		return out
	case *ast.UnaryExpr:
		return varsReadExpr(e.Right)
	default:
		return nil
	}
}

// declaredVariables collects every variable name a function declares, in
// first-declaration order: the universe set definite-assignment's
// must-analysis needs to seed non-entry blocks with "top", computed
// once per function via a pre-pass.
func declaredVariables(fn *ast.FunctionDef) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, p := range fn.Params {
		add(p.Name)
	}
	var walkBlock func(*ast.BlockStmt)
	var walkStmt func(ast.Stmt)
	walkStmt = func(stmt ast.Stmt) {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			add(s.Name)
		case *ast.IfStmt:
			walkBlock(s.Then)
			if s.Else != nil {
				walkBlock(s.Else)
			}
		case *ast.WhileStmt:
			walkBlock(s.Body)
		case *ast.BlockStmt:
			walkBlock(s)
		}
	}
	walkBlock = func(b *ast.BlockStmt) {
		for _, s := range b.Stmts {
			walkStmt(s)
		}
	}
	walkBlock(fn.Body)
	return names
}
