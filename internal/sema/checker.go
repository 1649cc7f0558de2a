// Package sema implements the two semantic-checking stages that sit
// between parsing and CFG construction: per-function name resolution and
// type inference, and the whole-program check that exactly one viable
// main function exists. Both are external collaborators of the CFG
// analyzer core — their only contract with it is the inferred_type slot
// they leave behind on every expression node.
package sema

import (
	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
)

// Checker resolves names and infers expression types for one function at
// a time. A fresh scope stack is pushed per function; nothing survives
// across functions.
type Checker struct {
	diags *diagnostic.Collector
}

// NewChecker creates a Checker reporting into diags.
func NewChecker(diags *diagnostic.Collector) *Checker {
	return &Checker{diags: diags}
}

// CheckProgram runs the local semantic checker over every function, then
// the program-level main check. It returns false if the program-semantic
// check failed, signaling the caller to skip CFG analysis entirely.
func (c *Checker) CheckProgram(prog *ast.Program) bool {
	for _, fn := range prog.Functions {
		c.checkFunction(fn)
	}
	return c.checkMain(prog)
}

// checkMain enforces: exactly one function named "main", returning int,
// taking no parameters.
func (c *Checker) checkMain(prog *ast.Program) bool {
	var mains []*ast.FunctionDef
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			mains = append(mains, fn)
		}
	}
	switch len(mains) {
	case 0:
		c.diags.Errorf("program-sema", nil, "program has no 'main' function")
		return false
	case 1:
		// fallthrough to per-main checks below
	default:
		for _, fn := range mains[1:] {
			c.diags.Errorf("program-sema", fn, "duplicate 'main' function")
		}
		return false
	}

	main := mains[0]
	ok := true
	if main.ReturnType != ast.Int {
		c.diags.Errorf("program-sema", main, "'main' must return int")
		ok = false
	}
	if len(main.Params) != 0 {
		c.diags.Errorf("program-sema", main, "'main' must take no parameters")
		ok = false
	}
	return ok
}

// checkFunction resolves names within one function's body and assigns
// inferred_type to every expression it contains.
func (c *Checker) checkFunction(fn *ast.FunctionDef) {
	scopes := newScopeStack()
	scopes.push()
	for _, p := range fn.Params {
		if !scopes.declare(p.Name, p.Typ) {
			c.diags.Errorf("sema", p, "duplicate parameter '%s'", p.Name)
		}
	}
	c.checkBlock(fn.Body, scopes, fn)
	scopes.pop()
}

func (c *Checker) checkBlock(b *ast.BlockStmt, scopes *scopeStack, fn *ast.FunctionDef) {
	scopes.push()
	defer scopes.pop()
	for _, stmt := range b.Stmts {
		c.checkStmt(stmt, scopes, fn)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt, scopes *scopeStack, fn *ast.FunctionDef) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			initType := c.checkExpr(s.Init, scopes)
			if initType != ast.Invalid && initType != s.Typ {
				c.diags.Errorf("sema", s, "cannot initialize '%s' of type %s with %s", s.Name, s.Typ, initType)
			}
		}
		if !scopes.declare(s.Name, s.Typ) {
			c.diags.Errorf("sema", s, "redeclaration of variable '%s'", s.Name)
		}
	case *ast.Assign:
		valType := c.checkExpr(s.Value, scopes)
		sym, ok := scopes.resolve(s.Name)
		if !ok {
			c.diags.Errorf("sema", s, "undeclared variable '%s'", s.Name)
			break
		}
		if valType != ast.Invalid && valType != sym.Typ {
			c.diags.Errorf("sema", s, "cannot assign %s to '%s' of type %s", valType, s.Name, sym.Typ)
		}
	case *ast.IfStmt:
		condType := c.checkExpr(s.Cond, scopes)
		if condType != ast.Invalid && condType != ast.Bool && condType != ast.Int {
			c.diags.Errorf("sema", s.Cond, "if condition must be int or bool, got %s", condType)
		}
		c.checkBlock(s.Then, scopes, fn)
		if s.Else != nil {
			c.checkBlock(s.Else, scopes, fn)
		}
	case *ast.WhileStmt:
		condType := c.checkExpr(s.Cond, scopes)
		if condType != ast.Invalid && condType != ast.Bool && condType != ast.Int {
			c.diags.Errorf("sema", s.Cond, "while condition must be int or bool, got %s", condType)
		}
		c.checkBlock(s.Body, scopes, fn)
	case *ast.ReturnStmt:
		valType := c.checkExpr(s.Value, scopes)
		if valType != ast.Invalid && fn.ReturnType != ast.Invalid && valType != fn.ReturnType {
			c.diags.Errorf("sema", s, "return type mismatch: function returns %s, got %s", fn.ReturnType, valType)
		}
	case *ast.PrintStmt:
		c.checkExpr(s.Value, scopes)
	case *ast.BlockStmt:
		c.checkBlock(s, scopes, fn)
	default:
		c.diags.Errorf("sema", stmt, "internal: unhandled statement kind %T", stmt)
	}
}

// checkExpr infers and records the type of expr, recursing into its
// subexpressions first. It returns ast.Invalid on any error so callers
// can suppress cascading diagnostics.
func (c *Checker) checkExpr(expr ast.Expr, scopes *scopeStack) ast.Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		e.SetType(ast.Int)
	case *ast.BoolLit:
		e.SetType(ast.Bool)
	case *ast.NameExpr:
		sym, ok := scopes.resolve(e.Name)
		if !ok {
			c.diags.Errorf("sema", e, "undeclared variable '%s'", e.Name)
			e.SetType(ast.Invalid)
			break
		}
		e.SetType(sym.Typ)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			c.checkExpr(arg, scopes)
		}
		// MC has no user-defined function values or overload set to
		// resolve against beyond the top-level functions a program
		// declares; without a call-site signature table the checker
		// can only report the return type as unknown.
		e.SetType(ast.Invalid)
	case *ast.UnaryExpr:
		rightType := c.checkExpr(e.Right, scopes)
		switch e.Op {
		case "-":
			if rightType != ast.Invalid && rightType != ast.Int {
				c.diags.Errorf("sema", e, "unary '-' requires int, got %s", rightType)
			}
			e.SetType(ast.Int)
		case "!":
			if rightType != ast.Invalid && rightType != ast.Bool {
				c.diags.Errorf("sema", e, "unary '!' requires bool, got %s", rightType)
			}
			e.SetType(ast.Bool)
		default:
			c.diags.Errorf("sema", e, "internal: unhandled unary operator %q", e.Op)
			e.SetType(ast.Invalid)
		}
	case *ast.BinaryExpr:
		leftType := c.checkExpr(e.Left, scopes)
		rightType := c.checkExpr(e.Right, scopes)
		e.SetType(c.checkBinary(e, leftType, rightType))
	default:
		c.diags.Errorf("sema", expr, "internal: unhandled expression kind %T", expr)
		return ast.Invalid
	}
	return expr.Type()
}

func (c *Checker) checkBinary(e *ast.BinaryExpr, left, right ast.Type) ast.Type {
	switch e.Op {
	case "+", "-", "*", "/", "%":
		c.requireBoth(e, left, right, ast.Int)
		return ast.Int
	case "<", "<=", ">", ">=":
		c.requireBoth(e, left, right, ast.Int)
		return ast.Bool
	case "==", "!=":
		if left != ast.Invalid && right != ast.Invalid && left != right {
			c.diags.Errorf("sema", e, "cannot compare %s with %s", left, right)
		}
		return ast.Bool
	case "&&", "||":
		c.requireBoth(e, left, right, ast.Bool)
		return ast.Bool
	default:
		c.diags.Errorf("sema", e, "internal: unhandled binary operator %q", e.Op)
		return ast.Invalid
	}
}

func (c *Checker) requireBoth(e *ast.BinaryExpr, left, right, want ast.Type) {
	if left != ast.Invalid && left != want {
		c.diags.Errorf("sema", e, "operator '%s' requires %s, got %s", e.Op, want, left)
	}
	if right != ast.Invalid && right != want {
		c.diags.Errorf("sema", e, "operator '%s' requires %s, got %s", e.Op, want, right)
	}
}
