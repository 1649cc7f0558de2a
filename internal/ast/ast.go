// Package ast defines the typed abstract syntax tree the MC parser
// produces and the local semantic checker annotates. Statements and
// expressions are each a closed interface implemented by tagged structs,
// the idiomatic Go replacement for the isinstance-style dispatch a
// dynamically typed AST would use.
package ast

// Position is the (line, column) a node starts at, 1-indexed.
type Position struct {
	Line int
	Col  int
}

// Type is the inferred type of an expression.
type Type int

const (
	// Invalid marks an expression whose type could not be determined,
	// e.g. after a semantic error. CFG analyses never need to inspect
	// it (spec Open Question: proceed past type errors).
	Invalid Type = iota
	Int
	Bool
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Bool:
		return "bool"
	default:
		return "<invalid>"
	}
}

// Node is implemented by every AST node.
type Node interface {
	Pos() Position
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node. Every expression carries
// a mutable InferredType slot, written once by the local semantic
// checker and read-only afterward.
type Expr interface {
	Node
	exprNode()
	Type() Type
	SetType(Type)
}

// ExprBase factors the InferredType bookkeeping shared by every
// expression kind. It is exported so other packages (the parser) can
// construct AST nodes directly; InferredType stays zero (Invalid) until
// the local semantic checker runs.
type ExprBase struct {
	NodePos      Position
	InferredType Type
}

func (e *ExprBase) Pos() Position  { return e.NodePos }
func (e *ExprBase) exprNode()      {}
func (e *ExprBase) Type() Type     { return e.InferredType }
func (e *ExprBase) SetType(t Type) { e.InferredType = t }

// NewExprBase builds an ExprBase at the given position.
func NewExprBase(pos Position) ExprBase { return ExprBase{NodePos: pos} }

// ---- Expressions ----

type IntLit struct {
	ExprBase
	Value int64
}

type BoolLit struct {
	ExprBase
	Value bool
}

// NameExpr is a variable reference.
type NameExpr struct {
	ExprBase
	Name string
}

// CallExpr is a function call: name plus argument expressions.
type CallExpr struct {
	ExprBase
	Callee string
	Args   []Expr
}

// BinaryExpr covers arithmetic, relational, equality, and logical
// binary operators; Op is the operator's source spelling ("+", "==",
// "&&", ...).
type BinaryExpr struct {
	ExprBase
	Left  Expr
	Op    string
	Right Expr
}

// UnaryExpr covers unary minus and logical not.
type UnaryExpr struct {
	ExprBase
	Op    string
	Right Expr
}

// ---- Statements ----

// StmtBase factors the position bookkeeping shared by every statement
// kind.
type StmtBase struct {
	NodePos Position
}

func (s *StmtBase) Pos() Position { return s.NodePos }
func (s *StmtBase) stmtNode()     {}

// NewStmtBase builds a StmtBase at the given position.
func NewStmtBase(pos Position) StmtBase { return StmtBase{NodePos: pos} }

// VarDecl declares a local variable, with an optional initializer.
type VarDecl struct {
	StmtBase
	Name string
	Typ  Type
	Init Expr // nil if uninitialized
}

// Assign writes a value to an already-declared variable.
type Assign struct {
	StmtBase
	Name  string
	Value Expr
}

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	StmtBase
	Cond Expr
	Then *BlockStmt
	Else *BlockStmt // nil if no else arm
}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body *BlockStmt
}

// ReturnStmt always carries a value expression: the parser guarantees
// this; a value-less return is a parser-layer bug.
type ReturnStmt struct {
	StmtBase
	Value Expr
}

// PrintStmt evaluates and prints an expression.
type PrintStmt struct {
	StmtBase
	Value Expr
}

// BlockStmt is a nested sequence of statements with no control flow of
// its own.
type BlockStmt struct {
	StmtBase
	Stmts []Stmt
}

// Param is one formal parameter of a function.
type Param struct {
	Name string
	Typ  Type
	Position
}

func (p Param) Pos() Position { return p.Position }

// FunctionDef is one function definition: name, parameters, declared
// return type, and body.
type FunctionDef struct {
	Position   Position
	Name       string
	Params     []Param
	ReturnType Type
	Body       *BlockStmt
}

func (f *FunctionDef) Pos() Position { return f.Position }

// Program is the root of the AST: an ordered list of function
// definitions.
type Program struct {
	Functions []*FunctionDef
}
