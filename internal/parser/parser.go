// Package parser implements a recursive-descent, single-lookahead
// parser for MC, producing the typed AST in internal/ast. It is an
// external collaborator of the analyzer core.
package parser

import (
	"strconv"

	"github.com/ludo-technologies/mc-analyzer/internal/ast"
	"github.com/ludo-technologies/mc-analyzer/internal/diagnostic"
	"github.com/ludo-technologies/mc-analyzer/internal/lexer"
	"github.com/ludo-technologies/mc-analyzer/internal/token"
)

// Parser threads the current token through a set of per-production
// methods, the same "current state threaded through the traversal"
// shape the CFG builder uses for basic blocks.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  *diagnostic.Collector
}

// Parse lexes and parses src, returning the Program AST. Parsing
// continues past a syntax error via panic-mode recovery (skip to the
// next statement boundary) so later diagnostics in the file are not
// masked by the first one.
func Parse(src string, diags *diagnostic.Collector) *ast.Program {
	lx := lexer.New(src, diags)
	p := &Parser{tokens: lx.Tokenize(), diags: diags}
	return p.parseProgram()
}

func (p *Parser) cur() token.Token { return p.tokens[p.pos] }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) pos_() ast.Position {
	t := p.cur()
	return ast.Position{Line: t.Line, Col: t.Col}
}

// expect consumes the current token if it has kind k, else records a
// syntax error and leaves the cursor in place for recovery.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	t := p.cur()
	p.diags.Errorf("parser", posNode(t), "expected %s but found %s", k, describe(t))
	return t
}

func describe(t token.Token) string {
	if t.Kind == token.IDENT || t.Kind == token.INT_LIT {
		return t.Lexeme
	}
	return t.Kind.String()
}

// synchronize implements panic-mode recovery: skip tokens until a
// statement boundary (';' or '}') or EOF.
func (p *Parser) synchronize() {
	for {
		switch p.cur().Kind {
		case token.SEMI:
			p.advance()
			return
		case token.RBRACE, token.EOF:
			return
		default:
			p.advance()
		}
	}
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		fn := p.parseFunctionDef()
		if fn != nil {
			prog.Functions = append(prog.Functions, fn)
		} else {
			p.synchronize()
		}
	}
	return prog
}

func typeFromTok(k token.Kind) (ast.Type, bool) {
	switch k {
	case token.INT:
		return ast.Int, true
	case token.BOOL:
		return ast.Bool, true
	default:
		return ast.Invalid, false
	}
}

func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	pos := p.pos_()
	retType, ok := typeFromTok(p.cur().Kind)
	if !ok {
		p.diags.Errorf("parser", posNode(p.cur()), "expected a return type but found %s", describe(p.cur()))
		return nil
	}
	p.advance()

	nameTok := p.expect(token.IDENT)
	fn := &ast.FunctionDef{Position: pos, Name: nameTok.Lexeme, ReturnType: retType}

	p.expect(token.LPAREN)
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		paramPos := p.pos_()
		pt, ok := typeFromTok(p.cur().Kind)
		if !ok {
			p.diags.Errorf("parser", posNode(p.cur()), "expected a parameter type but found %s", describe(p.cur()))
			break
		}
		p.advance()
		pname := p.expect(token.IDENT)
		fn.Params = append(fn.Params, ast.Param{Name: pname.Lexeme, Typ: pt, Position: paramPos})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	pos := p.pos_()
	p.expect(token.LBRACE)
	block := &ast.BlockStmt{StmtBase: ast.NewStmtBase(pos)}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		} else {
			p.synchronize()
		}
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case token.INT, token.BOOL:
		return p.parseVarDecl()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.PRINT:
		return p.parsePrint()
	case token.LBRACE:
		return p.parseBlock()
	case token.IDENT:
		return p.parseAssign()
	default:
		p.diags.Errorf("parser", posNode(p.cur()), "unexpected token %s at start of statement", describe(p.cur()))
		return nil
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	pos := p.pos_()
	typ, _ := typeFromTok(p.cur().Kind)
	p.advance()
	name := p.expect(token.IDENT)
	decl := &ast.VarDecl{Name: name.Lexeme, Typ: typ}
	decl.StmtBase = ast.NewStmtBase(pos)
	if p.at(token.ASSIGN) {
		p.advance()
		decl.Init = p.parseExpr()
	}
	p.expect(token.SEMI)
	return decl
}

func (p *Parser) parseAssign() ast.Stmt {
	pos := p.pos_()
	name := p.advance()
	p.expect(token.ASSIGN)
	value := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.Assign{StmtBase: ast.NewStmtBase(pos), Name: name.Lexeme, Value: value}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.pos_()
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseBlock()
	ifStmt := &ast.IfStmt{StmtBase: ast.NewStmtBase(pos), Cond: cond, Then: then}
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			elseBlockPos := p.pos_()
			inner := p.parseIf()
			ifStmt.Else = &ast.BlockStmt{StmtBase: ast.NewStmtBase(elseBlockPos), Stmts: []ast.Stmt{inner}}
		} else {
			ifStmt.Else = p.parseBlock()
		}
	}
	return ifStmt
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.pos_()
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{StmtBase: ast.NewStmtBase(pos), Cond: cond, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.pos_()
	p.advance()
	value := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.ReturnStmt{StmtBase: ast.NewStmtBase(pos), Value: value}
}

func (p *Parser) parsePrint() ast.Stmt {
	pos := p.pos_()
	p.advance()
	p.expect(token.LPAREN)
	value := p.parseExpr()
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return &ast.PrintStmt{StmtBase: ast.NewStmtBase(pos), Value: value}
}

// ---- Expressions: precedence-climbing over ||, &&, equality,
// relational, additive, multiplicative, unary, primary. ----

func (p *Parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(token.OR) {
		pos := p.pos_()
		p.advance()
		right := p.parseAnd()
		left = binExpr(pos, left, "||", right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AND) {
		pos := p.pos_()
		p.advance()
		right := p.parseEquality()
		left = binExpr(pos, left, "&&", right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NE) {
		op := p.advance()
		right := p.parseRelational()
		left = binExpr(ast.Position{Line: op.Line, Col: op.Col}, left, op.Lexeme, right)
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.LE) || p.at(token.GT) || p.at(token.GE) {
		op := p.advance()
		right := p.parseAdditive()
		left = binExpr(ast.Position{Line: op.Line, Col: op.Col}, left, op.Lexeme, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = binExpr(ast.Position{Line: op.Line, Col: op.Col}, left, op.Lexeme, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		left = binExpr(ast.Position{Line: op.Line, Col: op.Col}, left, op.Lexeme, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.at(token.MINUS) || p.at(token.NOT) {
		op := p.advance()
		right := p.parseUnary()
		return unExpr(ast.Position{Line: op.Line, Col: op.Col}, op.Lexeme, right)
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.INT_LIT:
		p.advance()
		v, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			p.diags.Errorf("parser", posNode(t), "invalid integer literal %q", t.Lexeme)
		}
		return &ast.IntLit{ExprBase: ast.NewExprBase(posOf(t)), Value: v}
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{ExprBase: ast.NewExprBase(posOf(t)), Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{ExprBase: ast.NewExprBase(posOf(t)), Value: false}
	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return inner
	case token.IDENT:
		p.advance()
		if p.at(token.LPAREN) {
			p.advance()
			call := &ast.CallExpr{ExprBase: ast.NewExprBase(posOf(t)), Callee: t.Lexeme}
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				call.Args = append(call.Args, p.parseExpr())
				if p.at(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RPAREN)
			return call
		}
		return &ast.NameExpr{ExprBase: ast.NewExprBase(posOf(t)), Name: t.Lexeme}
	default:
		p.diags.Errorf("parser", posNode(t), "unexpected token %s in expression", describe(t))
		p.advance()
		return &ast.IntLit{ExprBase: ast.NewExprBase(posOf(t)), Value: 0}
	}
}

func posOf(t token.Token) ast.Position {
	return ast.Position{Line: t.Line, Col: t.Col}
}

func binExpr(pos ast.Position, left ast.Expr, op string, right ast.Expr) ast.Expr {
	return &ast.BinaryExpr{ExprBase: ast.NewExprBase(pos), Left: left, Op: op, Right: right}
}

func unExpr(pos ast.Position, op string, right ast.Expr) ast.Expr {
	return &ast.UnaryExpr{ExprBase: ast.NewExprBase(pos), Op: op, Right: right}
}

// posNode adapts a token's position to an ast.Node so it can be
// attached to a diagnostic.
type tokNode struct{ p ast.Position }

func (n tokNode) Pos() ast.Position { return n.p }

func posNode(t token.Token) ast.Node {
	return tokNode{ast.Position{Line: t.Line, Col: t.Col}}
}
