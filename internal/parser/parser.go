// Package parser implements a Pratt-style recursive-descent parser that
// turns a token.Token stream into a single *ast.Module per file.
package parser

import (
	"fmt"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/token"
)

const (
	precLowest = iota
	precAssign
	precRange
	precOr
	precAnd
	precEquality
	precComparison
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precSum
	precProduct
	precPrefix
	precPostfix
)

var precedences = map[token.Kind]int{
	token.Eq:       precAssign,
	token.DotDot:   precRange,
	token.PipePipe: precOr,
	token.AmpAmp:   precAnd,
	token.EqEq:     precEquality,
	token.NotEq:    precEquality,
	token.Lt:       precComparison,
	token.Lte:      precComparison,
	token.Gt:       precComparison,
	token.Gte:      precComparison,
	token.Pipe:     precBitOr,
	token.Caret:    precBitXor,
	token.Amp:      precBitAnd,
	token.Shl:      precShift,
	token.Shr:      precShift,
	token.Plus:     precSum,
	token.Minus:    precSum,
	token.Star:     precProduct,
	token.Slash:    precProduct,
	token.Percent:  precProduct,
	token.LParen:   precPostfix,
	token.LBracket: precPostfix,
	token.Dot:      precPostfix,
	token.ColonColon: precPostfix,
}

// ParseError is a single recoverable parse error.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type prefixFn func() ast.Expr
type infixFn func(ast.Expr) ast.Expr

// Parser consumes a fixed token slice (always EOF-terminated) and builds
// the AST through the shared Arena.
type Parser struct {
	arena *ast.Arena
	toks  []token.Token
	pos   int

	errors []error

	prefixFns map[token.Kind]prefixFn
	infixFns  map[token.Kind]infixFn
}

// New returns a Parser over toks, allocating nodes from arena.
func New(arena *ast.Arena, toks []token.Token) *Parser {
	p := &Parser{arena: arena, toks: toks}
	p.prefixFns = map[token.Kind]prefixFn{
		token.Ident:    p.parseIdentifier,
		token.Int:      p.parseLiteral(ast.LitInt),
		token.Float:    p.parseLiteral(ast.LitFloat),
		token.Char:     p.parseLiteral(ast.LitChar),
		token.String:   p.parseLiteral(ast.LitString),
		token.KwTrue:   p.parseLiteral(ast.LitBool),
		token.KwFalse:  p.parseLiteral(ast.LitBool),
		token.KwNull:   p.parseLiteral(ast.LitNull),
		token.Minus:    p.parseUnary(ast.OpNeg),
		token.Bang:     p.parseUnary(ast.OpNot),
		token.Tilde:    p.parseUnary(ast.OpBitNot),
		token.PlusPlus: p.parseUnary(ast.OpPreInc),
		token.MinusMinus: p.parseUnary(ast.OpPreDec),
		token.Amp:      p.parseAddr,
		token.Star:     p.parseDeref,
		token.LParen:   p.parseGroup,
		token.LBracket: p.parseArrayLiteral,
		token.KwCast:   p.parseCast,
		token.KwSizeof: p.parseSizeof,
		token.KwAlloc:  p.parseAlloc,
		token.KwFree:   p.parseFree,
		token.KwInput:  p.parseInput,
		token.KwSystem: p.parseSystem,
		token.KwSyscall: p.parseSyscall,
	}
	p.infixFns = map[token.Kind]infixFn{
		token.Plus: p.parseBinary(ast.OpAdd), token.Minus: p.parseBinary(ast.OpSub),
		token.Star: p.parseBinary(ast.OpMul), token.Slash: p.parseBinary(ast.OpDiv),
		token.Percent: p.parseBinary(ast.OpMod),
		token.EqEq: p.parseBinary(ast.OpEq), token.NotEq: p.parseBinary(ast.OpNeq),
		token.Lt: p.parseBinary(ast.OpLt), token.Lte: p.parseBinary(ast.OpLte),
		token.Gt: p.parseBinary(ast.OpGt), token.Gte: p.parseBinary(ast.OpGte),
		token.AmpAmp: p.parseBinary(ast.OpAnd), token.PipePipe: p.parseBinary(ast.OpOr),
		token.Amp: p.parseBinary(ast.OpBitAnd), token.Pipe: p.parseBinary(ast.OpBitOr),
		token.Caret: p.parseBinary(ast.OpBitXor),
		token.Shl: p.parseBinary(ast.OpShl), token.Shr: p.parseBinary(ast.OpShr),
		token.Eq:       p.parseAssignment,
		token.DotDot:   p.parseRange,
		token.LParen:   p.parseCall,
		token.LBracket: p.parseIndex,
		token.Dot:      p.parseMember(false),
		token.ColonColon: p.parseMember(true),
	}
	return p
}

// Errors returns every recoverable parse error accumulated so far.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k token.Kind) token.Token {
	if !p.at(k) {
		p.errorf(p.cur().Pos, "expected %s, got %s %q", k, p.cur().Kind, p.cur().Lexeme)
		return p.cur()
	}
	return p.advance()
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur().Kind]; ok {
		return pr
	}
	return precLowest
}

// ParseModule parses the token stream for one file into an *ast.Module.
// It expects `@module "name"` followed by a sequence of `@use` directives
// and top-level statements, per §6.
func (p *Parser) ParseModule(filePath string, index int) *ast.Module {
	startPos := p.cur().Pos
	p.expect(token.KwModule)
	nameTok := p.expect(token.String)

	var body []ast.Stmt
	for !p.at(token.EOF) {
		if p.at(token.KwUse) {
			body = append(body, p.parseUseStmt())
			continue
		}
		if s := p.parseTopLevelStmt(); s != nil {
			body = append(body, s)
		}
	}

	return p.arena.NewModule(startPos, nameTok.Lexeme, body, filePath, p.toks, index)
}

func (p *Parser) parseUseStmt() ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.KwUse)
	pathTok := p.expect(token.String)
	alias := ""
	if p.at(token.KwAs) {
		p.advance()
		alias = p.expect(token.Ident).Lexeme
	}
	p.consumeOptSemicolon()
	use := p.arena.NewUse(pos, pathTok.Lexeme, alias)
	return p.arena.NewUseStmt(use)
}

func (p *Parser) consumeOptSemicolon() {
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseTopLevelStmt dispatches `const X -> fn/struct/enum { ... }` and
// `let`/`const` variable declarations, per the grammar table in §6.
func (p *Parser) parseTopLevelStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.KwPub:
		p.advance()
		return p.withPublic(p.parseTopLevelStmt())
	case token.KwConst:
		return p.parseConstDecl(false)
	case token.KwLet:
		return p.parseVarDecl(false)
	default:
		p.errorf(p.cur().Pos, "unexpected token %s %q at top level", p.cur().Kind, p.cur().Lexeme)
		p.advance()
		return nil
	}
}

// withPublic marks the already-parsed declaration as public. Function,
// Struct, Enum and VarDecl all carry their own IsPublic flag.
func (p *Parser) withPublic(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.Function:
		n.IsPublic = true
	case *ast.Struct:
		n.IsPublic = true
	case *ast.Enum:
		n.IsPublic = true
	case *ast.VarDecl:
		n.IsPublic = true
	}
	return s
}

// parseConstDecl parses `const X -> fn/struct/enum ...` or a plain
// `const x: T = e;` value binding, disambiguated by whether `->` follows
// the name.
func (p *Parser) parseConstDecl(public bool) ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.KwConst)
	name := p.expect(token.Ident).Lexeme

	if p.at(token.Arrow) {
		p.advance()
		switch p.cur().Kind {
		case token.KwFn:
			return p.parseFunctionDecl(pos, name, public)
		case token.KwStruct:
			return p.parseStructDecl(pos, name, public)
		case token.KwEnum:
			return p.parseEnumDecl(pos, name, public)
		default:
			p.errorf(p.cur().Pos, "expected fn/struct/enum after '->', got %s", p.cur().Kind)
			return nil
		}
	}

	// Plain `const x: T = e;`.
	var typ ast.TypeNode
	if p.at(token.Colon) {
		p.advance()
		typ = p.parseType()
	}
	p.expect(token.Eq)
	init := p.parseExpr(precLowest)
	p.consumeOptSemicolon()
	return p.arena.NewVarDecl(pos, ast.VarDecl{Name: name, Type: typ, Initializer: init, IsMutable: false, IsPublic: public})
}

func (p *Parser) parseVarDecl(public bool) ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.KwLet)
	name := p.expect(token.Ident).Lexeme
	var typ ast.TypeNode
	if p.at(token.Colon) {
		p.advance()
		typ = p.parseType()
	}
	var init ast.Expr
	if p.at(token.Eq) {
		p.advance()
		init = p.parseExpr(precLowest)
	}
	p.consumeOptSemicolon()
	return p.arena.NewVarDecl(pos, ast.VarDecl{Name: name, Type: typ, Initializer: init, IsMutable: true, IsPublic: public})
}

// parseFunctionDecl parses `fn(params) Ret { body }` starting at the `fn`
// keyword. Optional `#takes_ownership`/`#returns_ownership` markers sit
// between the return type and the body and are consumed by
// parseTrailingOwnershipMarkers.
func (p *Parser) parseFunctionDecl(pos token.Position, name string, public bool) *ast.Function {
	p.expect(token.KwFn)
	params := p.parseParamList()
	retType := p.parseOptionalType()
	takes, returns := p.parseTrailingOwnershipMarkers()
	body := p.parseBlock()
	p.consumeOptSemicolon()
	return p.arena.NewFunction(pos, ast.Function{
		Name: name, Params: params, ReturnType: retType, Body: body,
		IsPublic: public, TakesOwnership: takes, ReturnsOwnership: returns,
	})
}

// parseTrailingOwnershipMarkers consumes any `#takes_ownership` /
// `#returns_ownership` tokens appearing before the function body.
func (p *Parser) parseTrailingOwnershipMarkers() (takes, returns bool) {
	for p.at(token.KwTakesOwnership) || p.at(token.KwReturnsOwnership) {
		if p.at(token.KwTakesOwnership) {
			takes = true
		} else {
			returns = true
		}
		p.advance()
	}
	return
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LParen)
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		name := p.expect(token.Ident).Lexeme
		p.expect(token.Colon)
		typ := p.parseType()
		params = append(params, ast.Param{Name: name, Type: typ})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen)
	return params
}

// parseOptionalType parses a return type, which is absent for void
// functions (the next token is `{`, `#`, or `;`).
func (p *Parser) parseOptionalType() ast.TypeNode {
	if p.at(token.LBrace) || p.at(token.KwTakesOwnership) || p.at(token.KwReturnsOwnership) || p.at(token.Semicolon) {
		return nil
	}
	return p.parseType()
}

// parseStructDecl parses `struct { pub: field... priv: field... }`.
func (p *Parser) parseStructDecl(pos token.Position, name string, public bool) *ast.Struct {
	p.expect(token.KwStruct)
	p.expect(token.LBrace)

	var pub, priv []*ast.FieldDecl
	cur := &pub // defaults to public until a section label is seen
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwPubColon:
			p.advance()
			cur = &pub
			continue
		case token.KwPrivColon:
			p.advance()
			cur = &priv
			continue
		}
		*cur = append(*cur, p.parseFieldDecl(name))
	}
	p.expect(token.RBrace)
	p.consumeOptSemicolon()
	return p.arena.NewStruct(pos, name, pub, priv, "", public)
}

// parseFieldDecl parses one `name: Type` data field or `name: fn(...) Ret
// { ... }` method inside a struct body. structName is the enclosing
// struct's own name, used to tag method FieldDecls with their receiver.
func (p *Parser) parseFieldDecl(structName string) *ast.FieldDecl {
	pos := p.cur().Pos
	fname := p.expect(token.Ident).Lexeme
	p.expect(token.Colon)

	if p.at(token.KwFn) {
		fn := p.parseFunctionDecl(pos, fname, false)
		fn.ReceiverStruct = structName
		return p.arena.NewFieldDecl(pos, fname, nil, fn, "", false)
	}

	typ := p.parseType()
	if p.at(token.Comma) {
		p.advance()
	}
	return p.arena.NewFieldDecl(pos, fname, typ, nil, "", false)
}

// parseEnumDecl parses `enum { A, B = 4, C }`.
func (p *Parser) parseEnumDecl(pos token.Position, name string, public bool) *ast.Enum {
	p.expect(token.KwEnum)
	p.expect(token.LBrace)
	var members []ast.EnumMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mname := p.expect(token.Ident).Lexeme
		m := ast.EnumMember{Name: mname}
		if p.at(token.Eq) {
			p.advance()
			lit := p.expect(token.Int)
			var v int64
			fmt.Sscanf(lit.Lexeme, "%d", &v)
			m.Value = &v
		}
		members = append(members, m)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	p.consumeOptSemicolon()
	return p.arena.NewEnum(pos, name, members, public)
}

// parseBlock parses a `{ stmt... }` block.
func (p *Parser) parseBlock() *ast.Block {
	pos := p.cur().Pos
	p.expect(token.LBrace)
	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBrace)
	return p.arena.NewBlock(pos, stmts)
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.KwLet:
		return p.parseVarDecl(false)
	case token.KwConst:
		return p.parseConstDecl(false)
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.LBrace:
		return p.parseBlock()
	default:
		pos := p.cur().Pos
		e := p.parseExpr(precLowest)
		p.consumeOptSemicolon()
		return p.arena.NewExprStmt(pos, e)
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.KwReturn)
	var val ast.Expr
	if !p.at(token.Semicolon) {
		val = p.parseExpr(precLowest)
	}
	p.consumeOptSemicolon()
	return p.arena.NewReturnStmt(pos, val)
}

func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.KwIf)
	p.expect(token.LParen)
	cond := p.parseExpr(precLowest)
	p.expect(token.RParen)
	then := p.parseBlock()
	var els ast.Stmt
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			els = p.parseIfStmt()
		} else {
			els = p.parseBlock()
		}
	}
	return p.arena.NewIfStmt(pos, cond, then, els)
}

func (p *Parser) parseForStmt() ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.KwFor)
	p.expect(token.LParen)
	var init ast.Stmt
	if !p.at(token.Semicolon) {
		init = p.parseStmtNoTerminator()
	}
	p.expect(token.Semicolon)
	var cond ast.Expr
	if !p.at(token.Semicolon) {
		cond = p.parseExpr(precLowest)
	}
	p.expect(token.Semicolon)
	var post ast.Stmt
	if !p.at(token.RParen) {
		postPos := p.cur().Pos
		post = p.arena.NewExprStmt(postPos, p.parseExpr(precLowest))
	}
	p.expect(token.RParen)
	body := p.parseBlock()
	return p.arena.NewForStmt(pos, init, cond, post, body)
}

// parseStmtNoTerminator parses a let-binding or expression without
// consuming a trailing `;` (the for-loop header supplies its own).
func (p *Parser) parseStmtNoTerminator() ast.Stmt {
	if p.at(token.KwLet) {
		pos := p.cur().Pos
		p.advance()
		name := p.expect(token.Ident).Lexeme
		var typ ast.TypeNode
		if p.at(token.Colon) {
			p.advance()
			typ = p.parseType()
		}
		var init ast.Expr
		if p.at(token.Eq) {
			p.advance()
			init = p.parseExpr(precLowest)
		}
		return p.arena.NewVarDecl(pos, ast.VarDecl{Name: name, Type: typ, Initializer: init, IsMutable: true})
	}
	pos := p.cur().Pos
	return p.arena.NewExprStmt(pos, p.parseExpr(precLowest))
}

// parseExpr is the Pratt expression loop: a prefix parse followed by
// repeated infix parses while the next operator binds tighter than
// minPrec.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur().Kind]
	if !ok {
		p.errorf(p.cur().Pos, "unexpected token %s %q in expression", p.cur().Kind, p.cur().Lexeme)
		p.advance()
		return p.arena.NewLiteral(p.cur().Pos, ast.LitNull, "")
	}
	left := prefix()

	for minPrec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur().Kind]
		if !ok {
			break
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	t := p.advance()
	return p.arena.NewIdentifier(t.Pos, t.Lexeme)
}

func (p *Parser) parseLiteral(kind ast.LiteralKind) prefixFn {
	return func() ast.Expr {
		t := p.advance()
		return p.arena.NewLiteral(t.Pos, kind, t.Lexeme)
	}
}

func (p *Parser) parseUnary(op ast.UnaryOp) prefixFn {
	return func() ast.Expr {
		t := p.advance()
		operand := p.parseExpr(precPrefix)
		return p.arena.NewUnary(t.Pos, op, operand)
	}
}

func (p *Parser) parseAddr() ast.Expr {
	t := p.advance()
	return p.arena.NewAddr(t.Pos, p.parseExpr(precPrefix))
}

func (p *Parser) parseDeref() ast.Expr {
	t := p.advance()
	return p.arena.NewDeref(t.Pos, p.parseExpr(precPrefix))
}

func (p *Parser) parseGroup() ast.Expr {
	p.advance()
	e := p.parseExpr(precLowest)
	p.expect(token.RParen)
	return e
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	pos := p.cur().Pos
	p.expect(token.LBracket)
	var elems []ast.Expr
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpr(precLowest))
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RBracket)
	return p.arena.NewArray(pos, elems, 0)
}

func (p *Parser) parseBinary(op ast.BinaryOp) infixFn {
	return func(left ast.Expr) ast.Expr {
		t := p.advance()
		prec := precedences[t.Kind]
		right := p.parseExpr(prec)
		return p.arena.NewBinary(t.Pos, op, left, right)
	}
}

func (p *Parser) parseAssignment(target ast.Expr) ast.Expr {
	t := p.advance()
	value := p.parseExpr(precAssign - 1)
	return p.arena.NewAssignment(t.Pos, target, value)
}

func (p *Parser) parseRange(left ast.Expr) ast.Expr {
	t := p.advance()
	right := p.parseExpr(precRange)
	return p.arena.NewRange(t.Pos, left, right)
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	pos := p.advance().Pos // consume '('
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		args = append(args, p.parseExpr(precLowest))
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen)
	return p.arena.NewCall(pos, callee, args)
}

func (p *Parser) parseIndex(obj ast.Expr) ast.Expr {
	pos := p.advance().Pos // consume '['
	idx := p.parseExpr(precLowest)
	p.expect(token.RBracket)
	return p.arena.NewIndex(pos, obj, idx)
}

func (p *Parser) parseMember(compileTime bool) infixFn {
	return func(obj ast.Expr) ast.Expr {
		t := p.advance()
		name := p.expect(token.Ident).Lexeme
		return p.arena.NewMember(t.Pos, obj, name, compileTime)
	}
}

func (p *Parser) parseCast() ast.Expr {
	pos := p.advance().Pos // 'cast'
	p.expect(token.Lt)
	typ := p.parseType()
	p.expect(token.Gt)
	p.expect(token.LParen)
	castee := p.parseExpr(precLowest)
	p.expect(token.RParen)
	return p.arena.NewCast(pos, typ, castee)
}

func (p *Parser) parseSizeof() ast.Expr {
	pos := p.advance().Pos // 'sizeof'
	if p.at(token.Lt) {
		p.advance()
		typ := p.parseType()
		p.expect(token.Gt)
		return p.arena.NewSizeOfType(pos, typ)
	}
	p.expect(token.LParen)
	e := p.parseExpr(precLowest)
	p.expect(token.RParen)
	return p.arena.NewSizeOfExpr(pos, e)
}

func (p *Parser) parseAlloc() ast.Expr {
	pos := p.advance().Pos
	p.expect(token.LParen)
	size := p.parseExpr(precLowest)
	p.expect(token.RParen)
	return p.arena.NewAlloc(pos, size)
}

func (p *Parser) parseFree() ast.Expr {
	pos := p.advance().Pos
	p.expect(token.LParen)
	ptr := p.parseExpr(precLowest)
	p.expect(token.RParen)
	return p.arena.NewFree(pos, ptr)
}

func (p *Parser) parseInput() ast.Expr {
	pos := p.advance().Pos // 'input'
	p.expect(token.Lt)
	typ := p.parseType()
	p.expect(token.Gt)
	p.expect(token.LParen)
	var msg ast.Expr
	if !p.at(token.RParen) {
		msg = p.parseExpr(precLowest)
	}
	p.expect(token.RParen)
	return p.arena.NewInput(pos, typ, msg)
}

func (p *Parser) parseSystem() ast.Expr {
	pos := p.advance().Pos
	p.expect(token.LParen)
	cmd := p.parseExpr(precLowest)
	p.expect(token.RParen)
	return p.arena.NewSystem(pos, cmd)
}

func (p *Parser) parseSyscall() ast.Expr {
	pos := p.advance().Pos
	p.expect(token.LParen)
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		args = append(args, p.parseExpr(precLowest))
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen)
	return p.arena.NewSyscall(pos, args)
}

// parseType parses a type expression: `*T`, `[N]T`, `Mod::Type`, or a bare
// name (possibly a struct/enum reference resolved later by semantic
// analysis).
func (p *Parser) parseType() ast.TypeNode {
	pos := p.cur().Pos
	switch p.cur().Kind {
	case token.Star:
		p.advance()
		return p.arena.NewPointerType(pos, p.parseType())
	case token.LBracket:
		p.advance()
		sizeTok := p.expect(token.Int)
		p.expect(token.RBracket)
		var size int64
		fmt.Sscanf(sizeTok.Lexeme, "%d", &size)
		return p.arena.NewArrayType(pos, p.parseType(), size)
	case token.Ident:
		name := p.advance().Lexeme
		if p.at(token.ColonColon) {
			parts := []string{name}
			for p.at(token.ColonColon) {
				p.advance()
				parts = append(parts, p.expect(token.Ident).Lexeme)
			}
			return p.arena.NewResolutionType(pos, parts)
		}
		return p.arena.NewBasicType(pos, name)
	default:
		p.errorf(pos, "expected a type, got %s %q", p.cur().Kind, p.cur().Lexeme)
		p.advance()
		return p.arena.NewBasicType(pos, "int")
	}
}
