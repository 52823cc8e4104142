// Package token defines the lexical units produced by the lexer and
// consumed by the parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Int
	Float
	Char
	String

	// Keywords.
	KwModule
	KwUse
	KwAs
	KwPub
	KwConst
	KwLet
	KwFn
	KwStruct
	KwEnum
	KwReturn
	KwIf
	KwElse
	KwFor
	KwPubColon
	KwPrivColon
	KwCast
	KwSizeof
	KwAlloc
	KwFree
	KwInput
	KwSystem
	KwSyscall
	KwNull
	KwTrue
	KwFalse
	KwTakesOwnership
	KwReturnsOwnership

	// Punctuation & operators.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	ColonColon
	Arrow // ->
	Dot
	DotDot // ..
	Amp
	Star
	Plus
	Minus
	Slash
	Percent
	Caret
	Pipe
	Tilde
	Bang
	Eq
	EqEq
	NotEq
	Lt
	Lte
	Gt
	Gte
	AmpAmp
	PipePipe
	Shl
	Shr
	PlusPlus
	MinusMinus
	PlusEq
	MinusEq
	Hash // '#' prefix for ownership markers
)

var names = map[Kind]string{
	EOF: "EOF", Ident: "identifier", Int: "int literal", Float: "float literal",
	Char: "char literal", String: "string literal",
	KwModule: "@module", KwUse: "@use", KwAs: "as", KwPub: "pub", KwConst: "const",
	KwLet: "let", KwFn: "fn", KwStruct: "struct", KwEnum: "enum", KwReturn: "return",
	KwIf: "if", KwElse: "else", KwFor: "for", KwCast: "cast", KwSizeof: "sizeof",
	KwAlloc: "alloc", KwFree: "free", KwInput: "input", KwSystem: "system",
	KwSyscall: "syscall", KwNull: "null", KwTrue: "true", KwFalse: "false",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Semicolon: ";", Colon: ":", ColonColon: "::", Arrow: "->", Dot: ".",
	DotDot: "..", Amp: "&", Star: "*", Plus: "+", Minus: "-", Slash: "/", Percent: "%",
	Caret: "^", Pipe: "|", Tilde: "~", Bang: "!", Eq: "=", EqEq: "==", NotEq: "!=",
	Lt: "<", Lte: "<=", Gt: ">", Gte: ">=", AmpAmp: "&&", PipePipe: "||",
	Shl: "<<", Shr: ">>", PlusPlus: "++", MinusMinus: "--", PlusEq: "+=", MinusEq: "-=",
	Hash: "#",
}

// String returns the human-readable name of the token kind.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved identifiers to their keyword kind.
var Keywords = map[string]Kind{
	"as": KwAs, "pub": KwPub, "const": KwConst, "let": KwLet, "fn": KwFn,
	"struct": KwStruct, "enum": KwEnum, "return": KwReturn, "if": KwIf,
	"else": KwElse, "for": KwFor, "cast": KwCast, "sizeof": KwSizeof,
	"alloc": KwAlloc, "free": KwFree, "input": KwInput, "system": KwSystem,
	"syscall": KwSyscall, "null": KwNull, "true": KwTrue, "false": KwFalse,
}

// Position is a source location: 1-based line and column within a file.
type Position struct {
	File   string
	Line   int
	Column int
}

// String renders the position as "file:line:column".
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Token is a single lexical unit: a kind, the exact source text it spans,
// and its originating position.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
