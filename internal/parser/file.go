package parser

import (
	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/lexer"
)

// ParseFile lexes and parses one source file into an *ast.Module, returning
// any lexical and parse errors gathered along the way.
func ParseFile(arena *ast.Arena, filePath, src string, index int) (*ast.Module, []error) {
	toks, lexErrs := lexer.Tokenize(filePath, src)

	p := New(arena, toks)
	mod := p.ParseModule(filePath, index)

	var all []error
	all = append(all, lexErrs...)
	all = append(all, p.Errors()...)
	return mod, all
}
