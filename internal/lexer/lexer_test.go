package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Luma-Programming-Language/Luma/internal/token"
)

func TestTokenizeHelloWorld(t *testing.T) {
	src := `@module "main"
const main -> fn() int { outputln("hi"); return 0; };`

	toks, errs := Tokenize("main.lm", src)
	require.Empty(t, errs)

	expected := []token.Kind{
		token.KwModule, token.String,
		token.KwConst, token.Ident, token.Arrow, token.KwFn, token.LParen, token.RParen,
		token.Ident, token.LBrace,
		token.Ident, token.LParen, token.String, token.RParen, token.Semicolon,
		token.KwReturn, token.Int, token.Semicolon,
		token.RBrace, token.Semicolon,
		token.EOF,
	}
	require.Len(t, toks, len(expected))
	for i, k := range expected {
		require.Equalf(t, k, toks[i].Kind, "token %d (%q)", i, toks[i].Lexeme)
	}
}

func TestTokenizeCompileTimeVsRuntimeAccess(t *testing.T) {
	toks, errs := Tokenize("x.lm", "util::add(2,3); p.distance();")
	require.Empty(t, errs)

	kinds := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	require.Contains(t, kinds, token.ColonColon)
	require.Contains(t, kinds, token.Dot)
}

func TestTokenizeStructSections(t *testing.T) {
	toks, errs := Tokenize("s.lm", "struct { pub: x: int priv: y: int }")
	require.Empty(t, errs)

	var sawPub, sawPriv bool
	for _, tk := range toks {
		switch tk.Kind {
		case token.KwPubColon:
			sawPub = true
		case token.KwPrivColon:
			sawPriv = true
		}
	}
	require.True(t, sawPub)
	require.True(t, sawPriv)
}

func TestTokenizeOwnershipMarkers(t *testing.T) {
	toks, errs := Tokenize("o.lm", "#takes_ownership #returns_ownership")
	require.Empty(t, errs)
	require.Equal(t, token.KwTakesOwnership, toks[0].Kind)
	require.Equal(t, token.KwReturnsOwnership, toks[1].Kind)
}

func TestTokenizeEscapeSequences(t *testing.T) {
	toks, errs := Tokenize("e.lm", `"a\nb\tc\\d\"e\0f\x41"`)
	require.Empty(t, errs)
	require.Equal(t, "a\nb\tc\\d\"e\x00f\x41", toks[0].Lexeme)
}

func TestTokenizeRangeAndDotDistinctFromDotDot(t *testing.T) {
	toks, _ := Tokenize("r.lm", "a..b")
	require.Equal(t, token.Ident, toks[0].Kind)
	require.Equal(t, token.DotDot, toks[1].Kind)
	require.Equal(t, token.Ident, toks[2].Kind)
}

func TestTokenizeNumberLiterals(t *testing.T) {
	toks, errs := Tokenize("n.lm", "42 3.14 2e10")
	require.Empty(t, errs)
	require.Equal(t, token.Int, toks[0].Kind)
	require.Equal(t, token.Float, toks[1].Kind)
	require.Equal(t, token.Float, toks[2].Kind)
}

func TestTokenizeUnknownCharacterReportsError(t *testing.T) {
	_, errs := Tokenize("z.lm", "let x = `")
	require.NotEmpty(t, errs)
}
