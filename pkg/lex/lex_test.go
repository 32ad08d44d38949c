package lex_test

import (
	"testing"

	"github.com/hissp-io/hissp-go/pkg/lex"
	"github.com/hissp-io/hissp-go/pkg/util/assert"
)

func kinds(tokens []lex.Token) []uint {
	out := make([]uint, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}

	return out
}

func TestTokenizeBasicForm(t *testing.T) {
	tokens, err := lex.Tokenize([]rune("(print 1 2)"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := kinds(tokens)
	want := []uint{lex.OPEN, lex.ATOM, lex.WHITESPACE, lex.ATOM, lex.WHITESPACE, lex.ATOM, lex.CLOSE, lex.ENDOFFILE}
	assert.Equal(t, want, got)
}

func TestTokenizeReaderMacros(t *testing.T) {
	tokens, err := lex.Tokenize([]rune("'x `x ,x ,@x _#x .#x $#x foo#x !arg"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var nonSpace []uint
	for _, tok := range tokens {
		if tok.Kind != lex.WHITESPACE {
			nonSpace = append(nonSpace, tok.Kind)
		}
	}

	want := []uint{
		lex.QUOTE, lex.ATOM,
		lex.TEMPLATE, lex.ATOM,
		lex.UNQUOTE, lex.ATOM,
		lex.SPLICE, lex.ATOM,
		lex.DISCARD, lex.ATOM,
		lex.INJECT, lex.ATOM,
		lex.GENSYM, lex.ATOM,
		lex.MACRO, lex.ATOM,
		lex.EXTRA, lex.ATOM,
		lex.ENDOFFILE,
	}
	assert.Equal(t, want, nonSpace)
}

func TestTokenizeControlWord(t *testing.T) {
	tokens, err := lex.Tokenize([]rune(":foo"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, []uint{lex.CONTROL, lex.ENDOFFILE}, kinds(tokens))
}

func TestTokenizeStrings(t *testing.T) {
	tokens, err := lex.Tokenize([]rune(`"abc" #"abc\n"`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var nonSpace []uint
	for _, tok := range tokens {
		if tok.Kind != lex.WHITESPACE {
			nonSpace = append(nonSpace, tok.Kind)
		}
	}

	assert.Equal(t, []uint{lex.RAWxSTRING, lex.HASHxSTRING, lex.ENDOFFILE}, nonSpace)
}

func TestTokenizeBracketedAtom(t *testing.T) {
	tokens, err := lex.Tokenize([]rune("[1 2 3]"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, []uint{lex.ATOM, lex.ENDOFFILE}, kinds(tokens))

	span := tokens[0].Span
	assert.Equal(t, 0, span.Start())
	assert.Equal(t, 7, span.End())
}

func TestTokenizeComment(t *testing.T) {
	tokens, err := lex.Tokenize([]rune("; hello\nx"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, []uint{lex.COMMENT, lex.WHITESPACE, lex.ATOM, lex.ENDOFFILE}, kinds(tokens))
}

func TestTokenizeUnterminatedStringIsLexError(t *testing.T) {
	_, err := lex.Tokenize([]rune(`"abc`), nil)
	if err == nil {
		t.Fatalf("expected a LexError for an unterminated string")
	}
}
