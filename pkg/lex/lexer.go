package lex

import (
	log "github.com/sirupsen/logrus"

	"github.com/hissp-io/hissp-go/pkg/herror"
	"github.com/hissp-io/hissp-go/pkg/util/source"
)

// newScanner builds the full token scanner, trying the fixed two-character
// reader-macro prefixes and other exact literals before the catch-all atom
// scanner, since every one of those prefixes (".", "_", "$", ",") also
// begins a perfectly ordinary bare atom.
func newScanner() source.Scanner[rune] {
	return source.Or[rune](
		source.Many[rune](WHITESPACE, ' ', '\t', '\n', '\r'),
		commentScanner{},
		source.One[rune](OPEN, '('),
		source.One[rune](CLOSE, ')'),
		stringScanner{hash: true},
		stringScanner{hash: false},
		newLiteralScanner(DISCARD, "_#"),
		newLiteralScanner(INJECT, ".#"),
		newLiteralScanner(GENSYM, "$#"),
		commaScanner{},
		source.One[rune](QUOTE, '\''),
		source.One[rune](TEMPLATE, '`'),
		source.One[rune](EXTRA, '!'),
		bracketedAtomScanner{},
		atomOrMacroScanner{},
		source.Eof[rune](ENDOFFILE),
	)
}

// Tokenize scans the whole of source into a token slice, including a
// trailing ENDOFFILE token. file is used only to compute the Position
// attached to a LexError; pass nil for anonymous input.
func Tokenize(src []rune, file *source.File) ([]Token, error) {
	lexer := source.NewLexer[rune](src, newScanner())

	var tokens []Token

	for lexer.HasNext() {
		tok := lexer.Next()
		tokens = append(tokens, tok)
	}

	if lexer.Remaining() > 0 {
		consumed := len(src) - int(lexer.Remaining())
		span := source.NewSpan(consumed, consumed+1)

		pos := herror.Position{Line: 1, Column: consumed + 1}
		if file != nil {
			pos = herror.PositionOf(file, span)
		}

		log.Debugf("lexer stalled at offset %d", consumed)

		return tokens, &herror.LexError{Pos: pos, Msg: "no token matched the remaining input"}
	}

	return tokens, nil
}
