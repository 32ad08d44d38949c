package lex

import (
	"github.com/hissp-io/hissp-go/pkg/util"
	"github.com/hissp-io/hissp-go/pkg/util/source"
)

// isWhitespace reports whether r is a space character recognized between
// tokens.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// isTerminator reports whether r ends a bare atom when unescaped.
func isTerminator(r rune) bool {
	switch r {
	case '(', ')', '"', ';':
		return true
	default:
		return isWhitespace(r)
	}
}

// literalScanner matches one fixed, exact rune sequence.
type literalScanner struct {
	tag     uint
	literal []rune
}

func newLiteralScanner(tag uint, literal string) *literalScanner {
	return &literalScanner{tag, []rune(literal)}
}

func (p *literalScanner) Scan(items []rune) util.Option[source.Token] {
	n := len(p.literal)
	if len(items) < n {
		return util.None[source.Token]()
	}

	for i, r := range p.literal {
		if items[i] != r {
			return util.None[source.Token]()
		}
	}

	return util.Some(source.Token{Kind: p.tag, Span: source.NewSpan(0, n)})
}

// commentScanner matches ';' through (but not including) the next newline
// or end of input.
type commentScanner struct{}

func (commentScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 || items[0] != ';' {
		return util.None[source.Token]()
	}

	i := 1
	for i < len(items) && items[i] != '\n' {
		i++
	}

	return util.Some(source.Token{Kind: COMMENT, Span: source.NewSpan(0, i)})
}

// commaScanner distinguishes UNQUOTE (',') from SPLICE (',@').
type commaScanner struct{}

func (commaScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 || items[0] != ',' {
		return util.None[source.Token]()
	}

	if len(items) > 1 && items[1] == '@' {
		return util.Some(source.Token{Kind: SPLICE, Span: source.NewSpan(0, 2)})
	}

	return util.Some(source.Token{Kind: UNQUOTE, Span: source.NewSpan(0, 1)})
}

// stringScanner matches a '"'-delimited raw string, optionally prefixed by
// '#' (a hash string). Backslashes are literal but must be paired: '\' and
// the rune following it are always consumed together, so an escaped '"'
// never ends the string early and a trailing lone backslash is an error
// (reported by returning None, which Tokenize turns into a LexError since
// nothing else in the grammar can consume an unterminated string either).
type stringScanner struct {
	hash bool
}

func (p stringScanner) Scan(items []rune) util.Option[source.Token] {
	i := 0

	if p.hash {
		if len(items) == 0 || items[0] != '#' {
			return util.None[source.Token]()
		}

		i = 1
	}

	if i >= len(items) || items[i] != '"' {
		return util.None[source.Token]()
	}

	i++

	for i < len(items) {
		switch items[i] {
		case '\\':
			if i+1 >= len(items) {
				// Unpaired backslash: unterminated/malformed string.
				return util.None[source.Token]()
			}

			i += 2
		case '"':
			kind := RAWxSTRING
			if p.hash {
				kind = HASHxSTRING
			}

			return util.Some(source.Token{Kind: kind, Span: source.NewSpan(0, i+1)})
		default:
			i++
		}
	}

	// Ran off the end without a closing quote.
	return util.None[source.Token]()
}

// bracketClose maps an opening bracket rune to the rune that closes it.
var bracketClose = map[rune]rune{'[': ']', '{': '}'}

// bracketedAtomScanner matches a single `[...]` or `{...}` token: nested
// brackets of the same two kinds must balance, and no unescaped whitespace
// is permitted anywhere in the token.
type bracketedAtomScanner struct{}

func (bracketedAtomScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 {
		return util.None[source.Token]()
	}

	open := items[0]

	closeRune, ok := bracketClose[open]
	if !ok {
		return util.None[source.Token]()
	}

	depth := 1
	i := 1

	for i < len(items) && depth > 0 {
		switch items[i] {
		case '\\':
			if i+1 >= len(items) {
				return util.None[source.Token]()
			}

			i += 2

			continue
		case open:
			depth++
		case closeRune:
			depth--
		default:
			if isWhitespace(items[i]) {
				return util.None[source.Token]()
			}
		}

		i++
	}

	if depth != 0 {
		return util.None[source.Token]()
	}

	return util.Some(source.Token{Kind: ATOM, Span: source.NewSpan(0, i)})
}

// atomOrMacroScanner is the catch-all: a maximal run of non-terminator
// characters, with backslash-escapes of terminators consumed literally. If
// the run ends in an unescaped trailing '#' (and is longer than just "#"),
// it is tagged MACRO (a named reader-macro invocation); otherwise ATOM. A
// leading ':' is tagged CONTROL instead, since control words share the same
// termination rules as any other atom.
type atomOrMacroScanner struct{}

func (atomOrMacroScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 || isTerminator(items[0]) {
		return util.None[source.Token]()
	}

	i := 0
	macro := false

	for i < len(items) {
		if items[i] == '\\' && i+1 < len(items) {
			i += 2

			continue
		}

		if isTerminator(items[i]) {
			break
		}

		if items[i] == '#' {
			// '#' always ends the run it's in (a trailing, unescaped '#'
			// marks a named reader-macro token); whatever follows is a
			// fresh token even with no separating whitespace.
			i++
			macro = i > 1

			break
		}

		i++
	}

	kind := ATOM

	switch {
	case items[0] == ':':
		kind = CONTROL
	case macro:
		kind = MACRO
	}

	return util.Some(source.Token{Kind: kind, Span: source.NewSpan(0, i)})
}
