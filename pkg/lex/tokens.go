// Package lex tokenizes Lissp source text into a flat token stream, built
// on top of the pack's own generic token/scanner combinator library
// (pkg/util/source). Where the combinators in that library (One/Many/Or)
// are expressive enough, tokens are built from them directly; where a
// token's rules need state a one-shot combinator can't express (balanced
// bracketed atoms, paired backslash escapes inside strings), scanners.go
// implements a small hand-written source.Scanner instead — the same
// pattern the pack itself uses for its own Eof/One/Many scanners.
package lex

import "github.com/hissp-io/hissp-go/pkg/util/source"

// Token kinds. The zero value, ENDOFFILE, is also what Tokenize appends
// after the last real token, mirroring the pack's own Eof(tag) convention.
const (
	ENDOFFILE uint = iota
	OPEN
	CLOSE
	RAWxSTRING
	HASHxSTRING
	COMMENT
	WHITESPACE
	MACRO
	ATOM
	CONTROL
	QUOTE
	TEMPLATE
	UNQUOTE
	SPLICE
	DISCARD
	INJECT
	GENSYM
	EXTRA
)

// Token is a positioned, kinded slice of the source.
type Token = source.Token

// KindName returns a human-readable name for a token kind, used in
// diagnostics.
func KindName(kind uint) string {
	switch kind {
	case ENDOFFILE:
		return "end of file"
	case OPEN:
		return "'('"
	case CLOSE:
		return "')'"
	case RAWxSTRING:
		return "string"
	case HASHxSTRING:
		return "hash string"
	case COMMENT:
		return "comment"
	case WHITESPACE:
		return "whitespace"
	case MACRO:
		return "named reader macro"
	case ATOM:
		return "atom"
	case CONTROL:
		return "control word"
	case QUOTE:
		return "'"
	case TEMPLATE:
		return "`"
	case UNQUOTE:
		return ","
	case SPLICE:
		return ",@"
	case DISCARD:
		return "_#"
	case INJECT:
		return ".#"
	case GENSYM:
		return "$#"
	case EXTRA:
		return "!"
	default:
		return "unknown token"
	}
}
