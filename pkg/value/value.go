// Package value defines the Hissp data model: the closed tagged sum of
// Tuple (an ordered sequence of values), Text (host source text, including
// control words, qualified names, and module handles), and Obj (an
// arbitrary host value carried through the pipeline opaquely).
//
// This generalizes the two-armed S-expression sum go-corset's pkg/sexp uses
// (List/Symbol) by adding the third arm a read-time host-code escape hatch
// requires: something that isn't host source text at all, just a value to
// carry through to the compiler unexamined.
package value

import (
	"fmt"
	"strings"
)

// Value is implemented by exactly Tuple, Text, and Obj. The unexported
// method closes the sum so no other package can add a fourth arm.
type Value interface {
	isValue()
	fmt.Stringer
}

// Tuple is an ordered sequence of values, read from a parenthesized form.
type Tuple []Value

func (Tuple) isValue() {}

// String renders the tuple the way it would appear in Lissp source, for
// diagnostics only; it is never fed back into the reader.
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.String()
	}

	return "(" + strings.Join(parts, " ") + ")"
}

// Text is host source text: an identifier, a control word (leading ':'), a
// qualified name (exactly one ".."), a module handle (trailing '.' with no
// qualification), or the rendered source of a string literal.
//
// Raw distinguishes text that came from a "..." string literal from text
// that came from a bare symbol. The reader consults Raw to skip
// auto-qualification inside templates (see pkg/reader/template.go); the
// compiler emits raw Text verbatim, while symbol Text may be rewritten
// (module handles and qualified names become import expressions).
type Text struct {
	content string
	raw     bool
}

// NewSymbolText builds Text for a bare (non-string-literal) symbol.
func NewSymbolText(content string) Text {
	return Text{content: content}
}

// NewRawText builds Text whose content is the already-rendered host source
// of a string literal.
func NewRawText(content string) Text {
	return Text{content: content, raw: true}
}

func (Text) isValue() {}

// String returns the underlying host source text.
func (t Text) String() string {
	return t.content
}

// IsRaw reports whether this Text originated from a string literal.
func (t Text) IsRaw() bool {
	return t.raw
}

// IsControlWord reports whether this text is a control word: one beginning
// with ':'. Control words are never qualified and are passed through
// verbatim wherever they appear in call or lambda tails.
func (t Text) IsControlWord() bool {
	return strings.HasPrefix(t.content, ":")
}

// IsQualified reports whether this text names something in another module:
// exactly one occurrence of "..".
func (t Text) IsQualified() bool {
	return strings.Count(t.content, "..") == 1
}

// IsModuleHandle reports whether this text is a bare module handle: it ends
// in '.' and carries no qualification.
func (t Text) IsModuleHandle() bool {
	return !t.IsQualified() && strings.HasSuffix(t.content, ".") && t.content != ".."
}

// SplitQualified splits qualified text into its module and attribute-chain
// parts. ok is false if the text is not qualified.
func (t Text) SplitQualified() (module string, attr string, ok bool) {
	if !t.IsQualified() {
		return "", "", false
	}

	i := strings.Index(t.content, "..")

	return t.content[:i], t.content[i+2:], true
}

// Obj carries an arbitrary host value through the pipeline unexamined: the
// result of a reader macro or `.#` evaluation that isn't itself Hissp.
type Obj struct {
	Data any
}

func (Obj) isValue() {}

func (o Obj) String() string {
	return fmt.Sprintf("#<%v>", o.Data)
}

// noneType is the sentinel Go type for the host's None/null literal.
type noneType struct{}

// None is the canonical Value representing the host's null/None literal.
var None Value = Obj{Data: noneType{}}

// IsNone reports whether v is the None sentinel.
func IsNone(v Value) bool {
	o, ok := v.(Obj)
	if !ok {
		return false
	}

	_, ok = o.Data.(noneType)

	return ok
}

// ellipsisType is the sentinel Go type for the host's "..." literal.
type ellipsisType struct{}

// Ellipsis is the canonical Value representing the host's "..." literal.
var Ellipsis Value = Obj{Data: ellipsisType{}}

// IsEllipsis reports whether v is the Ellipsis sentinel.
func IsEllipsis(v Value) bool {
	o, ok := v.(Obj)
	if !ok {
		return false
	}

	_, ok = o.Data.(ellipsisType)

	return ok
}
