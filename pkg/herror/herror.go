// Package herror defines the four error kinds the pipeline can raise —
// LexError, ReadError, CompileError, and MacroError — each carrying a
// Position so a caller (or a terminal) can point at the exact place the
// error happened.
//
// The shape follows the pack's own pkg/sexp.SyntaxError: a span into a
// source file plus a message, with the enclosing line fetched lazily for
// rendering. Position here is the flattened line/column projection of that
// span, since most callers just want to print "file:line:col: message".
package herror

import (
	"fmt"

	"github.com/hissp-io/hissp-go/pkg/util/source"
)

// Position identifies a point in a named (or anonymous) source.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	file := p.File
	if file == "" {
		file = "<anonymous>"
	}

	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
}

// PositionOf computes the Position of the start of span within file.
func PositionOf(file *source.File, span source.Span) Position {
	line := file.FindFirstEnclosingLine(span)
	column := span.Start() - line.Start() + 1

	return Position{
		File:   file.Filename(),
		Line:   line.Number(),
		Column: column,
	}
}

// LexError reports that no token scanner matched at the current position.
type LexError struct {
	Pos Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: lex error: %s", e.Pos, e.Msg)
}

// ReadError reports that the token stream could not be folded into a value
// tree: unbalanced brackets, a reader macro with no operand, and so on.
type ReadError struct {
	Pos Position
	Msg string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: read error: %s", e.Pos, e.Msg)
}

// CompileError reports that a value tree could not be lowered to host
// source text. Form is the offending form, rendered as part of the message
// by Render.
type CompileError struct {
	Pos  Position
	Msg  string
	Form fmt.Stringer
}

func (e *CompileError) Error() string {
	if e.Form == nil {
		return fmt.Sprintf("%s: compile error: %s", e.Pos, e.Msg)
	}

	return fmt.Sprintf("%s: compile error: %s\n%s", e.Pos, e.Msg, Render(e.Form.String(), 0))
}

// MacroError wraps a failure raised while expanding a macro invocation,
// recording the macro's qualified name and the unexpanded call form.
type MacroError struct {
	Pos           Position
	QualifiedName string
	Form          fmt.Stringer
	Cause         error
}

func (e *MacroError) Error() string {
	return fmt.Sprintf("%s: macro error in %s: %s\n%s", e.Pos, e.QualifiedName, e.Cause, Render(e.Form.String(), 0))
}

func (e *MacroError) Unwrap() error {
	return e.Cause
}
