package reader

import (
	"errors"
	"io"

	"github.com/hissp-io/hissp-go/pkg/herror"
	"github.com/hissp-io/hissp-go/pkg/value"
)

// errUnexpectedClose signals that readForm consumed a CLOSE token. It is a
// structural signal meaningful only to readTuple (which stops there) and to
// the top-level reader loop (which turns a stray one into a ReadError); it
// never escapes to a caller of the public API.
var errUnexpectedClose = errors.New("unexpected ')'")

// errEOF aliases io.EOF as the "no more forms" signal from readForm,
// matching the convention Go iterators use for natural exhaustion.
var errEOF = io.EOF

// readRequired wraps readForm for reader-macro operands: every built-in
// reader macro requires an operand, so running out of input or hitting a
// stray ')' there is always a genuine ReadError, never the natural
// exhaustion a top-level caller expects.
func (r *Reader) readRequired(context string) (value.Value, error) {
	r.recursionDepth++
	defer func() { r.recursionDepth-- }()

	if r.recursionDepth > maxRecursionDepth {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "maximum nesting depth exceeded"}
	}

	v, err := r.readForm()

	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, errEOF):
		return nil, &herror.ReadError{Pos: r.position(), Msg: "unexpected end of input after " + context}
	case errors.Is(err, errUnexpectedClose):
		return nil, &herror.ReadError{Pos: r.position(), Msg: "unexpected ')' after " + context}
	default:
		return nil, err
	}
}
