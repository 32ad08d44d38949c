package herror_test

import (
	"strings"
	"testing"

	"github.com/hissp-io/hissp-go/pkg/herror"
	"github.com/hissp-io/hissp-go/pkg/util/source"
)

func TestPositionOfFirstLine(t *testing.T) {
	file := source.NewSourceFile("foo.lissp", []byte("(foo\n bar)"))
	pos := herror.PositionOf(file, source.NewSpan(1, 4))

	if pos.Line != 1 || pos.Column != 2 {
		t.Fatalf("got %+v", pos)
	}
}

func TestPositionOfSecondLine(t *testing.T) {
	file := source.NewSourceFile("foo.lissp", []byte("(foo\n bar)"))
	pos := herror.PositionOf(file, source.NewSpan(6, 9))

	if pos.Line != 2 || pos.Column != 2 {
		t.Fatalf("got %+v", pos)
	}
}

func TestLexErrorMessage(t *testing.T) {
	err := &herror.LexError{Pos: herror.Position{File: "a.lissp", Line: 1, Column: 1}, Msg: "unexpected character"}

	if !strings.Contains(err.Error(), "unexpected character") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestMacroErrorUnwrap(t *testing.T) {
	cause := &herror.ReadError{Pos: herror.Position{Line: 1, Column: 1}, Msg: "bad"}
	err := &herror.MacroError{
		Pos:           herror.Position{Line: 1, Column: 1},
		QualifiedName: "pkg..mymacro",
		Form:          stringer("(mymacro 1)"),
		Cause:         cause,
	}

	if err.Unwrap() != cause {
		t.Fatalf("expected Unwrap to return the cause")
	}
}

type stringer string

func (s stringer) String() string { return string(s) }
