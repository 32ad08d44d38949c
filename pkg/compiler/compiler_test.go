package compiler_test

import (
	"strings"
	"testing"

	"github.com/hissp-io/hissp-go/pkg/compiler"
	"github.com/hissp-io/hissp-go/pkg/util/assert"
	"github.com/hissp-io/hissp-go/pkg/value"
)

func sym(s string) value.Text { return value.NewSymbolText(s) }

func compile(t *testing.T, form value.Value, opts compiler.Options) string {
	t.Helper()

	out, err := compiler.CompileForm(form, opts)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	return out
}

func TestCompileEmptyTuple(t *testing.T) {
	out := compile(t, value.Tuple{}, compiler.Options{ModuleName: "_"})
	assert.Equal(t, "()", out)
}

func TestCompileCallWithKeywordArg(t *testing.T) {
	// (print 1 2 3 : sep "-")
	form := value.Tuple{
		sym("print"), value.Obj{Data: int(1)}, value.Obj{Data: int(2)}, value.Obj{Data: int(3)},
		sym(value.ControlPairs), sym("sep"), value.NewRawText(`"-"`),
	}

	out := compile(t, form, compiler.Options{ModuleName: "_"})
	assert.Equal(t, `print(1, 2, 3, sep="-")`, out)
}

func TestCompileLambdaIdentity(t *testing.T) {
	// (lambda (x) x) applied to "hi".
	lambda := value.Tuple{sym("lambda"), value.Tuple{sym("x")}, sym("x")}
	call := value.Tuple{lambda, value.NewRawText(`"hi"`)}

	out := compile(t, call, compiler.Options{ModuleName: "_"})
	assert.Equal(t, `(lambda x: x)("hi")`, out)
}

func TestCompileLambdaEmptyBody(t *testing.T) {
	lambda := value.Tuple{sym("lambda"), value.Tuple{}}
	out := compile(t, lambda, compiler.Options{ModuleName: "_"})
	assert.Equal(t, "(lambda : ())", out)
}

func TestCompileLambdaMultiBodySequences(t *testing.T) {
	lambda := value.Tuple{sym("lambda"), value.Tuple{}, value.Obj{Data: int(1)}, value.Obj{Data: int(2)}}
	out := compile(t, lambda, compiler.Options{ModuleName: "_"})
	assert.Equal(t, "(lambda : (1, 2)[-1])", out)
}

func TestCompileLambdaStarAndDoubleStarParams(t *testing.T) {
	params := value.Tuple{
		sym("a"),
		sym(value.ControlPairs),
		sym(value.ControlStar), sym("args"),
		sym(value.ControlDoubleStar), sym("kwargs"),
	}
	lambda := value.Tuple{sym("lambda"), params, sym("a")}

	out := compile(t, lambda, compiler.Options{ModuleName: "_"})
	assert.Equal(t, "(lambda a, *args, **kwargs: a)", out)
}

func TestCompileLambdaPositionalOnlyAndKeywordOnly(t *testing.T) {
	// (lambda (a : :/ :? b :? :* :? c :?) a) declares a positional-only,
	// b with no default padded positionally, then a bare '*' separator
	// before keyword-only c with no default.
	params := value.Tuple{
		sym("a"),
		sym(value.ControlPairs),
		sym(value.ControlSlash), sym(value.ControlOptional),
		sym("b"), sym(value.ControlOptional),
		sym(value.ControlStar), sym(value.ControlOptional),
		sym("c"), sym(value.ControlOptional),
	}
	lambda := value.Tuple{sym("lambda"), params, sym("a")}

	out := compile(t, lambda, compiler.Options{ModuleName: "_"})
	if !strings.Contains(out, "/") || !strings.Contains(out, "*") {
		t.Fatalf("expected positional-only '/' and keyword-only '*' separators in %q", out)
	}
}

func TestCompileMethodCall(t *testing.T) {
	form := value.Tuple{sym(".upper"), sym("s")}
	out := compile(t, form, compiler.Options{ModuleName: "_"})
	assert.Equal(t, "s.upper()", out)
}

func TestCompileQuoteDataRecursive(t *testing.T) {
	form := value.Tuple{sym("quote"), value.Tuple{sym("a"), sym("b")}}
	out := compile(t, form, compiler.Options{ModuleName: "_"})
	assert.Equal(t, `("a", "b")`, out)
}

func TestCompileQuoteSingleElementTupleTrailingComma(t *testing.T) {
	form := value.Tuple{sym("quote"), value.Tuple{sym("a")}}
	out := compile(t, form, compiler.Options{ModuleName: "_"})
	assert.Equal(t, `("a",)`, out)
}

func TestCompileMacroInvocationExpandsAndAnnotates(t *testing.T) {
	ns := value.NewMacroNamespace()
	ns.Set("triple", func(tail value.Tuple) (value.Value, error) {
		return value.Tuple{sym("print"), tail[0], tail[0], tail[0]}, nil
	})

	form := value.Tuple{sym("triple"), value.Obj{Data: int(5)}}
	out := compile(t, form, compiler.Options{
		ModuleName: "mymod",
		Namespaces: map[string]*value.MacroNamespace{"mymod": ns},
	})

	if !strings.HasPrefix(out, "# mymod..triple\n") {
		t.Fatalf("expected a comment line naming the expanded macro, got %q", out)
	}

	assert.Equal(t, "# mymod..triple\nprint(5, 5, 5)", out)
}

func TestCompileQualifiedText(t *testing.T) {
	out := compile(t, sym("pkg.mod..attr"), compiler.Options{ModuleName: "_"})
	assert.Equal(t, `__import__("pkg.mod").attr`, out)
}

func TestCompileModuleHandle(t *testing.T) {
	out := compile(t, sym("pkg.mod."), compiler.Options{ModuleName: "_"})
	assert.Equal(t, `__import__("pkg.mod")`, out)
}

func TestCompileNegativeLiteralIsParenthesized(t *testing.T) {
	// Nested inside a call, a negative literal is parenthesized exactly
	// once by parenIfNegative so it can't be misread as unary-minus on the
	// preceding argument.
	form := value.Tuple{sym("f"), value.Obj{Data: int(-1)}}
	out := compile(t, form, compiler.Options{ModuleName: "_"})
	assert.Equal(t, "f((-1))", out)
}

func TestCompileBareAtomAtTopLevelIsParenthesized(t *testing.T) {
	out := compile(t, value.Obj{Data: int(5)}, compiler.Options{ModuleName: "_"})
	assert.Equal(t, "(5)", out)
}

func TestCompileOddPairsIsCompileError(t *testing.T) {
	form := value.Tuple{sym("print"), sym(value.ControlPairs), sym("sep")}
	_, err := compiler.CompileForm(form, compiler.Options{ModuleName: "_"})
	if err == nil {
		t.Fatalf("expected a CompileError for an odd pair count")
	}
}

func TestCompileStarAfterDoubleStarIsCompileError(t *testing.T) {
	form := value.Tuple{
		sym("f"), sym(value.ControlPairs),
		sym(value.ControlDoubleStar), sym("kw"),
		sym(value.ControlStar), sym("args"),
	}
	_, err := compiler.CompileForm(form, compiler.Options{ModuleName: "_"})
	if err == nil {
		t.Fatalf("expected a CompileError for ':*' following ':**'")
	}
}
