package hissp_test

import (
	"testing"

	"github.com/hissp-io/hissp-go/pkg/hissp"
	"github.com/hissp-io/hissp-go/pkg/util/assert"
	"github.com/hissp-io/hissp-go/pkg/value"
)

func readOneCompiled(t *testing.T, source, moduleName string, opts hissp.ReadAllOpts) string {
	t.Helper()

	forms, err := hissp.ReadAll(source, moduleName, opts)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	if len(forms) != 1 {
		t.Fatalf("expected exactly one form, got %d", len(forms))
	}

	out, err := hissp.Compile(forms[0], moduleName)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	return out
}

func TestPrintWithKeywordSeparator(t *testing.T) {
	out := readOneCompiled(t, `(print 1 2 3 : sep "-")`, "_", hissp.ReadAllOpts{})
	assert.Equal(t, `print(1, 2, 3, sep="-")`, out)
}

func TestLambdaIdentityAppliedToString(t *testing.T) {
	out := readOneCompiled(t, `((lambda (x) x) "hi")`, "_", hissp.ReadAllOpts{})
	assert.Equal(t, `(lambda x: x)("hi")`, out)
}

func TestQuotedSymbolMunges(t *testing.T) {
	forms, err := hissp.ReadAll(`'Also-a-symbol!`, "_", hissp.ReadAllOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tuple, ok := forms[0].(value.Tuple)
	if !ok || len(tuple) != 2 {
		t.Fatalf("expected (quote, text), got %#v", forms[0])
	}

	text, ok := tuple[1].(value.Text)
	if !ok {
		t.Fatalf("expected Text, got %#v", tuple[1])
	}

	assert.Equal(t, "AlsoQz_aQz_symbolQzBANG_", text.String())
}

// '.#' evaluates its operand at read time rather than emitting code for it.
func TestInjectEvaluatesAtReadTime(t *testing.T) {
	out := readOneCompiled(t, `.#3`, "_", hissp.ReadAllOpts{Evaluator: constEvaluator{3}})
	assert.Equal(t, "(3)", out)
}

type constEvaluator struct{ result any }

func (c constEvaluator) Eval(string) (any, error) { return c.result, nil }

// A macro receives unevaluated code, not a value, so tripling its argument
// compiles three independent invocations of the side-effecting subform
// rather than one value used three times.
func TestMacroReceivesCodeNotValue(t *testing.T) {
	ns := value.NewMacroNamespace()
	ns.Set("triple", func(tail value.Tuple) (value.Value, error) {
		// `(+ ,x ,x ,x) with x bound to the macro's sole argument.
		return value.Tuple{value.NewSymbolText("+"), tail[0], tail[0], tail[0]}, nil
	})

	forms, err := hissp.ReadAll(`(triple (loud 14))`, "mymod", hissp.ReadAllOpts{
		Namespaces: map[string]*value.MacroNamespace{"mymod": ns},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := hissp.Compile(forms[0], "mymod")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	assert.Equal(t, "# mymod..triple\n+(loud(14), loud(14), loud(14))", out)
}

func TestMungeDemungeRoundTrip(t *testing.T) {
	for _, name := range []string{"foo->bar", "*FOO*", "", "a b", "1+"} {
		assert.Equal(t, name, hissp.Demunge(hissp.Munge(name)), "round trip for %q", name)
	}
}

func TestReadAllStopsAtFirstErrorByDefault(t *testing.T) {
	_, err := hissp.ReadAll("(print 1) ,bad", "_", hissp.ReadAllOpts{})
	if err == nil {
		t.Fatalf("expected an error for an unquote outside any template")
	}
}

func TestReadAllContinuesOnErrorWhenRequested(t *testing.T) {
	// The stray ',' itself fails as a ReadError, but reading resumes right
	// after it: the following atom and the next top-level form both still
	// come through.
	forms, err := hissp.ReadAll("(print 1) ,bad (print 2)", "_", hissp.ReadAllOpts{ContinueOnError: true})
	if err == nil {
		t.Fatalf("expected the accumulated error to be non-nil")
	}

	if len(forms) != 3 {
		t.Fatalf("expected the two valid forms plus the stray atom after the error, got %d", len(forms))
	}
}
