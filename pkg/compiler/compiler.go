// Package compiler lowers Hissp value trees (pkg/value) to host source
// text, one top-level form at a time, following go-corset's own
// pkg/corset/compiler.go shape: a dispatch on the form's head, special
// forms recognized before any namespace lookup, everything else falling
// through to a generic call/attribute lowering.
package compiler

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hissp-io/hissp-go/pkg/herror"
	"github.com/hissp-io/hissp-go/pkg/value"
)

// Options configures compilation: the current module (for macro-namespace
// lookup and text qualification) and the set of per-module macro
// namespaces macro invocations resolve against.
type Options struct {
	ModuleName string
	Namespaces map[string]*value.MacroNamespace
}

// CompileForm lowers one top-level form to host source text. A bare atom
// (an Obj with no enclosing call or tuple syntax of its own) is
// parenthesized here, since a top-level one standing alone could otherwise
// be misread as a continuation of whatever source precedes it (e.g. a
// literal negative number read as unary-minus). Nested atoms sit inside an
// enclosing call's or tuple's own parentheses; of those, only a negative
// literal is parenthesized again, by parenIfNegative in compileForm.
func CompileForm(form value.Value, opts Options) (string, error) {
	if opts.Namespaces == nil {
		opts.Namespaces = map[string]*value.MacroNamespace{}
	}

	src, err := compileForm(form, opts)
	if err != nil {
		return "", err
	}

	if _, ok := form.(value.Obj); ok {
		return "(" + src + ")", nil
	}

	return src, nil
}

func compileForm(form value.Value, opts Options) (string, error) {
	switch v := form.(type) {
	case value.Tuple:
		return compileTuple(v, opts)
	case value.Text:
		return emitTextExpr(v), nil
	case value.Obj:
		if value.IsNone(v) {
			return "None", nil
		}

		if value.IsEllipsis(v) {
			return "Ellipsis", nil
		}

		s, err := emitAny(v.Data)
		if err != nil {
			return "", &herror.CompileError{Msg: "cannot compile opaque value: " + err.Error(), Form: form}
		}

		return parenIfNegative(s), nil
	default:
		return "", &herror.CompileError{Msg: fmt.Sprintf("unsupported form %T", form), Form: form}
	}
}

// compileTuple dispatches a tuple form: quote and lambda first (never
// overridable), then macro lookup (skipped entirely for method-syntax
// heads), then an ordinary call.
func compileTuple(v value.Tuple, opts Options) (string, error) {
	if len(v) == 0 {
		return "()", nil
	}

	head := v[0]
	tail := value.Tuple(v[1:])

	if ht, ok := head.(value.Text); ok {
		switch ht.String() {
		case "quote":
			if len(tail) != 1 {
				return "", &herror.CompileError{Msg: "quote requires exactly one argument", Form: v}
			}

			return compileQuoteData(tail[0])
		case "lambda":
			return compileLambda(tail, opts)
		}

		if !isMethodHead(ht, tail) {
			if macro, qualifiedName, ok := resolveMacro(ht, opts); ok {
				log.Debugf("expanding macro %s", qualifiedName)

				expansion, err := macro(tail)
				if err != nil {
					return "", &herror.MacroError{QualifiedName: qualifiedName, Form: v, Cause: err}
				}

				body, err := compileForm(expansion, opts)
				if err != nil {
					return "", err
				}

				return "# " + qualifiedName + "\n" + body, nil
			}
		}
	}

	return compileCall(v, opts)
}

// emitTextExpr lowers a text form: raw (string literal) text is emitted
// verbatim since it is already valid host source; a control word is
// emitted as a host string literal of its own text; a module handle becomes
// an import expression; a qualified text becomes an import-then-attribute
// chain, with a deferred QzMaybe_ marker (left by the template engine's
// auto-qualification) resolved down to the plain attribute name — the
// macro-vs-global ambiguity that marker encodes only matters at call-head
// position (see resolveMacro), and collapses to the same source either way
// when the text is just a value reference.
func emitTextExpr(t value.Text) string {
	if t.IsRaw() {
		return t.String()
	}

	if t.IsControlWord() {
		return fmt.Sprintf("%q", t.String())
	}

	if t.IsModuleHandle() {
		module := strings.TrimSuffix(t.String(), ".")
		return fmt.Sprintf("%s(%q)", runtimeImportName, module)
	}

	if t.IsQualified() {
		module, attr, _ := t.SplitQualified()
		attr = strings.TrimPrefix(attr, "QzMaybe_.")

		return fmt.Sprintf("%s(%q).%s", runtimeImportName, module, attr)
	}

	return t.String()
}
