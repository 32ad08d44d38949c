package compiler

import (
	"strings"

	"github.com/hissp-io/hissp-go/pkg/herror"
	"github.com/hissp-io/hissp-go/pkg/value"
)

// isMethodHead reports whether a tuple is a method call: a leading-'.'
// head with at least one following element (the receiver). Method calls
// are never macro invocations.
func isMethodHead(ht value.Text, tail value.Tuple) bool {
	content := ht.String()

	return strings.HasPrefix(content, ".") && content != ".." && len(tail) >= 1
}

// compileCall lowers a call form: a method call if the head is leading-'.'
// text, otherwise an ordinary call of the compiled callee.
func compileCall(form value.Tuple, opts Options) (string, error) {
	head := form[0]
	rest := value.Tuple(form[1:])

	if ht, ok := head.(value.Text); ok && isMethodHead(ht, rest) {
		name := strings.TrimPrefix(ht.String(), ".")

		receiver, err := compileForm(rest[0], opts)
		if err != nil {
			return "", err
		}

		args, err := compileArgList(rest[1:], opts)
		if err != nil {
			return "", err
		}

		return receiver + "." + name + "(" + args + ")", nil
	}

	callee, err := compileForm(head, opts)
	if err != nil {
		return "", err
	}

	args, err := compileArgList(rest, opts)
	if err != nil {
		return "", err
	}

	return callee + "(" + args + ")", nil
}

// compileArgList lowers a call's argument tail: singles up to an optional
// ':' control word, then slot/value pairs.
func compileArgList(args value.Tuple, opts Options) (string, error) {
	splitAt := len(args)

	for i, a := range args {
		if t, ok := a.(value.Text); ok && t.String() == value.ControlPairs {
			splitAt = i
			break
		}
	}

	parts := make([]string, 0, len(args))

	for _, a := range args[:splitAt] {
		s, err := compileForm(a, opts)
		if err != nil {
			return "", err
		}

		parts = append(parts, s)
	}

	if splitAt == len(args) {
		return strings.Join(parts, ", "), nil
	}

	pairs := args[splitAt+1:]
	if len(pairs)%2 != 0 {
		return "", &herror.CompileError{Msg: "call argument pairs must come in slot/value pairs", Form: args}
	}

	sawDoubleStar := false

	for i := 0; i < len(pairs); i += 2 {
		slot, val := pairs[i], pairs[i+1]

		slotText, ok := slot.(value.Text)
		if !ok {
			return "", &herror.CompileError{Msg: "call argument pair slot must be text", Form: args}
		}

		valSrc, err := compileForm(val, opts)
		if err != nil {
			return "", err
		}

		switch slotText.String() {
		case value.ControlOptional:
			parts = append(parts, valSrc)
		case value.ControlStar:
			if sawDoubleStar {
				return "", &herror.CompileError{Msg: "':*' argument may not follow ':**'", Form: args}
			}

			parts = append(parts, "*"+valSrc)
		case value.ControlDoubleStar:
			sawDoubleStar = true
			parts = append(parts, "**"+valSrc)
		default:
			parts = append(parts, slotText.String()+"="+valSrc)
		}
	}

	return strings.Join(parts, ", "), nil
}
