package compiler

import (
	"fmt"
	"strings"

	"github.com/hissp-io/hissp-go/pkg/herror"
	"github.com/hissp-io/hissp-go/pkg/value"
)

// compileLambda lowers `(lambda, params, body...)`: params is parsed
// against the singles/pairs grammar and rendered as a host parameter list,
// then the body is lowered per the zero/one/many-expression rule.
func compileLambda(tail value.Tuple, opts Options) (string, error) {
	if len(tail) < 1 {
		return "", &herror.CompileError{Msg: "lambda requires a parameter list", Form: tail}
	}

	params, ok := tail[0].(value.Tuple)
	if !ok {
		return "", &herror.CompileError{Msg: "lambda parameter list must be a tuple", Form: tail}
	}

	paramSrc, err := compileParams(params, opts)
	if err != nil {
		return "", err
	}

	bodySrc, err := compileBody(tail[1:], opts)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("(lambda %s: %s)", paramSrc, bodySrc), nil
}

// compileParams implements the grammar:
//
//	params   := singles (: pairs)? | : pairs
//	singles  := name*
//	pairs    := (slot value)*
//	slot     := name | :? | :* | :** | :/
func compileParams(params value.Tuple, opts Options) (string, error) {
	var parts []string

	i := 0
	placeholders := 0

	for i < len(params) {
		if t, ok := params[i].(value.Text); ok && t.String() == value.ControlPairs {
			break
		}

		name, ok := params[i].(value.Text)
		if !ok {
			return "", &herror.CompileError{Msg: "lambda parameter name must be text", Form: params}
		}

		parts = append(parts, name.String())
		i++
	}

	if i == len(params) {
		return strings.Join(parts, ", "), nil
	}

	i++ // consume ':'

	if (len(params)-i)%2 != 0 {
		return "", &herror.CompileError{Msg: "lambda parameter pairs must come in slot/value pairs", Form: params}
	}

	for ; i < len(params); i += 2 {
		slot, val := params[i], params[i+1]

		slotText, ok := slot.(value.Text)
		if !ok {
			return "", &herror.CompileError{Msg: "lambda parameter slot must be text", Form: params}
		}

		isBarePlaceholder := func() bool {
			vt, ok := val.(value.Text)
			return ok && vt.String() == value.ControlOptional
		}

		switch slotText.String() {
		case value.ControlOptional:
			placeholders++
			name := fmt.Sprintf("_hissp_x%d", placeholders)

			if isBarePlaceholder() {
				parts = append(parts, name)
				continue
			}

			defSrc, err := compileForm(val, opts)
			if err != nil {
				return "", err
			}

			parts = append(parts, name+"="+defSrc)
		case value.ControlStar:
			if isBarePlaceholder() {
				parts = append(parts, "*")
				continue
			}

			nameText, ok := val.(value.Text)
			if !ok {
				return "", &herror.CompileError{Msg: "':*' parameter name must be text", Form: params}
			}

			parts = append(parts, "*"+nameText.String())
		case value.ControlDoubleStar:
			nameText, ok := val.(value.Text)
			if !ok {
				return "", &herror.CompileError{Msg: "':**' parameter name must be text", Form: params}
			}

			parts = append(parts, "**"+nameText.String())
		case value.ControlSlash:
			if !isBarePlaceholder() {
				return "", &herror.CompileError{Msg: "':/' must be paired with ':?'", Form: params}
			}

			parts = append(parts, "/")
		default:
			if isBarePlaceholder() {
				parts = append(parts, slotText.String())
				continue
			}

			defSrc, err := compileForm(val, opts)
			if err != nil {
				return "", err
			}

			parts = append(parts, slotText.String()+"="+defSrc)
		}
	}

	return strings.Join(parts, ", "), nil
}

// compileBody lowers a lambda body: empty compiles to the empty-tuple
// literal, one expression compiles directly, more than one is sequenced as
// a tuple whose last element is the lambda's value.
func compileBody(body value.Tuple, opts Options) (string, error) {
	switch len(body) {
	case 0:
		return "()", nil
	case 1:
		return compileForm(body[0], opts)
	default:
		parts := make([]string, len(body))

		for i, e := range body {
			s, err := compileForm(e, opts)
			if err != nil {
				return "", err
			}

			parts[i] = s
		}

		return "(" + strings.Join(parts, ", ") + ")[-1]", nil
	}
}
