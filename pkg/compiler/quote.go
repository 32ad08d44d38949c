package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hissp-io/hissp-go/pkg/herror"
	"github.com/hissp-io/hissp-go/pkg/value"
)

// compileQuoteData recursively emits host source that evaluates to a value
// equal to x itself: the way `quote`'s sole argument is lowered as data
// rather than as code, and also how the template engine's generated code
// embeds its literal leaves. Unlike ordinary form compilation, Text here is
// always a plain string literal: under quote, text is data representing a
// future Hissp leaf, not a reference to compile as code.
func compileQuoteData(x value.Value) (string, error) {
	switch v := x.(type) {
	case value.Tuple:
		parts := make([]string, len(v))

		for i, e := range v {
			s, err := compileQuoteData(e)
			if err != nil {
				return "", err
			}

			parts[i] = s
		}

		joined := strings.Join(parts, ", ")
		if len(v) == 1 {
			joined += ","
		}

		return "(" + joined + ")", nil
	case value.Text:
		return strconv.Quote(v.String()), nil
	case value.Obj:
		if value.IsNone(v) {
			return "None", nil
		}

		if value.IsEllipsis(v) {
			return "Ellipsis", nil
		}

		s, err := emitAny(v.Data)
		if err != nil {
			return "", &herror.CompileError{Msg: "cannot quote opaque value: " + err.Error(), Form: x}
		}

		return s, nil
	default:
		return "", &herror.CompileError{Msg: fmt.Sprintf("unsupported quoted value %T", x), Form: x}
	}
}
