package compiler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// emitObjLiteral renders data as a host literal expression for every Go
// type the reader's numeric and bracketed-atom parsers
// (pkg/reader/numeric.go, pkg/reader/literal.go) can produce. ok is false
// for anything else, so the caller falls back to opaque emission.
func emitObjLiteral(data any) (string, bool) {
	switch v := data.(type) {
	case bool:
		if v {
			return "True", true
		}

		return "False", true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case complex128:
		re := strconv.FormatFloat(real(v), 'g', -1, 64)
		im := strconv.FormatFloat(imag(v), 'g', -1, 64)

		return fmt.Sprintf("complex(%s, %s)", re, im), true
	case string:
		return strconv.Quote(v), true
	case []byte:
		return "b" + strconv.Quote(string(v)), true
	case []any:
		return emitSequenceLiteral(v)
	case map[any]any:
		return emitMappingLiteral(v)
	default:
		return "", false
	}
}

func emitSequenceLiteral(items []any) (string, bool) {
	parts := make([]string, len(items))

	for i, e := range items {
		s, err := emitAny(e)
		if err != nil {
			return "", false
		}

		parts[i] = s
	}

	return "[" + strings.Join(parts, ", ") + "]", true
}

// emitMappingLiteral renders a mapping literal with entries ordered by
// their keys' printed form, since map iteration order is otherwise random
// and the compiler must be deterministic.
func emitMappingLiteral(m map[any]any) (string, bool) {
	keysByRepr := make(map[string]any, len(m))
	reprs := make([]string, 0, len(m))

	for k := range m {
		r := fmt.Sprintf("%v", k)
		keysByRepr[r] = k
		reprs = append(reprs, r)
	}

	sort.Strings(reprs)

	parts := make([]string, 0, len(m))

	for _, r := range reprs {
		k := keysByRepr[r]

		ks, err := emitAny(k)
		if err != nil {
			return "", false
		}

		vs, err := emitAny(m[k])
		if err != nil {
			return "", false
		}

		parts = append(parts, ks+": "+vs)
	}

	return "{" + strings.Join(parts, ", ") + "}", true
}

// emitAny emits data as a literal where possible, falling back to opaque
// (gob-based) emission, repr comment included, for anything with no literal
// form.
func emitAny(data any) (string, error) {
	if s, ok := emitObjLiteral(data); ok {
		return s, nil
	}

	return encodeOpaque(data)
}

// parenIfNegative wraps a rendered literal in parentheses if it begins
// with '-', guarding against it being misread as a unary-minus prefix of
// whatever source follows it.
func parenIfNegative(s string) string {
	if strings.HasPrefix(s, "-") {
		return "(" + s + ")"
	}

	return s
}
