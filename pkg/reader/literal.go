package reader

import (
	"fmt"
	"strings"
)

// parseHostLiteral interprets the text of a bracketed-atom token ("[...]"
// or "{...}") as a host-language literal: "[...]" is a sequence literal,
// "{...}" is a mapping literal built from alternating key/value elements.
// Elements are split on unescaped whitespace at bracket-nesting depth zero.
func parseHostLiteral(text string) (any, error) {
	if len(text) < 2 {
		return nil, fmt.Errorf("malformed bracketed literal %q", text)
	}

	open := text[0]
	body := text[1 : len(text)-1]
	parts := splitTopLevel(body)

	switch open {
	case '[':
		items := make([]any, 0, len(parts))

		for _, p := range parts {
			v, err := parseLiteralElement(p)
			if err != nil {
				return nil, err
			}

			items = append(items, v)
		}

		return items, nil
	case '{':
		if len(parts)%2 != 0 {
			return nil, fmt.Errorf("mapping literal %q has an odd number of elements", text)
		}

		m := make(map[any]any, len(parts)/2)

		for i := 0; i < len(parts); i += 2 {
			k, err := parseLiteralElement(parts[i])
			if err != nil {
				return nil, err
			}

			v, err := parseLiteralElement(parts[i+1])
			if err != nil {
				return nil, err
			}

			m[k] = v
		}

		return m, nil
	default:
		return nil, fmt.Errorf("unrecognized bracketed literal %q", text)
	}
}

// parseLiteralElement parses one element of a bracketed literal: a nested
// bracketed literal, a number, or (as a fallback) the bare unescaped text
// itself, treated as a string.
func parseLiteralElement(tok string) (any, error) {
	if len(tok) >= 2 && (tok[0] == '[' || tok[0] == '{') {
		return parseHostLiteral(tok)
	}

	unescaped := unescapeBackslashes(tok)

	if n, ok := parseNumericLiteral(unescaped); ok {
		return n, nil
	}

	return unescaped, nil
}

// splitTopLevel splits body on runs of unescaped whitespace, without
// splitting inside nested brackets.
func splitTopLevel(body string) []string {
	var parts []string

	var current strings.Builder

	depth := 0
	runes := []rune(body)

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case r == '\\' && i+1 < len(runes):
			current.WriteRune(r)
			current.WriteRune(runes[i+1])
			i++
		case r == '[' || r == '{':
			depth++
			current.WriteRune(r)
		case r == ']' || r == '}':
			depth--
			current.WriteRune(r)
		case depth == 0 && isWhitespaceRune(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	flush()

	return parts
}

func isWhitespaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// unescapeBackslashes drops the backslash from each backslash-escape pair,
// leaving the escaped character literal.
func unescapeBackslashes(s string) string {
	var out strings.Builder

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			out.WriteRune(runes[i+1])
			i++

			continue
		}

		out.WriteRune(runes[i])
	}

	return out.String()
}
