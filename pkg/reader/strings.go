package reader

import (
	"errors"
	"strings"
)

var errUnterminatedEscape = errors.New("trailing backslash in hash string")

// hostEscapes maps the backslash escape letters a HASHxSTRING body may
// contain to their literal rune, mirroring the common subset of escapes
// host string literals recognize.
var hostEscapes = map[rune]rune{
	'n': '\n', 't': '\t', 'r': '\r', '\\': '\\', '"': '"', '\'': '\'', '0': 0,
}

// unescapeHostString interprets backslash escapes inside a HASHxSTRING
// body (the text between its delimiting quotes, with the leading '#'
// already stripped), returning the literal text it denotes.
func unescapeHostString(body string) (string, error) {
	var out strings.Builder

	runes := []rune(body)

	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			out.WriteRune(runes[i])
			continue
		}

		if i+1 >= len(runes) {
			return "", errUnterminatedEscape
		}

		esc, ok := hostEscapes[runes[i+1]]
		if !ok {
			// Unrecognized escape: keep the backslash, it's meaningful to
			// the host (e.g. a regex literal).
			out.WriteRune(runes[i])
			out.WriteRune(runes[i+1])
			i++

			continue
		}

		out.WriteRune(esc)
		i++
	}

	return out.String(), nil
}
