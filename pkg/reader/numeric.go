package reader

import (
	"regexp"
	"strconv"
	"strings"
)

// intPattern, floatPattern and imagPattern recognize the three numeric atom
// shapes the reader accepts, each allowing '_' as a digit-group separator.
var (
	intPattern   = regexp.MustCompile(`^[+-]?[0-9][0-9_]*$`)
	floatPattern = regexp.MustCompile(`^[+-]?(?:[0-9][0-9_]*)?\.[0-9][0-9_]*(?:[eE][+-]?[0-9]+)?$|^[+-]?[0-9][0-9_]*[eE][+-]?[0-9]+$`)
	imagPattern  = regexp.MustCompile(`^([+-]?(?:[0-9][0-9_]*(?:\.[0-9_]*)?|\.[0-9][0-9_]*)(?:[eE][+-]?[0-9]+)?)[jJ]$`)
)

// parseNumericLiteral attempts to read atom as an int, float64, or
// complex128, in that preference order, with '_' stripped as a separator.
// ok is false if atom isn't one of those shapes at all, so the caller can
// fall through to treating it as a symbol.
func parseNumericLiteral(atom string) (value any, ok bool) {
	if m := imagPattern.FindStringSubmatch(atom); m != nil {
		f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], "_", ""), 64)
		if err != nil {
			return nil, false
		}

		return complex(0, f), true
	}

	clean := strings.ReplaceAll(atom, "_", "")

	if intPattern.MatchString(atom) {
		if n, err := strconv.ParseInt(clean, 10, 64); err == nil {
			return int(n), true
		}

		return nil, false
	}

	if floatPattern.MatchString(atom) {
		if f, err := strconv.ParseFloat(clean, 64); err == nil {
			return f, true
		}
	}

	return nil, false
}
