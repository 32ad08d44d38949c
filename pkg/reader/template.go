package reader

import (
	"fmt"
	"strings"

	"github.com/hissp-io/hissp-go/pkg/value"
)

// identityParamName is the bound name in the fixed variadic-identity
// lambda templates expand tuples into: `(lambda (: :* _) _)`, i.e. Python's
// `lambda *_: _`.
const identityParamName = "_"

// gensymCache holds the one counter value an entire template evaluation
// shares, plus the per-name identifiers minted from it: every `$#name`
// occurrence in a single template, whatever name it uses, is stamped with
// the same suffix, drawn from the shared counter in gensym.go exactly once
// per `` ` `` the reader reads.
type gensymCache struct {
	suffix uint64
	ids    map[string]string
}

// expandTemplate implements the template-quote transform (a tuple is
// turned into code that reconstructs it, with holes left where ,/,@
// appeared, and unqualified symbols auto-qualified). It is called once per
// `` ` `` token the reader reads; each call draws one fresh suffix so every
// `$#name` in that template, however many distinct names it uses, shares
// it, while separate template reads never collide (the shared counter in
// gensym.go only ever grows).
func (r *Reader) expandTemplate(x value.Value) value.Value {
	cache := &gensymCache{suffix: nextGensymCount(), ids: map[string]string{}}
	return r.expandTemplateWith(x, cache)
}

func (r *Reader) expandTemplateWith(x value.Value, cache *gensymCache) value.Value {
	switch v := x.(type) {
	case value.Tuple:
		if y, ok := unquoteOperand(v); ok {
			return y
		}

		return r.expandTuple(v, cache)
	case value.Text:
		return r.expandText(v, cache)
	default:
		return quoteForm(x)
	}
}

// unquoteOperand reports whether v is `(unquote, y)`, returning y.
func unquoteOperand(v value.Tuple) (value.Value, bool) {
	if len(v) == 2 {
		if t, ok := v[0].(value.Text); ok && t.String() == "unquote" {
			return v[1], true
		}
	}

	return nil, false
}

// spliceOperand reports whether v is `(splice-unquote, y)`, returning y.
func spliceOperand(v value.Value) (value.Value, bool) {
	t, ok := v.(value.Tuple)
	if !ok || len(t) != 2 {
		return nil, false
	}

	head, ok := t[0].(value.Text)
	if !ok || head.String() != "splice-unquote" {
		return nil, false
	}

	return t[1], true
}

// expandTuple builds the call to the fixed variadic-identity helper that
// reconstructs v at evaluation time: singles up to the first splice, then
// (once any splice appears) a `:` pairs section using `:?` to pass
// ordinary elements through positionally and `:*` to unpack splices.
func (r *Reader) expandTuple(v value.Tuple, cache *gensymCache) value.Value {
	callee := value.Tuple{
		value.NewSymbolText("lambda"),
		value.Tuple{value.NewSymbolText(":"), value.NewSymbolText(":*"), value.NewSymbolText(identityParamName)},
		value.NewSymbolText(identityParamName),
	}

	call := value.Tuple{callee}

	inPairs := false

	for _, elem := range v {
		if y, isSplice := spliceOperand(elem); isSplice {
			if !inPairs {
				call = append(call, value.NewSymbolText(value.ControlPairs))
				inPairs = true
			}

			call = append(call, value.NewSymbolText(value.ControlStar), r.expandTemplateWith(y, cache))

			continue
		}

		transformed := r.expandTemplateWith(elem, cache)

		if !inPairs {
			call = append(call, transformed)
			continue
		}

		call = append(call, value.NewSymbolText(value.ControlOptional), transformed)
	}

	return call
}

// expandText resolves one text leaf per the template engine's text rules.
func (r *Reader) expandText(t value.Text, cache *gensymCache) value.Value {
	switch {
	case t.IsRaw():
		return quoteForm(t)
	case t.IsModuleHandle(), t.IsQualified(), t.IsControlWord():
		return quoteForm(t)
	case t.String() == "quote" || t.String() == "lambda":
		return quoteForm(t)
	case strings.HasPrefix(t.String(), "$#"):
		return quoteForm(value.NewSymbolText(r.templateGensym(t.String()[2:], cache)))
	default:
		return quoteForm(value.NewSymbolText(r.autoQualify(t.String())))
	}
}

// templateGensym returns the fresh identifier bound to name for the
// template evaluation cache belongs to, minting one the first time name is
// seen and reusing it for every later occurrence in the same template. All
// names in one template share cache.suffix, so `` `($#x $#y)` `` mints both
// off the same counter value, distinguished only by name.
func (r *Reader) templateGensym(name string, cache *gensymCache) string {
	if id, ok := cache.ids[name]; ok {
		return id
	}

	id := fmt.Sprintf("_%sQzNo%d_", name, cache.suffix)
	cache.ids[name] = id

	return id
}

// autoQualify implements the QzMaybe_ deferred-resolution marker: s
// resolves to a builtin reference if the read-time builtins predicate
// recognizes it, otherwise to a same-module reference whose final
// resolution (macro vs. global) is deferred to compile time.
func (r *Reader) autoQualify(s string) string {
	if r.isBuiltin(s) {
		return "builtins.." + s
	}

	return r.opts.ModuleName + "..QzMaybe_." + s
}

// quoteForm wraps x in `(quote, x)`, the form every non-hole template leaf
// compiles to: code that evaluates to x itself, unchanged.
func quoteForm(x value.Value) value.Value {
	return value.Tuple{value.NewSymbolText("quote"), x}
}
