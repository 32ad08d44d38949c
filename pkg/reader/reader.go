// Package reader folds a Lissp token stream into Hissp value trees,
// dispatching the built-in reader macros (quote, template, unquote,
// splice-unquote, discard, inject, gensym, and named `<name>#` macros) and
// owning the process-wide gensym counter and per-read recursion guard.
//
// The recursive-descent shape — one readForm doing a big switch on the
// driving token's kind, with a small sentinel for "hit a stray close
// paren" — mirrors go-corset's own hand-rolled S-expression parser: no
// parser-generator, no backtracking, just a loop and a switch.
package reader

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hissp-io/hissp-go/pkg/herror"
	"github.com/hissp-io/hissp-go/pkg/lex"
	"github.com/hissp-io/hissp-go/pkg/munge"
	"github.com/hissp-io/hissp-go/pkg/util/source"
	"github.com/hissp-io/hissp-go/pkg/value"
)

// maxRecursionDepth bounds reader-macro composition (e.g. `'''x`) so a
// pathological input fails with a ReadError instead of overflowing the
// goroutine stack.
const maxRecursionDepth = 256

// Evaluator is the injected host-code evaluator `.#` relies on. The host
// language's evaluator is explicitly an external collaborator (see the
// pipeline's scope), so the reader never embeds one itself.
type Evaluator interface {
	// Eval compiles host source text and returns the value it evaluates
	// to.
	Eval(hostSource string) (any, error)
}

// Options configures a Reader.
type Options struct {
	// ModuleName is the current module, used for template
	// auto-qualification and unqualified macro-namespace lookup.
	ModuleName string
	// Namespaces maps module name to that module's macro namespace. Both
	// compile-time macro lookup and read-time `<name>#` lookup share these
	// namespaces (a reader macro is simply a macro whose munged name ends
	// in the munged image of '#').
	Namespaces map[string]*value.MacroNamespace
	// Evaluator backs the `.#` inject reader macro. If nil, `.#` fails
	// with a ReadError.
	Evaluator Evaluator
	// IsBuiltin overrides the default builtins predicate used by the
	// template engine's auto-qualification (see builtins.go).
	IsBuiltin func(string) bool
	// File attaches source positions to errors; may be left nil for
	// anonymous input.
	File *source.File
}

// Reader reads successive Hissp forms from one source string.
type Reader struct {
	src    []rune
	tokens []lex.Token
	pos    int
	opts   Options

	templateDepth  int
	recursionDepth int
	pendingExtras  []value.Value
}

// New tokenizes source and returns a Reader positioned at its start.
func New(src string, opts Options) (*Reader, error) {
	runes := []rune(src)

	tokens, err := lex.Tokenize(runes, opts.File)
	if err != nil {
		return nil, err
	}

	if opts.Namespaces == nil {
		opts.Namespaces = map[string]*value.MacroNamespace{}
	}

	return &Reader{src: runes, tokens: tokens, opts: opts}, nil
}

// ReadAll reads every top-level form in the source, in order.
func ReadAll(src string, opts Options) ([]value.Value, error) {
	r, err := New(src, opts)
	if err != nil {
		return nil, err
	}

	var forms []value.Value

	for {
		v, err := r.Read()
		if err == errEOF {
			return forms, nil
		}

		if err != nil {
			return forms, err
		}

		forms = append(forms, v)
	}
}

// Read reads the next top-level form, or returns errEOF once the source is
// exhausted.
func (r *Reader) Read() (value.Value, error) {
	v, err := r.readForm()
	if err == errUnexpectedClose {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "unexpected ')'"}
	}

	return v, err
}

// text returns the source text spanned by tok.
func (r *Reader) text(tok lex.Token) string {
	return string(r.src[tok.Span.Start():tok.Span.End()])
}

// position reports the current read position, for error messages.
func (r *Reader) position() herror.Position {
	span := source.NewSpan(0, 0)
	if r.pos > 0 && r.pos-1 < len(r.tokens) {
		span = r.tokens[r.pos-1].Span
	}

	if r.opts.File != nil {
		return herror.PositionOf(r.opts.File, span)
	}

	return herror.Position{Line: 1, Column: span.Start() + 1}
}

// nextSignificant returns the next token that isn't whitespace or a
// comment, advancing past it. ok is false once only ENDOFFILE remains.
func (r *Reader) nextSignificant() (lex.Token, bool) {
	for r.pos < len(r.tokens) {
		tok := r.tokens[r.pos]
		r.pos++

		switch tok.Kind {
		case lex.WHITESPACE, lex.COMMENT:
			continue
		case lex.ENDOFFILE:
			return tok, false
		default:
			return tok, true
		}
	}

	return lex.Token{Kind: lex.ENDOFFILE}, false
}

// readForm reads exactly one value, or errEOF/errUnexpectedClose as the
// structural signals described in errors.go.
func (r *Reader) readForm() (value.Value, error) {
	for {
		tok, ok := r.nextSignificant()
		if !ok {
			return nil, errEOF
		}

		switch tok.Kind {
		case lex.CLOSE:
			return nil, errUnexpectedClose
		case lex.OPEN:
			return r.readTuple()
		case lex.ATOM:
			return r.readAtom(tok)
		case lex.CONTROL:
			// Control words never undergo identifier munging: the
			// colon-prefixed text is yielded unchanged, not escaped.
			return value.NewSymbolText(r.text(tok)), nil
		case lex.RAWxSTRING:
			return r.readRawString(tok), nil
		case lex.HASHxSTRING:
			return r.readHashString(tok)
		case lex.QUOTE:
			return r.readQuote()
		case lex.TEMPLATE:
			return r.readTemplate()
		case lex.UNQUOTE:
			return r.readUnquote("unquote")
		case lex.SPLICE:
			return r.readUnquote("splice-unquote")
		case lex.DISCARD:
			if _, err := r.readRequired("'_#'"); err != nil {
				return nil, err
			}

			continue
		case lex.INJECT:
			return r.readInject()
		case lex.GENSYM:
			return r.readGensymText()
		case lex.EXTRA:
			v, err := r.readRequired("'!'")
			if err != nil {
				return nil, err
			}

			r.pendingExtras = append(r.pendingExtras, v)

			continue
		case lex.MACRO:
			return r.readNamedMacro(tok)
		default:
			return nil, &herror.ReadError{Pos: r.position(), Msg: "unexpected " + lex.KindName(tok.Kind)}
		}
	}
}

// readTuple reads tuple elements until a matching CLOSE.
func (r *Reader) readTuple() (value.Value, error) {
	r.recursionDepth++
	defer func() { r.recursionDepth-- }()

	if r.recursionDepth > maxRecursionDepth {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "maximum nesting depth exceeded"}
	}

	var elems value.Tuple

	for {
		v, err := r.readForm()

		switch {
		case err == errUnexpectedClose:
			return elems, nil
		case err == errEOF:
			return nil, &herror.ReadError{Pos: r.position(), Msg: "unbalanced '(': missing ')'"}
		case err != nil:
			return nil, err
		}

		elems = append(elems, v)
	}
}

func (r *Reader) readAtom(tok lex.Token) (value.Value, error) {
	text := r.text(tok)

	if n, ok := parseNumericLiteral(text); ok {
		return value.Obj{Data: n}, nil
	}

	switch text {
	case "True":
		return value.Obj{Data: true}, nil
	case "False":
		return value.Obj{Data: false}, nil
	case "None":
		return value.None, nil
	case "...":
		return value.Ellipsis, nil
	}

	if len(text) >= 2 && (text[0] == '[' || text[0] == '{') {
		literal, err := parseHostLiteral(text)
		if err != nil {
			return nil, &herror.ReadError{Pos: r.position(), Msg: err.Error()}
		}

		return value.Obj{Data: literal}, nil
	}

	return value.NewSymbolText(mungeDotted(text)), nil
}

// mungeDotted munges a dotted name one '.'-delimited segment at a time,
// leaving the dots themselves (including empty segments from a leading,
// trailing, or doubled '.') exactly where they were — so it handles plain
// symbols, module handles, and qualified texts uniformly.
func mungeDotted(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}

		parts[i] = munge.Munge(p)
	}

	return strings.Join(parts, ".")
}

func (r *Reader) readQuote() (value.Value, error) {
	v, err := r.readRequired("'\\''")
	if err != nil {
		return nil, err
	}

	return value.Tuple{value.NewSymbolText("quote"), v}, nil
}

func (r *Reader) readTemplate() (value.Value, error) {
	r.templateDepth++

	v, err := r.readRequired("'`'")

	r.templateDepth--

	if err != nil {
		return nil, err
	}

	log.Debugf("expanding template at %s", r.position())

	return r.expandTemplate(v), nil
}

func (r *Reader) readUnquote(head string) (value.Value, error) {
	if r.templateDepth == 0 {
		return nil, &herror.ReadError{Pos: r.position(), Msg: head + " used outside a template"}
	}

	v, err := r.readRequired("','")
	if err != nil {
		return nil, err
	}

	return value.Tuple{value.NewSymbolText(head), v}, nil
}

func (r *Reader) readGensymText() (value.Value, error) {
	if r.templateDepth == 0 {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "'$#' used outside a template"}
	}

	v, err := r.readRequired("'$#'")
	if err != nil {
		return nil, err
	}

	name, ok := v.(value.Text)
	if !ok {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "'$#' name must be a symbol"}
	}

	return value.NewSymbolText("$#" + name.String()), nil
}

func (r *Reader) readRawString(tok lex.Token) value.Value {
	text := r.text(tok)
	// text includes the delimiting quotes; the reader's text is the host
	// source that renders exactly the raw content between them, backslash
	// pairs preserved literally as the lexer already validated them.
	return value.NewRawText(text)
}

func (r *Reader) readHashString(tok lex.Token) (value.Value, error) {
	text := r.text(tok)
	// Strip the leading '#', unescape host-style backslash sequences, then
	// re-render as a plain double-quoted host string literal.
	body := text[1:]

	unescaped, err := unescapeHostString(body[1 : len(body)-1])
	if err != nil {
		return nil, &herror.ReadError{Pos: r.position(), Msg: err.Error()}
	}

	return value.NewRawText(strconv.Quote(unescaped)), nil
}

func (r *Reader) readInject() (value.Value, error) {
	v, err := r.readRequired("'.#'")
	if err != nil {
		return nil, err
	}

	if r.opts.Evaluator == nil {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "'.#' requires a configured Evaluator"}
	}

	source, err := compileForInject(v, r.opts.ModuleName)
	if err != nil {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "compiling '.#' operand: " + err.Error()}
	}

	log.Debugf("evaluating injected host source %q", source)

	result, err := r.opts.Evaluator.Eval(source)
	if err != nil {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "evaluating '.#' operand: " + err.Error()}
	}

	if hv, ok := result.(value.Value); ok {
		return hv, nil
	}

	return value.Obj{Data: result}, nil
}

func (r *Reader) readNamedMacro(tok lex.Token) (value.Value, error) {
	raw := r.text(tok)
	name := strings.TrimSuffix(raw, "#")

	extras := r.pendingExtras
	r.pendingExtras = nil

	operand, err := r.readRequired("reader macro '" + raw + "'")
	if err != nil {
		return nil, err
	}

	macro, qualifiedName, ok := r.resolveReaderMacro(name)
	if !ok {
		return nil, &herror.ReadError{Pos: r.position(), Msg: "unbound reader macro " + qualifiedName}
	}

	tail := append(value.Tuple{operand}, extras...)

	log.Debugf("invoking reader macro %s", qualifiedName)

	result, err := macro(tail)
	if err != nil {
		return nil, &herror.MacroError{Pos: r.position(), QualifiedName: qualifiedName, Form: tail, Cause: err}
	}

	return result, nil
}

// resolveReaderMacro looks up name's binding as a reader macro: the same
// macro namespaces the compiler uses, keyed by the munged name with the
// munged image of '#' appended.
func (r *Reader) resolveReaderMacro(name string) (value.Macro, string, bool) {
	module := r.opts.ModuleName
	local := name

	if i := strings.LastIndex(name, "."); i >= 0 {
		module = name[:i]
		local = name[i+1:]
	}

	ns, ok := r.opts.Namespaces[module]
	if !ok {
		return nil, module + ".." + local + "#", false
	}

	key := munge.Munge(local) + munge.Munge("#")

	macro, ok := ns.Get(key)

	return macro, module + ".." + local + "#", ok
}
