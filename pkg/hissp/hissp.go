// Package hissp is the facade over the reader and compiler: read source
// text into Hissp forms, compile a form to host source text, and convert
// names between their surface and munged spellings.
package hissp

import (
	"errors"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/hissp-io/hissp-go/pkg/compiler"
	"github.com/hissp-io/hissp-go/pkg/munge"
	"github.com/hissp-io/hissp-go/pkg/reader"
	"github.com/hissp-io/hissp-go/pkg/value"
)

// Form is a Hissp value treated as code: the tuple/text/other sum type.
type Form = value.Value

// ReadAllOpts configures ReadAll.
type ReadAllOpts struct {
	// Namespaces shares per-module macro namespaces between read-time
	// named-reader-macro dispatch and later compilation of the same
	// forms.
	Namespaces map[string]*value.MacroNamespace
	// Evaluator backs the `.#` reader macro; nil rejects any `.#` use.
	Evaluator reader.Evaluator
	// IsBuiltin overrides the read-time builtins predicate the template
	// engine's auto-qualification consults.
	IsBuiltin func(string) bool
	// ContinueOnError reads past a recoverable per-form ReadError instead
	// of stopping at the first one, accumulating every error seen into
	// the returned error via go-multierror. The default (false) means the
	// first error bubbles to the caller immediately.
	ContinueOnError bool
}

// ReadAll tokenizes and reads every top-level form in source, in order.
// With ContinueOnError unset, it stops at and returns the first error; with
// it set, every top-level form is attempted and every error encountered is
// joined into the returned error.
func ReadAll(source string, moduleName string, opts ReadAllOpts) ([]Form, error) {
	r, err := reader.New(source, reader.Options{
		ModuleName: moduleName,
		Namespaces: opts.Namespaces,
		Evaluator:  opts.Evaluator,
		IsBuiltin:  opts.IsBuiltin,
	})
	if err != nil {
		return nil, err
	}

	var (
		forms []Form
		errs  *multierror.Error
	)

	for {
		v, readErr := r.Read()
		if readErr != nil {
			if isEOF(readErr) {
				break
			}

			if !opts.ContinueOnError {
				return forms, readErr
			}

			errs = multierror.Append(errs, readErr)

			continue
		}

		forms = append(forms, v)
	}

	return forms, errs.ErrorOrNil()
}

// isEOF reports whether err is the reader's natural-exhaustion signal:
// Reader.Read passes io.EOF through unwrapped once the source is spent.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}

// Compile lowers one form to host source text.
func Compile(form Form, moduleName string) (string, error) {
	return compiler.CompileForm(form, compiler.Options{ModuleName: moduleName})
}

// Munge converts a surface Lissp name to a host-legal identifier.
func Munge(name string) string {
	return munge.Munge(name)
}

// Demunge recovers the surface name a munged identifier encodes.
func Demunge(identifier string) string {
	return munge.Demunge(identifier)
}
