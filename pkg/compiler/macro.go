package compiler

import (
	"strings"

	"github.com/hissp-io/hissp-go/pkg/value"
)

// resolveMacro looks up a tuple head in the macro namespaces: quote and
// lambda are excluded by the caller before this runs (they are never
// overridable), and method-syntax heads are excluded by isMethodHead.
// Head text reaching here was already munged by the reader, so lookups use
// its content directly rather than munging again.
//
// A qualified head carrying the QzMaybe_ marker (left behind by the
// template engine's auto-qualification, which can't yet tell whether a
// name will resolve to a macro or a plain global) resolves against the
// named module's namespace, stripping the marker to get the candidate
// local name — this is the one place that deferred resolution is actually
// settled.
func resolveMacro(ht value.Text, opts Options) (value.Macro, string, bool) {
	content := ht.String()

	if ht.IsQualified() {
		module, attr, _ := ht.SplitQualified()
		local := strings.TrimPrefix(attr, "QzMaybe_.")

		ns, ok := opts.Namespaces[module]
		if !ok {
			return nil, "", false
		}

		m, ok := ns.Get(local)

		return m, module + ".." + local, ok
	}

	if ht.IsModuleHandle() || ht.IsControlWord() {
		return nil, "", false
	}

	ns, ok := opts.Namespaces[opts.ModuleName]
	if !ok {
		return nil, "", false
	}

	m, ok := ns.Get(content)

	return m, opts.ModuleName + ".." + content, ok
}
