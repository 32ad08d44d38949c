package value

import "github.com/hissp-io/hissp-go/pkg/util"

// Macro is a host callable bound in a module's macro namespace. It receives
// the unevaluated tail of the invoking tuple (everything after the macro's
// own name) and returns the replacement form.
type Macro func(tail Tuple) (Value, error)

// MacroNamespace is a module's `_macro_`-equivalent namespace: a mutable,
// map-backed binding of munged macro names to host callables. It is plain
// map-backed rather than layered/inherited, per the pipeline's "mutable
// macro namespaces, one flat map per module" design choice — no macro
// inheritance across modules, only explicit qualification.
type MacroNamespace struct {
	entries map[string]Macro
}

// NewMacroNamespace returns an empty namespace.
func NewMacroNamespace() *MacroNamespace {
	return &MacroNamespace{entries: make(map[string]Macro)}
}

// Get looks up a macro by its already-munged name.
func (ns *MacroNamespace) Get(mungedName string) (Macro, bool) {
	m, ok := ns.entries[mungedName]
	return m, ok
}

// Set binds a macro under its already-munged name, replacing any prior
// binding. Macro namespaces are mutable for the lifetime of a module's
// compilation, exactly as new macros may be defined and redefined while
// earlier forms in the same module are still being compiled.
func (ns *MacroNamespace) Set(mungedName string, m Macro) {
	ns.entries[mungedName] = m
}

// Delete removes a binding, if present.
func (ns *MacroNamespace) Delete(mungedName string) {
	delete(ns.entries, mungedName)
}

// Names returns the munged names currently bound, in no particular order.
func (ns *MacroNamespace) Names() []string {
	names := make([]string, 0, len(ns.entries))
	for name := range ns.entries {
		names = append(names, name)
	}

	return names
}

// Clone returns a namespace with an independent copy of the current
// bindings, so that a nested compilation (e.g. of a macro's own expansion)
// can mutate its namespace without affecting the caller's.
func (ns *MacroNamespace) Clone() *MacroNamespace {
	return &MacroNamespace{entries: util.ShallowCloneMap(ns.entries)}
}
