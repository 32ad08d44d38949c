package reader

// defaultBuiltins is the fixed fallback set of names treated as bound in
// the host's builtins namespace at read time, used when Options.IsBuiltin
// is nil. Since the host language itself is an external collaborator (see
// spec's scope), this module cannot introspect a real builtins namespace;
// the set below is a representative, documented default rather than an
// attempt to model any specific host exactly — callers targeting a
// concrete host should supply Options.IsBuiltin instead.
var defaultBuiltins = map[string]bool{
	"abs": true, "all": true, "any": true, "bool": true, "bytes": true,
	"callable": true, "chr": true, "dict": true, "dir": true, "divmod": true,
	"enumerate": true, "filter": true, "float": true, "format": true,
	"frozenset": true, "getattr": true, "hasattr": true, "hash": true,
	"hex": true, "id": true, "input": true, "int": true, "isinstance": true,
	"issubclass": true, "iter": true, "len": true, "list": true, "map": true,
	"max": true, "min": true, "next": true, "object": true, "oct": true,
	"open": true, "ord": true, "pow": true, "print": true, "property": true,
	"range": true, "repr": true, "reversed": true, "round": true, "set": true,
	"setattr": true, "slice": true, "sorted": true, "staticmethod": true,
	"str": true, "sum": true, "super": true, "tuple": true, "type": true,
	"vars": true, "zip": true,
}

// isBuiltin reports whether name is bound in the host's builtins namespace
// at read time, per r's configured predicate or the default set above.
func (r *Reader) isBuiltin(name string) bool {
	if r.opts.IsBuiltin != nil {
		return r.opts.IsBuiltin(name)
	}

	return defaultBuiltins[name]
}
