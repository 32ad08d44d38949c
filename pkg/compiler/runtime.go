package compiler

// Names of the host-side primitives the emitted source calls by name only:
// no library code ships with the compiled output, so these are
// documentation of an assumed host environment, not Go symbols that get
// linked in.
const (
	// runtimeImportName is the host's import-by-name primitive, used for
	// module handles and qualified texts.
	runtimeImportName = "__import__"
	// runtimeOpaqueLoaderName loads the gob-encoded envelope an opaque leaf
	// serializes to. A real host has no gob decoder, so this name stands
	// for whatever self-describing loader that host provides (Python's
	// pickle.loads is the closest analogue) — see DESIGN.md for why gob is
	// used Go-side regardless.
	runtimeOpaqueLoaderName = "_hissp_opaque_loads"
	// runtimeGlobalsName is the globals()-like primitive macros use for
	// top-level binding in their own expansions.
	runtimeGlobalsName = "globals"
)
