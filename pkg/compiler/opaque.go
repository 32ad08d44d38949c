package compiler

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"fmt"
	"reflect"
)

// opaqueRef points at an entry of an opaqueEnvelope's Refs table. Every
// element of a slice, map, or pointer entry is stored as one, and a
// slice/map/pointer reached again reuses the index of its first visit, so
// the loader can reconstruct shared references
// instead of duplicating them — e.g. a list built from three repeated
// references to the same inner list decodes back to three references to
// one inner list, not three independent copies — which gob's own encoding
// doesn't give for free (unlike a pickle-style memo table).
type opaqueRef struct {
	Index int
}

// opaqueEnvelope is the self-describing binary form an opaque leaf
// serializes to: a flat table of every distinct sub-value reached from
// Root, with repeated pointers/slices/maps replaced by an opaqueRef back
// into the same table.
type opaqueEnvelope struct {
	Refs []any
	Root int
}

func init() {
	gob.Register(opaqueRef{})
	gob.Register([]any{})
	gob.Register(map[any]any{})

	// The scalar kinds emitObjLiteral also knows how to render directly;
	// opaque encoding only reaches them when they turn up nested inside a
	// slice/map that itself has no literal form (e.g. a map keyed on
	// something other than any/any), so they need registering too once
	// they're stored as an interface-table entry.
	gob.Register(false)
	gob.Register(int(0))
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register(complex128(0))
	gob.Register("")
	gob.Register([]byte(nil))
}

// encodeOpaque serializes data into a base64 payload embedded in a call to
// the opaque-loader shim, annotated with a leading comment line carrying
// data's printable repr, the same way a macro invocation's expansion is
// annotated with the macro's qualified name: a human or log reader sees
// what produced the loader call without having to decode the payload.
func encodeOpaque(data any) (string, error) {
	visited := map[uintptr]int{}

	var refs []any

	root := internOpaque(data, visited, &refs)
	env := opaqueEnvelope{Refs: refs, Root: root}

	var buf bytes.Buffer

	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return "", fmt.Errorf("opaque value has no known literal and is not gob-encodable: %w", err)
	}

	payload := base64.StdEncoding.EncodeToString(buf.Bytes())
	loader := fmt.Sprintf("%s(%q)", runtimeOpaqueLoaderName, payload)

	return fmt.Sprintf("# %#v\n%s", data, loader), nil
}

// internOpaque walks data, assigning a stable table index to every
// slice/map/pointer it reaches exactly once; later visits of the same
// address return the existing index instead of re-walking (and
// re-serializing) the value, which is what lets the loader rebuild shared
// references as shared references.
func internOpaque(data any, visited map[uintptr]int, refs *[]any) int {
	rv := reflect.ValueOf(data)

	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Ptr:
		if rv.IsNil() {
			idx := len(*refs)
			*refs = append(*refs, data)

			return idx
		}

		addr := rv.Pointer()
		if idx, ok := visited[addr]; ok {
			return idx
		}

		idx := len(*refs)
		*refs = append(*refs, nil)
		visited[addr] = idx

		switch rv.Kind() {
		case reflect.Slice:
			items := make([]any, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				items[i] = opaqueRef{Index: internOpaque(rv.Index(i).Interface(), visited, refs)}
			}

			(*refs)[idx] = items
		case reflect.Map:
			entries := make([]any, 0, rv.Len()*2)
			iter := rv.MapRange()

			for iter.Next() {
				k := opaqueRef{Index: internOpaque(iter.Key().Interface(), visited, refs)}
				v := opaqueRef{Index: internOpaque(iter.Value().Interface(), visited, refs)}
				entries = append(entries, k, v)
			}

			(*refs)[idx] = entries
		case reflect.Ptr:
			(*refs)[idx] = opaqueRef{Index: internOpaque(rv.Elem().Interface(), visited, refs)}
		}

		return idx
	default:
		idx := len(*refs)
		*refs = append(*refs, data)

		return idx
	}
}
