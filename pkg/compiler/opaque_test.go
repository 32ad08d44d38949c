package compiler

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"strconv"
	"strings"
	"testing"

	"github.com/hissp-io/hissp-go/pkg/util/assert"
)

// decodeOpaque reverses encodeOpaque's loader-call rendering, for tests
// that need to inspect the envelope an opaque value serialized to rather
// than just the emitted source text.
func decodeOpaque(t *testing.T, emitted string) opaqueEnvelope {
	t.Helper()

	lines := strings.SplitN(emitted, "\n", 2)
	if len(lines) != 2 {
		t.Fatalf("expected a comment line followed by the loader call, got %q", emitted)
	}

	call := lines[1]

	open := strings.Index(call, "(")
	if open == -1 || !strings.HasSuffix(call, ")") {
		t.Fatalf("expected a loader call, got %q", call)
	}

	quoted := call[open+1 : len(call)-1]

	payload, err := strconv.Unquote(quoted)
	if err != nil {
		t.Fatalf("loader argument is not a valid quoted string: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("loader payload is not valid base64: %v", err)
	}

	var env opaqueEnvelope
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&env); err != nil {
		t.Fatalf("loader payload did not gob-decode: %v", err)
	}

	return env
}

func TestEncodeOpaqueHasNoLiteralFormAndEmitsReprComment(t *testing.T) {
	data := map[string]int{"a": 1}

	out, err := encodeOpaque(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.SplitN(out, "\n", 2)
	if len(lines) != 2 {
		t.Fatalf("expected a comment line followed by the loader call, got %q", out)
	}

	if !strings.HasPrefix(lines[0], "# ") {
		t.Fatalf("expected the first line to be a '#' comment, got %q", lines[0])
	}

	if !strings.Contains(lines[0], `"a"`) || !strings.Contains(lines[0], "1") {
		t.Fatalf("expected the repr comment to mention the map's contents, got %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], runtimeOpaqueLoaderName+"(") {
		t.Fatalf("expected a call to the opaque loader, got %q", lines[1])
	}

	env := decodeOpaque(t, out)
	if len(env.Refs) == 0 {
		t.Fatalf("expected a non-empty Refs table")
	}
}

func TestEncodeOpaquePreservesSharedReferenceIdentity(t *testing.T) {
	// inner carries an element so it's a genuine, distinctly-addressed heap
	// allocation rather than Go's shared empty-slice sentinel, which would
	// make every unrelated empty slice compare as "the same" reference.
	inner := []any{1}
	outer := []any{inner, inner, inner}

	out, err := encodeOpaque(outer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env := decodeOpaque(t, out)

	root, ok := env.Refs[env.Root].([]any)
	if !ok || len(root) != 3 {
		t.Fatalf("expected the root entry to be a 3-element slice, got %#v", env.Refs[env.Root])
	}

	first, ok := root[0].(opaqueRef)
	if !ok {
		t.Fatalf("expected the first element to be an opaqueRef, got %#v", root[0])
	}

	for i, elem := range root {
		ref, ok := elem.(opaqueRef)
		if !ok {
			t.Fatalf("expected element %d to be an opaqueRef, got %#v", i, elem)
		}

		assert.Equal(t, first.Index, ref.Index, "all three repeated occurrences must point at the same table slot")
	}
}
