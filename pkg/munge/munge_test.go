package munge_test

import (
	"testing"

	"github.com/hissp-io/hissp-go/pkg/munge"
	"github.com/hissp-io/hissp-go/pkg/util/assert"
)

func TestMungeIdentityForLegalIdentifiers(t *testing.T) {
	for _, name := range []string{"foo", "foo_bar", "_private", "camelCase", "a1b2"} {
		assert.Equal(t, name, munge.Munge(name), "plain identifiers must be left alone")
	}
}

func TestMungeRoundTrip(t *testing.T) {
	cases := []string{
		"foo->bar",
		"*FOO*",
		"foo?",
		"1+",
		"0",
		"-",
		"->",
		"foo.bar",
		"pkg..attr",
		"<=>",
		"",
		"a b",
		"hissp/basic..QzMaybe_.foo",
	}

	for _, name := range cases {
		got := munge.Demunge(munge.Munge(name))
		assert.Equal(t, name, got, "round trip for %q", name)
	}
}

func TestMungeIsIdempotent(t *testing.T) {
	for _, name := range []string{"foo->bar", "1+", "-", "a b", "<=>"} {
		once := munge.Munge(name)
		twice := munge.Munge(once)
		assert.Equal(t, once, twice, "munge must be idempotent for %q", name)
	}
}

func TestMungeLeadingDigit(t *testing.T) {
	assert.Equal(t, "QzDIGITxONE_", munge.Munge("1"))
	assert.Equal(t, "1", munge.Munge("a1")[1:2], "non-leading digits are untouched")
}

func TestMungeHyphen(t *testing.T) {
	assert.Equal(t, "Qz_", munge.Munge("-"))
	assert.Equal(t, "-", munge.Demunge("Qz_"))
}

func TestDemungeLeavesUnknownTagsAlone(t *testing.T) {
	assert.Equal(t, "Qzfrobnicate_", munge.Demunge("Qzfrobnicate_"))
}
