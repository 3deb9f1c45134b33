package funcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/funcs"
)

func call(t *testing.T, name string, args ...cty.Value) cty.Value {
	t.Helper()
	fn, ok := funcs.Registry()[name]
	require.True(t, ok, "function %q not registered", name)
	out, err := fn.Call(args)
	require.NoError(t, err)
	return out
}

func TestStringContains(t *testing.T) {
	out := call(t, "contains", cty.StringVal("hello world"), cty.StringVal("wor"))
	assert.True(t, out.True())

	out = call(t, "contains", cty.StringVal("hello world"), cty.StringVal("xyz"))
	assert.False(t, out.True())
}

func TestStringStartsEndsWith(t *testing.T) {
	assert.True(t, call(t, "startswith", cty.StringVal("hello"), cty.StringVal("he")).True())
	assert.True(t, call(t, "endswith", cty.StringVal("hello"), cty.StringVal("lo")).True())
}

func TestReplace(t *testing.T) {
	out := call(t, "replace", cty.StringVal("a-b-c"), cty.StringVal("-"), cty.StringVal("_"))
	assert.Equal(t, "a_b_c", out.AsString())
}

func TestConversionToNumber(t *testing.T) {
	out := call(t, "tonumber", cty.StringVal("42"))
	assert.True(t, out.RawEquals(cty.NumberIntVal(42)))
}

func TestConversionToString(t *testing.T) {
	out := call(t, "tostring", cty.NumberIntVal(7))
	assert.Equal(t, "7", out.AsString())
}

func TestSha256(t *testing.T) {
	out := call(t, "sha256", cty.StringVal("abc"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", out.AsString())
}

func TestBase64RoundTrip(t *testing.T) {
	encoded := call(t, "base64encode", cty.StringVal("hello"))
	decoded := call(t, "base64decode", encoded)
	assert.Equal(t, "hello", decoded.AsString())
}

func TestTimeCmp(t *testing.T) {
	out := call(t, "timecmp", cty.StringVal("2024-01-01T00:00:00Z"), cty.StringVal("2024-06-01T00:00:00Z"))
	assert.True(t, out.RawEquals(cty.NumberIntVal(-1)))
}

func TestRegistryContainsAllGroups(t *testing.T) {
	reg := funcs.Registry()
	for _, name := range []string{
		"upper", "lower", "length", "substr", "trim", "contains", "startswith", "endswith", "replace",
		"min", "max", "abs",
		"concat", "flatten", "distinct", "slice", "sort", "reverse", "index",
		"coalesce", "join", "split",
		"tostring", "tonumber", "tobool", "tolist", "tomap",
		"md5", "sha256", "sha512", "base64encode", "base64decode",
		"timestamp", "formatdate", "timeadd", "timecmp",
	} {
		_, ok := reg[name]
		assert.True(t, ok, "missing builtin %q", name)
	}
}
