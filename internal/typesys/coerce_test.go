package typesys_test

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/typesys"
)

func parseType(t *testing.T, src string) cty.Type {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), diags.Error())
	ty, diags := typesys.ParseTypeExpr(expr)
	require.False(t, diags.HasErrors(), diags.Error())
	return ty
}

func TestCoerceListOfNumberFromMixedStrings(t *testing.T) {
	ty := parseType(t, `list(number)`)
	val := cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2), cty.StringVal("3")})

	out, warnings, err := typesys.Coerce(val, ty, "var.xs")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	want := cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2), cty.NumberIntVal(3)})
	assert.True(t, out.RawEquals(want))
}

func TestCoerceObjectFillsOptional(t *testing.T) {
	ty := parseType(t, `object({a=string, b=optional(number)})`)
	val := cty.ObjectVal(map[string]cty.Value{"a": cty.StringVal("x")})

	out, _, err := typesys.Coerce(val, ty, "var.o")
	require.NoError(t, err)

	want := cty.ObjectVal(map[string]cty.Value{
		"a": cty.StringVal("x"),
		"b": cty.NullVal(cty.Number),
	})
	assert.True(t, out.RawEquals(want))
}

func TestCoerceObjectDropsUnknownKeys(t *testing.T) {
	ty := parseType(t, `object({a=string})`)
	val := cty.ObjectVal(map[string]cty.Value{
		"a": cty.StringVal("x"),
		"z": cty.StringVal("extra"),
	})

	_, warnings, err := typesys.Coerce(val, ty, "var.o")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "z")
}

func TestCoerceNumberFromInvalidStringFails(t *testing.T) {
	_, _, err := typesys.Coerce(cty.StringVal("abc"), cty.Number, "var.n")
	require.Error(t, err)
}
