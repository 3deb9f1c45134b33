package evalexpr_test

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/evalexpr"
	"github.com/dbschema/dbschema/internal/funcs"
	"github.com/dbschema/dbschema/internal/scope"
)

func parse(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), diags.Error())
	return expr
}

func TestEvalTemplate(t *testing.T) {
	s := scope.Root(nil).WithVar("name", cty.StringVal("users"))
	val, diags := evalexpr.Eval(parse(t, `"set_${var.name}"`), s)
	require.False(t, diags.HasErrors())
	assert.Equal(t, "set_users", val.AsString())
}

func TestEvalConditional(t *testing.T) {
	s := scope.Root(nil)
	val, diags := evalexpr.Eval(parse(t, `true ? "a" : "b"`), s)
	require.False(t, diags.HasErrors())
	assert.Equal(t, "a", val.AsString())
}

func TestEvalForExpr(t *testing.T) {
	s := scope.Root(funcs.Registry()).WithVar("xs", cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}))
	val, diags := evalexpr.Eval(parse(t, `[for x in var.xs : upper(x)]`), s)
	require.False(t, diags.HasErrors())
	want := cty.TupleVal([]cty.Value{cty.StringVal("A"), cty.StringVal("B")})
	assert.True(t, val.RawEquals(want))
}

func TestEvalSplatOnListOK(t *testing.T) {
	s := scope.Root(nil).WithVar("xs", cty.ListVal([]cty.Value{
		cty.ObjectVal(map[string]cty.Value{"name": cty.StringVal("a")}),
	}))
	val, diags := evalexpr.Eval(parse(t, `var.xs[*].name`), s)
	require.False(t, diags.HasErrors())
	assert.Equal(t, 1, val.LengthInt())
}

func TestEvalSplatOnScalarErrors(t *testing.T) {
	s := scope.Root(nil).WithVar("x", cty.StringVal("not-a-list"))
	_, diags := evalexpr.Eval(parse(t, `var.x[*]`), s)
	assert.True(t, diags.HasErrors())
}

func TestEvalBool(t *testing.T) {
	s := scope.Root(nil).WithVar("n", cty.NumberIntVal(5))
	ok, diags := evalexpr.EvalBool(parse(t, `var.n > 0`), s)
	require.False(t, diags.HasErrors())
	assert.True(t, ok)
}

func TestEvalStringCoercesNumber(t *testing.T) {
	s := scope.Root(nil)
	out, diags := evalexpr.EvalString(parse(t, `42`), s)
	require.False(t, diags.HasErrors())
	assert.Equal(t, "42", out)
}
