package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/scope"
)

func TestWithVarAccumulates(t *testing.T) {
	s := scope.Root(nil)
	s = s.WithVar("a", cty.StringVal("x"))
	s = s.WithVar("b", cty.NumberIntVal(1))

	a, ok := s.Var("a")
	require.True(t, ok)
	assert.Equal(t, "x", a.AsString())

	b, ok := s.Var("b")
	require.True(t, ok)
	assert.True(t, b.RawEquals(cty.NumberIntVal(1)))
}

func TestWithVarIsImmutable(t *testing.T) {
	base := scope.Root(nil).WithVar("a", cty.StringVal("x"))
	derived := base.WithVar("b", cty.StringVal("y"))

	_, ok := base.Var("b")
	assert.False(t, ok, "mutating derived scope must not affect base")

	_, ok = derived.Var("a")
	assert.True(t, ok, "derived scope must still see earlier bindings")
}

func TestWithDataNested(t *testing.T) {
	s := scope.Root(nil).WithData("prisma_schema", "main", cty.StringVal("schema text"))
	ctx := s.EvalContext()

	data := ctx.Variables["data"]
	require.True(t, data.Type().IsObjectType())
	prisma := data.AsValueMap()["prisma_schema"]
	require.True(t, prisma.Type().IsObjectType())
	main := prisma.AsValueMap()["main"]
	assert.Equal(t, "schema text", main.AsString())
}

func TestWithModuleOutputs(t *testing.T) {
	s := scope.Root(nil).WithModuleOutputs("timestamps", map[string]cty.Value{
		"trigger_name": cty.StringVal("set_col_on_update"),
	})
	ctx := s.EvalContext()
	mod := ctx.Variables["module"].AsValueMap()["timestamps"]
	assert.Equal(t, "set_col_on_update", mod.AsValueMap()["trigger_name"].AsString())
}

func TestWithEachAndCount(t *testing.T) {
	s := scope.Root(nil).WithEach(cty.NumberIntVal(0), cty.StringVal("users")).WithCount(2)
	ctx := s.EvalContext()

	each := ctx.Variables["each"].AsValueMap()
	assert.True(t, each["key"].RawEquals(cty.NumberIntVal(0)))
	assert.Equal(t, "users", each["value"].AsString())

	count := ctx.Variables["count"].AsValueMap()
	assert.True(t, count["index"].RawEquals(cty.NumberIntVal(2)))
}

func TestRootHasNoBindings(t *testing.T) {
	s := scope.Root(nil)
	_, ok := s.Var("anything")
	assert.False(t, ok)
}
