package expand

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/lang"
	"github.com/dbschema/dbschema/internal/scope"
)

func parseBlock(t *testing.T, src string) *hclsyntax.Block {
	t.Helper()
	body, diags := lang.ParseFile("test.hcl", src)
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, body.Blocks, 1)
	return body.Blocks[0]
}

func TestExpandForEachOverListProducesOneBlockPerElement(t *testing.T) {
	src := `
trigger "audit" {
  for_each = ["insert", "update"]
  timing   = "AFTER"
}
`
	block := parseBlock(t, src)
	s := scope.Root(nil)

	out, diags := Expand(block, s)
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, out, 2)

	names := make([]string, len(out))
	for i, b := range out {
		eachVal, ok := b.Scope.EvalContext().Variables["each"]
		require.True(t, ok, "each namespace bound")
		names[i] = eachVal.GetAttr("value").AsString()
	}
	assert.ElementsMatch(t, []string{"insert", "update"}, names)
}

func TestExpandForEachOverMapUsesSortedStringKeys(t *testing.T) {
	src := `
role "app" {
  for_each = { writer = "rw", reader = "ro" }
}
`
	block := parseBlock(t, src)
	s := scope.Root(nil)

	out, diags := Expand(block, s)
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, out, 2)

	keys := make([]string, len(out))
	for i, b := range out {
		eachVal := b.Scope.EvalContext().Variables["each"]
		keys[i] = eachVal.GetAttr("key").AsString()
	}
	// forEachScopes sorts map keys before building scopes, so iteration
	// order is deterministic: "reader" before "writer".
	assert.Equal(t, []string{"reader", "writer"}, keys)
}

func TestExpandCountProducesIndexedScopes(t *testing.T) {
	src := `
sequence "shard" {
  count = 3
}
`
	block := parseBlock(t, src)
	s := scope.Root(nil)

	out, diags := Expand(block, s)
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, out, 3)

	for i, b := range out {
		countVal := b.Scope.EvalContext().Variables["count"]
		idx, _ := countVal.GetAttr("index").AsBigFloat().Int64()
		assert.Equal(t, int64(i), idx)
	}
}

func TestExpandRejectsForEachAndCountTogether(t *testing.T) {
	src := `
sequence "shard" {
  count    = 3
  for_each = ["a"]
}
`
	block := parseBlock(t, src)
	_, diags := Expand(block, scope.Root(nil))
	assert.True(t, diags.HasErrors())
}

func TestExpandDynamicGeneratesOneBlockPerIteration(t *testing.T) {
	src := `
table "events" {
  dynamic "column" {
    for_each = ["a", "b"]
    labels   = [each.value]
    content {
      type = "text"
    }
  }
}
`
	block := parseBlock(t, src)
	s := scope.Root(nil)

	out, diags := Expand(block, s)
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, out, 1)

	columns := out[0].Blocks
	require.Len(t, columns, 2)
	assert.Equal(t, "column", columns[0].Kind)
	assert.ElementsMatch(t, []string{"a", "b"}, []string{columns[0].Labels[0], columns[1].Labels[0]})
}

func TestForEachScopesRejectsNull(t *testing.T) {
	_, diags := forEachScopes(cty.NullVal(cty.List(cty.String)), hcl.Range{}, scope.Root(nil))
	assert.True(t, diags.HasErrors())
}

func TestForEachScopesRejectsScalar(t *testing.T) {
	_, diags := forEachScopes(cty.StringVal("nope"), hcl.Range{}, scope.Root(nil))
	assert.True(t, diags.HasErrors())
}
