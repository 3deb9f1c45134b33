package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbschema/dbschema/internal/datasource"
	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/ir"
	"github.com/dbschema/dbschema/internal/loader"
)

func newResolver(ld loader.Loader, b *ir.Builder) *Resolver {
	return New(ld, b, Options{DataSources: datasource.Default()})
}

func TestResolveModuleDetectsImportCycle(t *testing.T) {
	ld := loader.Memory{
		"root/main.hcl": `
module "child" {
  source = "../child"
}
`,
		"child/main.hcl": `
module "back" {
  source = "../root"
}
`,
	}
	b := ir.NewBuilder(false)
	r := newResolver(ld, b)

	_, err := r.ResolveRoot("root/main.hcl", nil)
	require.NotNil(t, err)
	assert.Equal(t, diag.KindModuleCycle, err.Kind)
	assert.Contains(t, err.PathChain, "root")
}

func TestResolveModuleOutputVisibleToLaterLocalInParent(t *testing.T) {
	ld := loader.Memory{
		"root/main.hcl": `
module "naming" {
  source = "../naming"
}

locals {
  table_name = module.naming.value
}

table "generated" {
  column "id" {
    type = "serial"
  }
  primary_key {
    columns = ["id"]
  }
}
`,
		"naming/main.hcl": `
output "value" {
  value = "accounts"
}
`,
	}
	b := ir.NewBuilder(false)
	r := newResolver(ld, b)

	_, err := r.ResolveRoot("root/main.hcl", nil)
	require.Nil(t, err, "%v", err)

	frozen := b.Freeze()
	require.Len(t, frozen.Tables, 1)
	assert.Equal(t, "generated", frozen.Tables[0].Name)
}

func TestResolveModuleOutputsPassThroughToGrandparent(t *testing.T) {
	ld := loader.Memory{
		"root/main.hcl": `
module "mid" {
  source = "../mid"
}

output "leaf_value" {
  value = module.mid.passthrough
}
`,
		"mid/main.hcl": `
module "leaf" {
  source = "../leaf"
}

output "passthrough" {
  value = module.leaf.value
}
`,
		"leaf/main.hcl": `
output "value" {
  value = "deep"
}
`,
	}
	b := ir.NewBuilder(false)
	r := newResolver(ld, b)

	outputs, err := r.ResolveRoot("root/main.hcl", nil)
	require.Nil(t, err, "%v", err)
	require.Contains(t, outputs, "leaf_value")
	assert.Equal(t, "deep", outputs["leaf_value"].AsString())
}

func TestResolveModuleMissingSourceIsModuleSourceMissing(t *testing.T) {
	ld := loader.Memory{
		"root/main.hcl": `
module "gone" {
  source = "../nowhere"
}
`,
	}
	b := ir.NewBuilder(false)
	r := newResolver(ld, b)

	_, err := r.ResolveRoot("root/main.hcl", nil)
	require.NotNil(t, err)
	assert.Equal(t, diag.KindModuleSourceMissing, err.Kind)
}

func TestResolveUnrecognizedTopLevelBlockIsAWarningNotAnError(t *testing.T) {
	ld := loader.Memory{
		"root/main.hcl": `
mystery "thing" {
  foo = "bar"
}
`,
	}
	b := ir.NewBuilder(false)
	r := newResolver(ld, b)

	_, err := r.ResolveRoot("root/main.hcl", nil)
	require.Nil(t, err, "%v", err)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, diag.KindParseError, r.Warnings[0].Kind)
}
