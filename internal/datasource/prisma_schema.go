package datasource

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/prisma"
)

// loadPrismaSchema implements the one concrete data source type this module
// ships: `data "prisma_schema" "name" { file = "<path>" }` reads file
// (resolved relative to the enclosing module's directory) and exposes its
// parsed models and enums as a structured object.
func loadPrismaSchema(attrs map[string]cty.Value, load FileLoader) (cty.Value, hcl.Diagnostics) {
	fileVal, ok := attrs["file"]
	if !ok || fileVal.IsNull() || fileVal.Type() != cty.String {
		return cty.DynamicVal, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing required attribute",
			Detail:   `prisma_schema data source requires a string "file" attribute.`,
		}}
	}

	path := fileVal.AsString()
	contents, err := load(path)
	if err != nil {
		return cty.DynamicVal, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Failed to read Prisma schema",
			Detail:   fmt.Sprintf("%s: %v", path, err),
		}}
	}

	schema, err := prisma.Parse(contents)
	if err != nil {
		return cty.DynamicVal, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Failed to parse Prisma schema",
			Detail:   fmt.Sprintf("%s: %v", path, err),
		}}
	}

	return schema.ToCtyValue(), nil
}
