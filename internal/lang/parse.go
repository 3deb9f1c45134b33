package lang

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// ParseFile parses the contents of one .hcl file into its syntax body.
// filename is used only for diagnostic source spans; it does not have to
// exist on disk (the caller may be reading through a loader.Loader).
func ParseFile(filename, contents string) (*hclsyntax.Body, hcl.Diagnostics) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(contents), filename)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported file format",
			Detail:   filename + " did not parse as native HCL syntax.",
		}}
	}
	return body, diags
}

// MergeBodies concatenates the top-level blocks and attributes of every body
// into one, as if every file in a module directory were a single file —
// sorted deterministically by SortedSyntaxBlocks before use.
func MergeBodies(bodies []*hclsyntax.Body) *hclsyntax.Body {
	merged := &hclsyntax.Body{
		Attributes: hclsyntax.Attributes{},
	}
	for _, b := range bodies {
		for name, attr := range b.Attributes {
			merged.Attributes[name] = attr
		}
		merged.Blocks = append(merged.Blocks, b.Blocks...)
	}
	return merged
}
