package lang

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// FindUniqueBlock searches blocks for all blocks of the given type and
// returns the one it found, erroring if more than one was present. A type
// that never appears returns a nil block and no diagnostics — callers decide
// whether absence is itself an error (e.g. a required `primary_key` block).
func FindUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "Only one \"" + blockType + "\" block is allowed here.",
				Subject:  &block.DefRange,
			})
			continue
		}
		found = block
	}

	return found, diags
}

// BlocksOfType returns every block of the given type, in source order.
func BlocksOfType(blocks hcl.Blocks, blockType string) hcl.Blocks {
	var out hcl.Blocks
	for _, block := range blocks {
		if block.Type == blockType {
			out = append(out, block)
		}
	}
	return out
}

// SortedSyntaxBlocks returns the syntax blocks of a body sorted by the
// declaring file's path and then by source position, so that enumeration
// across multiple files in a module directory is reproducible regardless of
// map/slice ordering upstream.
func SortedSyntaxBlocks(blocks []*hclsyntax.Block) []*hclsyntax.Block {
	out := make([]*hclsyntax.Block, len(blocks))
	copy(out, blocks)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].DefRange(), out[j].DefRange()
		if ri.Filename != rj.Filename {
			return ri.Filename < rj.Filename
		}
		if ri.Start.Line != rj.Start.Line {
			return ri.Start.Line < rj.Start.Line
		}
		return ri.Start.Column < rj.Start.Column
	})
	return out
}
