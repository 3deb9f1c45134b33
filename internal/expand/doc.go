// Package expand implements component F: applying for_each, count, and
// dynamic to source AST blocks to produce a flat stream of concrete blocks
// with each.* / count.index already bound in their Scope. The IR builder
// (internal/ir) consumes Blocks, never hclsyntax.Block directly, once a
// block has passed through here.
package expand
