// Package scope builds the hcl.EvalContext a compiled block is evaluated
// against: a hierarchy of frames holding var.*, local.*, data.<type>.<name>.*,
// module.<name>.* (outputs only), and the per-block iteration bindings
// each.key/each.value/count.index.
//
// Scopes are immutable: every With* method returns a new Scope built from a
// freshly rebuilt Variables map, the same flat-rebuild-per-level pattern the
// teacher's executor.buildEvalContext uses rather than relying on
// hcl.EvalContext's own parent-chaining (which only affects function lookup,
// not variable traversal).
package scope
