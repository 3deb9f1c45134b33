// Package evalexpr evaluates a parsed expression against a scope.Scope.
// hclsyntax's native expression types already implement almost everything
// needed — literals, templates with interpolation and %{if}/%{for}
// directives, traversal, conditionals, for comprehensions, and function
// calls — so Eval is a thin wrapper around expr.Value(ctx), stepping in only
// where the desired behavior diverges from hclsyntax's legacy defaults (the
// splat operator on a non-collection value). That check applies only when
// the splat is the whole expression; a splat nested inside a larger
// expression keeps hclsyntax's default of wrapping a scalar into a
// one-element tuple.
package evalexpr
