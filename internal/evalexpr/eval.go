package evalexpr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/scope"
)

// Eval evaluates expr against s, returning the resulting value.
func Eval(expr hcl.Expression, s *scope.Scope) (cty.Value, hcl.Diagnostics) {
	if splat, ok := expr.(*hclsyntax.SplatExpr); ok {
		return evalSplat(splat, s)
	}
	return expr.Value(s.EvalContext())
}

// evalSplat rejects the splat operator (.*) on anything that is not a list,
// set, or tuple. hclsyntax's own legacy splat silently wraps a scalar into a
// one-element tuple; that ambiguity is resolved here in favor of an error.
func evalSplat(splat *hclsyntax.SplatExpr, s *scope.Scope) (cty.Value, hcl.Diagnostics) {
	src, diags := splat.Source.Value(s.EvalContext())
	if diags.HasErrors() {
		return cty.DynamicVal, diags
	}

	if !src.IsNull() {
		ty := src.Type()
		if !ty.IsListType() && !ty.IsSetType() && !ty.IsTupleType() {
			rng := splat.Range()
			return cty.DynamicVal, hcl.Diagnostics{&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid splat operator",
				Detail: fmt.Sprintf(
					"The splat operator (.*) can only be applied to a list, set, or tuple value, not %s.",
					ty.FriendlyName(),
				),
				Subject: &rng,
			}}
		}
	}

	return splat.Value(s.EvalContext())
}

// EvalBool evaluates expr and requires the result to be a non-null bool.
func EvalBool(expr hcl.Expression, s *scope.Scope) (bool, hcl.Diagnostics) {
	val, diags := Eval(expr, s)
	if diags.HasErrors() {
		return false, diags
	}
	if val.IsNull() || val.Type() != cty.Bool {
		rng := expr.Range()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid condition",
			Detail:   "A boolean value is required.",
			Subject:  &rng,
		})
		return false, diags
	}
	return val.True(), diags
}

// EvalString evaluates expr and coerces the result to a string.
func EvalString(expr hcl.Expression, s *scope.Scope) (string, hcl.Diagnostics) {
	val, diags := Eval(expr, s)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		rng := expr.Range()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   "A non-null string value is required.",
			Subject:  &rng,
		})
		return "", diags
	}
	conv, err := convertToString(val)
	if err != nil {
		rng := expr.Range()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   err.Error(),
			Subject:  &rng,
		})
		return "", diags
	}
	return conv, diags
}
