package typesys

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/zclconf/go-cty/cty"
)

// ParseTypeExpr parses a type expression of the form:
// any | string | number | bool | list(T) | set(T) | map(T) | tuple([T...]) |
// object({name=T, name=optional(T), ...}). typeexpr.TypeConstraint implements
// exactly this grammar, optional() included.
func ParseTypeExpr(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	return typeexpr.TypeConstraint(expr)
}

// IsOptionalAttr reports whether ty declares attr as optional. optional(T)
// only appears as an object field.
func IsOptionalAttr(ty cty.Type, attr string) bool {
	if !ty.IsObjectType() || !ty.HasAttribute(attr) {
		return false
	}
	return ty.AttributeOptional(attr)
}
