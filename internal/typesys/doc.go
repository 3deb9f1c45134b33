// Package typesys parses a type expression (list(number), object({...}),
// optional(T), ...) into a cty.Type, coerces a supplied value to match it,
// and runs a variable's validation blocks.
//
// The type grammar here is, attribute for attribute, the type constraint
// grammar HCL's own ext/typeexpr package implements (it's what Terraform
// itself uses for `variable "x" { type = ... }`), and coercion rules map
// directly onto cty/convert's conversion rules. We lean on both rather than
// hand-rolling either.
package typesys
