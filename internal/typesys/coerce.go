package typesys

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/dbschema/dbschema/internal/diag"
)

// Coerce converts val to match ty: string<-number/bool, number<-string (if
// it parses numerically), bool<-string ("true"/"false"), elementwise
// list/map coercion, and object coercion that drops unknown keys (reported
// as a warning, not failed) and fills missing optional fields with Null.
// convert.Convert already implements every one of these rules — it's the
// exact semantics Terraform's own variable coercion uses.
//
// Returns the coerced value, a list of non-fatal warnings (unknown object
// keys dropped), and an error if the value cannot be made to fit.
func Coerce(val cty.Value, ty cty.Type, path string) (cty.Value, []string, error) {
	var warnings []string

	if val.Type().IsObjectType() && ty.IsObjectType() {
		val, warnings = dropUnknownObjectKeys(val, ty, path)
	}

	out, err := convert.Convert(val, ty)
	if err != nil {
		return cty.NilVal, warnings, diag.TypeMismatch(ty.FriendlyName(), val.Type().FriendlyName(), path, nil)
	}
	return out, warnings, nil
}

// dropUnknownObjectKeys removes attributes from val that ty does not declare,
// returning a warning for each one dropped. Missing optional attributes are
// left for convert.Convert to fill with Null.
func dropUnknownObjectKeys(val cty.Value, ty cty.Type, path string) (cty.Value, []string) {
	declared := ty.AttributeTypes()
	attrs := make(map[string]cty.Value)
	var warnings []string

	for name, v := range val.AsValueMap() {
		if _, ok := declared[name]; !ok {
			warnings = append(warnings, fmt.Sprintf("%s: unknown attribute %q ignored", path, name))
			continue
		}
		attrs[name] = v
	}

	if len(attrs) == 0 {
		return cty.EmptyObjectVal, warnings
	}
	return cty.ObjectVal(attrs), warnings
}

// CoerceVariable applies Coerce and wraps any failure as a TypeMismatch
// rooted at "var.<name>", attaching the declaration's source range.
func CoerceVariable(name string, val cty.Value, ty cty.Type, rng *hcl.Range) (cty.Value, []string, *diag.Error) {
	coerced, warnings, err := Coerce(val, ty, "var."+name)
	if err != nil {
		de, _ := err.(*diag.Error)
		if de == nil {
			de = diag.TypeMismatch(ty.FriendlyName(), val.Type().FriendlyName(), "var."+name, rng)
		}
		de.Range = rng
		return cty.NilVal, warnings, de
	}
	return coerced, warnings, nil
}
