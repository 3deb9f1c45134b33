package typesys

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/diag"
)

// ValidationRule is one `validation { condition = ...; error_message = ... }`
// block attached to a `variable` declaration.
type ValidationRule struct {
	Condition    hcl.Expression
	ErrorMessage hcl.Expression
	Range        *hcl.Range
}

// RunValidations evaluates each rule's condition with the variable bound
// under its own name, failing with VariableValidation(name, error_message)
// on the first rule whose condition is false.
func RunValidations(varName string, value cty.Value, rules []ValidationRule) *diag.Error {
	for _, rule := range rules {
		ctx := &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"var": cty.ObjectVal(map[string]cty.Value{varName: value}),
			},
		}

		condVal, diags := rule.Condition.Value(ctx)
		if diags.HasErrors() {
			return diag.FromDiagnostics(diags)
		}
		if condVal.Type() != cty.Bool {
			return diag.TypeMismatch("bool", condVal.Type().FriendlyName(), "validation.condition", rule.Range)
		}
		if condVal.True() {
			continue
		}

		msgVal, diags := rule.ErrorMessage.Value(ctx)
		if diags.HasErrors() {
			return diag.FromDiagnostics(diags)
		}
		message := varName + " failed validation"
		if msgVal.Type() == cty.String && !msgVal.IsNull() {
			message = msgVal.AsString()
		}
		return diag.VariableValidation(varName, message, rule.Range)
	}
	return nil
}
