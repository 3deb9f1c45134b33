package funcs

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

// convertTo builds a to<Type>() conversion function backed by convert.Convert,
// which already implements the exact string/number/bool coercion rules spec
// §4.D and §6.5 both describe.
func convertTo(target cty.Type) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "v", Type: cty.DynamicPseudoType, AllowNull: true},
		},
		Type: function.StaticReturnType(target),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return convert.Convert(args[0], target)
		},
	})
}

var (
	toStringFunc = convertTo(cty.String)
	toNumberFunc = convertTo(cty.Number)
	toBoolFunc   = convertTo(cty.Bool)
	toListFunc   = convertTo(cty.List(cty.DynamicPseudoType))
	toMapFunc    = convertTo(cty.Map(cty.DynamicPseudoType))
)
