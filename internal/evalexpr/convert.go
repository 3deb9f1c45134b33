package evalexpr

import (
	"errors"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

func convertToString(val cty.Value) (string, error) {
	out, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}
	return out.AsString(), nil
}

// StringOf converts an already-evaluated value to a string using the same
// coercion rules as EvalString, for callers that hold a cty.Value rather
// than an expression (e.g. expand.dynamicLabels).
func StringOf(val cty.Value) (string, error) {
	return convertToString(val)
}

// IntOf converts an already-evaluated numeric value to an int64, used by
// sequence attributes (increment_by, min_value, max_value, start, cache)
// that spec.md defines as whole numbers.
func IntOf(val cty.Value) (int64, error) {
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, err
	}
	bf := num.AsBigFloat()
	n, acc := bf.Int64()
	if acc != 0 {
		// still usable, but not an exact integer
		return n, errors.New("value is not a whole number")
	}
	return n, nil
}
