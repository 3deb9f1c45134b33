package funcs

import (
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Registry returns the complete, fixed set of builtins callable from
// expressions. Callers should treat the returned map as read-only; Registry
// always constructs a fresh one.
func Registry() map[string]function.Function {
	reg := map[string]function.Function{
		// String
		"upper":      stdlib.UpperFunc,
		"lower":      stdlib.LowerFunc,
		"length":     stdlib.LengthFunc,
		"substr":     stdlib.SubstrFunc,
		"trim":       stdlib.TrimSpaceFunc,
		"contains":   containsFunc,
		"startswith": startsWithFunc,
		"endswith":   endsWithFunc,
		"replace":    replaceFunc,

		// Numeric
		"min": stdlib.MinFunc,
		"max": stdlib.MaxFunc,
		"abs": stdlib.AbsoluteFunc,

		// Collections
		"concat":   stdlib.ConcatFunc,
		"flatten":  stdlib.FlattenFunc,
		"distinct": stdlib.DistinctFunc,
		"slice":    stdlib.SliceFunc,
		"sort":     stdlib.SortFunc,
		"reverse":  stdlib.ReverseListFunc,
		"index":    stdlib.IndexFunc,

		// Misc
		"coalesce": stdlib.CoalesceFunc,
		"join":     stdlib.JoinFunc,
		"split":    stdlib.SplitFunc,

		// Conversion
		"tostring": toStringFunc,
		"tonumber": toNumberFunc,
		"tobool":   toBoolFunc,
		"tolist":   toListFunc,
		"tomap":    toMapFunc,

		// Crypto / encoding
		"md5":          md5Func,
		"sha256":       sha256Func,
		"sha512":       sha512Func,
		"base64encode": base64EncodeFunc,
		"base64decode": base64DecodeFunc,

		// Datetime
		"timestamp":  timestampFunc,
		"formatdate": stdlib.FormatDateFunc,
		"timeadd":    stdlib.TimeAddFunc,
		"timecmp":    timeCmpFunc,
	}
	return reg
}
