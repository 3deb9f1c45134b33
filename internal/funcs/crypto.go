package funcs

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

func hashFunc(sum func([]byte) []byte) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "s", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			digest := sum([]byte(args[0].AsString()))
			return cty.StringVal(hex.EncodeToString(digest)), nil
		},
	})
}

var (
	md5Func = hashFunc(func(b []byte) []byte {
		sum := md5.Sum(b)
		return sum[:]
	})
	sha256Func = hashFunc(func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	})
	sha512Func = hashFunc(func(b []byte) []byte {
		sum := sha512.Sum512(b)
		return sum[:]
	})
)

var base64EncodeFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "s", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		return cty.StringVal(base64.StdEncoding.EncodeToString([]byte(args[0].AsString()))), nil
	},
})

var base64DecodeFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "s", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		decoded, err := base64.StdEncoding.DecodeString(args[0].AsString())
		if err != nil {
			return cty.UnknownVal(cty.String), err
		}
		return cty.StringVal(string(decoded)), nil
	},
})
