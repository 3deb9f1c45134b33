package jsonir

import (
	"reflect"

	gojson "github.com/goccy/go-json"

	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/ir"
)

// Emit serializes doc as indented JSON, per spec.md §6.3: one document with
// one array per resource kind.
func Emit(doc *ir.IR) ([]byte, error) {
	filled := *doc
	v := reflect.ValueOf(&filled).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.Slice && f.IsNil() {
			f.Set(reflect.MakeSlice(f.Type(), 0, 0))
		}
	}
	out, err := gojson.MarshalIndent(&filled, "", "  ")
	if err != nil {
		return nil, diag.IOError("<json ir>", err)
	}
	return out, nil
}
