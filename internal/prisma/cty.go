package prisma

import "github.com/zclconf/go-cty/cty"

// ToCtyValue renders the schema into the structured object the spec's
// prisma_schema data source exposes:
//
//	{ models: {<ModelName>: {name, fields: [...], attributes: [...]}},
//	  enums:  {<EnumName>: {name, values, attributes}} }
func (s *Schema) ToCtyValue() cty.Value {
	models := map[string]cty.Value{}
	for _, m := range s.Models {
		models[m.Name] = modelToCty(m)
	}
	enums := map[string]cty.Value{}
	for _, e := range s.Enums {
		enums[e.Name] = enumToCty(e)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"models": objectOrEmpty(models),
		"enums":  objectOrEmpty(enums),
	})
}

func modelToCty(m Model) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"name":       cty.StringVal(m.Name),
		"fields":     fieldsToCty(m.Fields),
		"attributes": stringsToCty(m.Attributes),
	})
}

func fieldsToCty(fields []Field) cty.Value {
	if len(fields) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(fields))
	for i, f := range fields {
		vals[i] = cty.ObjectVal(map[string]cty.Value{
			"name":       cty.StringVal(f.Name),
			"type":       cty.StringVal(f.Type),
			"optional":   cty.BoolVal(f.Optional),
			"list":       cty.BoolVal(f.List),
			"attributes": stringsToCty(f.Attributes),
		})
	}
	return cty.TupleVal(vals)
}

func enumToCty(e Enum) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"name":       cty.StringVal(e.Name),
		"values":     stringsToCty(e.Values),
		"attributes": stringsToCty(e.Attributes),
	})
}

func stringsToCty(values []string) cty.Value {
	if len(values) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.TupleVal(vals)
}

func objectOrEmpty(m map[string]cty.Value) cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(m)
}
