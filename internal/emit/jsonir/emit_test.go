package jsonir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gojson "github.com/goccy/go-json"

	"github.com/dbschema/dbschema/internal/ir"
)

func TestEmitRoundTrips(t *testing.T) {
	doc := &ir.IR{
		Schemas: []ir.Schema{{Meta: ir.Meta{Name: "billing"}, IfNotExists: true}},
		Tables: []ir.Table{
			{
				Meta:    ir.Meta{Name: "invoices", Schema: "billing"},
				Columns: []ir.Column{{Name: "id", Type: "serial", Nullable: false}},
			},
		},
	}

	out, err := Emit(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"schemas"`)
	assert.Contains(t, string(out), `"tables"`)
	assert.Contains(t, string(out), `"invoices"`)

	var decoded ir.IR
	require.NoError(t, gojson.Unmarshal(out, &decoded))
	assert.Len(t, decoded.Tables, 1)
	assert.Equal(t, "invoices", decoded.Tables[0].Name)
	assert.Equal(t, "billing", decoded.Tables[0].Schema)
}

func TestEmitEmptyIRStillProducesAllArrays(t *testing.T) {
	out, err := Emit(&ir.IR{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"extensions": []`)
	assert.Contains(t, string(out), `"statistics": []`)
}
