package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbschema/dbschema/internal/diag"
)

// tableWithUnknownColumnType builds an IR with one table whose "status"
// column references a type that is never declared as an enum, domain, or
// composite type — spec.md §8 scenario 5.
func tableWithUnknownColumnType() *IR {
	return &IR{
		Tables: []Table{
			{
				Meta: Meta{Name: "accounts"},
				Columns: []Column{
					{Name: "id", Type: "serial"},
					{Name: "status", Type: "StatusType"},
				},
			},
		},
	}
}

func TestValidateUnrecognizedColumnTypeIsAWarningByDefault(t *testing.T) {
	ir := tableWithUnknownColumnType()

	errs, warnings := Validate(ir, false)
	assert.Empty(t, errs)
	require.NotEmpty(t, warnings)
	assert.Equal(t, diag.KindTypeMismatch, warnings[0].Kind)
	assert.Contains(t, warnings[0].Error(), `"StatusType"`)
}

func TestValidateUnrecognizedColumnTypeIsFatalInStrictMode(t *testing.T) {
	ir := tableWithUnknownColumnType()

	errs, warnings := Validate(ir, true)
	assert.Empty(t, warnings)
	require.NotEmpty(t, errs)
	assert.Equal(t, diag.KindTypeMismatch, errs[0].Kind)
	assert.Contains(t, errs[0].Error(), `"StatusType"`)
}

func TestValidateDeclaredEnumSatisfiesColumnType(t *testing.T) {
	ir := &IR{
		Enums: []Enum{
			{Meta: Meta{Name: "StatusType"}, Values: []string{"active", "inactive"}},
		},
		Tables: []Table{
			{
				Meta: Meta{Name: "accounts"},
				Columns: []Column{
					{Name: "id", Type: "serial"},
					{Name: "status", Type: "StatusType"},
				},
			},
		},
	}

	errs, warnings := Validate(ir, true)
	assert.Empty(t, errs)
	assert.Empty(t, warnings)
}

func TestValidateLintIgnoreSuppressesUnrecognizedColumnTypeEvenInStrictMode(t *testing.T) {
	ir := tableWithUnknownColumnType()
	ir.Tables[0].LintIgnore = map[string]bool{"unrecognized_column_type": true}

	errs, warnings := Validate(ir, true)
	assert.Empty(t, errs)
	assert.Empty(t, warnings)
}

func TestValidateForeignKeyArityMismatchIsAlwaysFatal(t *testing.T) {
	ir := &IR{
		Tables: []Table{
			{
				Meta:    Meta{Name: "orders"},
				Columns: []Column{{Name: "customer_id", Type: "integer"}},
				ForeignKeys: []ForeignKey{
					{Name: "fk_customer", Columns: []string{"customer_id"}, RefTable: "customers", RefColumns: []string{"id", "region"}},
				},
			},
		},
	}

	errs, _ := Validate(ir, false)
	require.NotEmpty(t, errs)
	assert.Equal(t, diag.KindArityMismatch, errs[0].Kind)
}

func TestValidateDuplicateTableNamesIsAnEmitConflict(t *testing.T) {
	ir := &IR{
		Tables: []Table{
			{Meta: Meta{Name: "accounts"}},
			{Meta: Meta{Name: "accounts"}},
		},
	}

	errs, _ := Validate(ir, false)
	require.NotEmpty(t, errs)
	assert.Equal(t, diag.KindEmitConflict, errs[0].Kind)
}
