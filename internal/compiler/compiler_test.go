package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/emit/postgres"
	"github.com/dbschema/dbschema/internal/loader"
)

const simpleSchema = `
table "users" {
  column "id" {
    type = "serial"
  }
  column "email" {
    type = "text"
  }
  primary_key {
    columns = ["id"]
  }
}

index "users_email_key" {
  table   = "users"
  columns = ["email"]
  unique  = true
}
`

func TestCompileSimpleTable(t *testing.T) {
	ld := loader.Memory{"schema/main.hcl": simpleSchema}

	result := Compile(ld, "schema/main.hcl", Options{})
	require.Empty(t, result.Errors, "%v", result.Errors)
	require.NotNil(t, result.IR)

	require.Len(t, result.IR.Tables, 1)
	assert.Equal(t, "users", result.IR.Tables[0].Name)
	require.Len(t, result.IR.Indexes, 1)

	out := postgres.Emit(result.IR, postgres.Options{})
	assert.Contains(t, out, `CREATE TABLE IF NOT EXISTS "public"."users"`)
	tableIdx := indexOfFirst(out, "CREATE TABLE")
	indexIdx := indexOfFirst(out, "CREATE UNIQUE INDEX")
	assert.Greater(t, indexIdx, tableIdx)
}

func TestCompileVariableValidationFailureIsAUserError(t *testing.T) {
	ld := loader.Memory{"schema/main.hcl": `
variable "count" {
  type = number
  default = 0
  validation {
    condition     = var.count > 0
    error_message = "count must be positive"
  }
}
`}

	result := Compile(ld, "schema/main.hcl", Options{})
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Error(), "count must be positive")
}

func TestCompileMissingRootFileIsAModuleSourceMissingError(t *testing.T) {
	ld := loader.Memory{}

	result := Compile(ld, "schema/main.hcl", Options{})
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, diag.KindModuleSourceMissing, result.Errors[0].Kind)
}

func indexOfFirst(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
