package compilerapp

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/loader"
)

const validSchema = `
table "users" {
  column "id" {
    type = "serial"
  }
  primary_key {
    columns = ["id"]
  }
}
`

func TestValidateSucceedsAndPrintsCounts(t *testing.T) {
	ld := loader.Memory{"schema/main.hcl": validSchema}
	var out, errOut bytes.Buffer
	cfg, err := NewConfig(Config{InputPath: "schema/main.hcl"})
	require.NoError(t, err)

	app := NewApp(&out, &errOut, cfg, ld)
	require.Nil(t, app.Validate(context.Background()))
	assert.Contains(t, out.String(), "1 tables")
}

func TestValidateReturnsDiagErrorOnParseFailure(t *testing.T) {
	ld := loader.Memory{"schema/main.hcl": `table "users" { column "id" {`}
	var out, errOut bytes.Buffer
	cfg, err := NewConfig(Config{InputPath: "schema/main.hcl"})
	require.NoError(t, err)

	app := NewApp(&out, &errOut, cfg, ld)
	derr := app.Validate(context.Background())
	require.NotNil(t, derr)
	assert.Equal(t, diag.KindParseError, derr.Kind)
}

func TestCreateMigrationWritesPostgresToStdoutByDefault(t *testing.T) {
	ld := loader.Memory{"schema/main.hcl": validSchema}
	var out, errOut bytes.Buffer
	cfg, err := NewConfig(Config{InputPath: "schema/main.hcl", Backend: "postgres"})
	require.NoError(t, err)

	app := NewApp(&out, &errOut, cfg, ld)
	require.Nil(t, app.CreateMigration(context.Background()))
	assert.Contains(t, out.String(), `CREATE TABLE IF NOT EXISTS "public"."users"`)
}

func TestCreateMigrationRejectsUnknownBackend(t *testing.T) {
	ld := loader.Memory{"schema/main.hcl": validSchema}
	var out, errOut bytes.Buffer
	cfg, err := NewConfig(Config{InputPath: "schema/main.hcl", Backend: "mongo"})
	require.NoError(t, err)

	app := NewApp(&out, &errOut, cfg, ld)
	derr := app.CreateMigration(context.Background())
	require.NotNil(t, derr)
}

func TestFormatRewritesFileInPlace(t *testing.T) {
	ld := loader.Memory{"schema/main.hcl": `table "users" {}`}
	var out, errOut bytes.Buffer
	cfg, err := NewConfig(Config{InputPath: "<fmt>"})
	require.NoError(t, err)

	app := NewApp(&out, &errOut, cfg, ld)
	errs := app.Format(context.Background(), []string{"schema/main.hcl"})
	assert.Empty(t, errs)
}
