package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandExitsZeroOnSuccess(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(input, []byte(`
table "users" {
  column "id" { type = "serial" }
  primary_key { columns = ["id"] }
}
`), 0o644))

	var out, errOut bytes.Buffer
	root := NewRootCmd(&out, &errOut)
	root.SetArgs([]string{"validate", "--input", input})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 tables")
}

func TestValidateCommandReturnsExitErrorOnBadVariable(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(input, []byte(`
variable "count" {
  type    = number
  default = 0
  validation {
    condition     = var.count > 0
    error_message = "count must be positive"
  }
}
`), 0o644))

	var out, errOut bytes.Buffer
	root := NewRootCmd(&out, &errOut)
	root.SetArgs([]string{"validate", "--input", input})

	err := root.Execute()
	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok, "expected *ExitError, got %T", err)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "count must be positive")
}

func TestCreateMigrationWritesFileToOutDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(input, []byte(`
table "users" {
  column "id" { type = "serial" }
  primary_key { columns = ["id"] }
}
`), 0o644))
	outDir := filepath.Join(dir, "migrations")

	var out, errOut bytes.Buffer
	root := NewRootCmd(&out, &errOut)
	root.SetArgs([]string{"create-migration", "--input", input, "--backend", "postgres", "--out-dir", outDir, "--name", "init"})

	require.NoError(t, root.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "init.sql")
}

func TestFmtCommandRewritesFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(input, []byte(`table "users" {}`), 0o644))

	var out, errOut bytes.Buffer
	root := NewRootCmd(&out, &errOut)
	root.SetArgs([]string{"fmt", input})

	require.NoError(t, root.Execute())
}
