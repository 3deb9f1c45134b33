package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbschema/dbschema/internal/ir"
)

func TestEmitSimpleTable(t *testing.T) {
	doc := &ir.IR{
		Tables: []ir.Table{
			{
				Meta:        ir.Meta{Name: "users"},
				IfNotExists: true,
				Columns: []ir.Column{
					{Name: "id", Type: "serial", Nullable: false},
					{Name: "email", Type: "text", Nullable: false},
				},
				PrimaryKey: &ir.PrimaryKey{Columns: []string{"id"}},
			},
		},
		Indexes: []ir.Index{
			{Meta: ir.Meta{Name: "users_email_key"}, Table: "users", Columns: []string{"email"}, Unique: true, Method: "btree"},
		},
	}

	out := Emit(doc, Options{})

	assert.Contains(t, out, `CREATE TABLE IF NOT EXISTS "public"."users"`)
	assert.Contains(t, out, `"id" serial NOT NULL`)
	assert.Contains(t, out, `PRIMARY KEY ("id")`)
	assert.Contains(t, out, `CREATE UNIQUE INDEX IF NOT EXISTS "users_email_key" ON "public"."users"`)

	tableIdx := indexOf(t, out, "CREATE TABLE")
	indexIdx := indexOf(t, out, "CREATE UNIQUE INDEX")
	assert.Less(t, tableIdx, indexIdx, "tables must emit before indexes")
}

func TestEmitOrderExtensionsBeforeTables(t *testing.T) {
	doc := &ir.IR{
		Extensions: []ir.Extension{{Meta: ir.Meta{Name: "pgcrypto"}}},
		Tables:     []ir.Table{{Meta: ir.Meta{Name: "widgets"}, IfNotExists: true}},
	}
	out := Emit(doc, Options{})
	assert.Less(t, indexOf(t, out, "CREATE EXTENSION"), indexOf(t, out, "CREATE TABLE"))
}

func TestEmitEnumIsGuarded(t *testing.T) {
	doc := &ir.IR{
		Enums: []ir.Enum{{Meta: ir.Meta{Name: "status"}, Values: []string{"active", "inactive"}}},
	}
	out := Emit(doc, Options{})
	assert.Contains(t, out, "DO $$ BEGIN")
	assert.Contains(t, out, `CREATE TYPE "public"."status" AS ENUM ('active', 'inactive')`)
	assert.Contains(t, out, "EXCEPTION WHEN duplicate_object THEN NULL")
}

func TestEmitTriggerIsGuardedOnPgTrigger(t *testing.T) {
	doc := &ir.IR{
		Triggers: []ir.Trigger{{
			Meta: ir.Meta{Name: "set_updated_at"}, Table: "widgets", Timing: "BEFORE",
			Events: []string{"UPDATE"}, Level: "ROW", Function: "touch_updated_at",
		}},
	}
	out := Emit(doc, Options{})
	assert.Contains(t, out, "SELECT 1 FROM pg_trigger")
	assert.Contains(t, out, `CREATE TRIGGER "set_updated_at"`)
	assert.Contains(t, out, "BEFORE UPDATE ON")
}

func TestEmitFunctionUsesCreateOrReplace(t *testing.T) {
	doc := &ir.IR{
		Functions: []ir.Function{{
			Meta: ir.Meta{Name: "touch_updated_at"}, Replace: true,
			Returns: "trigger", Language: "plpgsql", Body: "BEGIN RETURN NEW; END;",
		}},
	}
	out := Emit(doc, Options{})
	assert.Contains(t, out, `CREATE OR REPLACE FUNCTION "public"."touch_updated_at"()`)
}

func TestEmitPolicyEnablesRowLevelSecurityOncePerTable(t *testing.T) {
	doc := &ir.IR{
		Policies: []ir.Policy{
			{Meta: ir.Meta{Name: "owner_only"}, Table: "widgets", Command: "ALL", Permissive: true},
			{Meta: ir.Meta{Name: "admin_all"}, Table: "widgets", Command: "ALL", Permissive: true},
		},
	}
	out := Emit(doc, Options{})
	assert.Equal(t, 1, countOccurrences(out, "ENABLE ROW LEVEL SECURITY"))
	assert.Equal(t, 2, countOccurrences(out, "CREATE POLICY"))
}

func TestEmitFiltersByIncludeExclude(t *testing.T) {
	doc := &ir.IR{
		Extensions: []ir.Extension{{Meta: ir.Meta{Name: "pgcrypto"}}},
		Tables:     []ir.Table{{Meta: ir.Meta{Name: "widgets"}, IfNotExists: true}},
	}

	out := Emit(doc, Options{Exclude: map[string]bool{"extension": true}})
	assert.NotContains(t, out, "CREATE EXTENSION")
	assert.Contains(t, out, "CREATE TABLE")

	out = Emit(doc, Options{Include: map[string]bool{"table": true}})
	assert.NotContains(t, out, "CREATE EXTENSION")
	assert.Contains(t, out, "CREATE TABLE")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	require.Fail(t, "substring not found", "%q not found in output", needle)
	return -1
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
		}
	}
	return count
}
