package prisma

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbschema/dbschema/internal/ir"
)

func TestEmitEnumAndModel(t *testing.T) {
	doc := &ir.IR{
		Enums: []ir.Enum{{Meta: ir.Meta{Name: "Status"}, Values: []string{"active", "inactive"}}},
		Tables: []ir.Table{
			{
				Meta: ir.Meta{Name: "users"},
				Columns: []ir.Column{
					{Name: "id", Type: "serial", Nullable: false},
					{Name: "email", Type: "text", Nullable: false},
					{Name: "status", Type: "Status", Nullable: false},
					{Name: "created_at", Type: "timestamptz", Nullable: false},
				},
				PrimaryKey: &ir.PrimaryKey{Columns: []string{"id"}},
			},
		},
	}

	out := Emit(doc)

	assert.Contains(t, out, "enum Status {\n  active\n  inactive\n}")
	assert.Contains(t, out, "model users {")
	assert.Contains(t, out, "id Int @id @default(autoincrement())")
	assert.Contains(t, out, "email String")
	assert.Contains(t, out, "status Status")
	assert.Contains(t, out, "created_at DateTime")
}

func TestEmitForeignKeyBecomesRelation(t *testing.T) {
	doc := &ir.IR{
		Tables: []ir.Table{
			{Meta: ir.Meta{Name: "users"}, Columns: []ir.Column{{Name: "id", Type: "serial"}}, PrimaryKey: &ir.PrimaryKey{Columns: []string{"id"}}},
			{
				Meta: ir.Meta{Name: "orders"},
				Columns: []ir.Column{
					{Name: "id", Type: "serial"},
					{Name: "user_id", Type: "integer"},
				},
				PrimaryKey: &ir.PrimaryKey{Columns: []string{"id"}},
				ForeignKeys: []ir.ForeignKey{
					{Name: "user", Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}},
				},
			},
		},
	}

	out := Emit(doc)
	assert.Contains(t, out, "user_id Int")
	assert.Contains(t, out, "user users @relation(fields: [user_id], references: [id])")
}

func TestEmitExcludesFunctionsAndTriggers(t *testing.T) {
	doc := &ir.IR{
		Enums:  []ir.Enum{{Meta: ir.Meta{Name: "Status"}, Values: []string{"a"}}},
		Tables: []ir.Table{{Meta: ir.Meta{Name: "widgets"}}},
		Functions: []ir.Function{
			{Meta: ir.Meta{Name: "touch_updated_at"}, Returns: "trigger", Language: "plpgsql", Body: "BEGIN END;"},
		},
		Triggers: []ir.Trigger{
			{Meta: ir.Meta{Name: "set_updated_at"}, Table: "widgets", Function: "touch_updated_at"},
		},
	}

	out := Emit(doc)
	assert.Contains(t, out, "enum Status")
	assert.Contains(t, out, "model widgets")
	assert.NotContains(t, out, "touch_updated_at")
	assert.NotContains(t, out, "CREATE")
}
