package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

func generateTables(b *strings.Builder, tables []ir.Table) {
	for _, t := range tables {
		name := qualified(t.SchemaOrPublic(), t.Name)
		b.WriteString("CREATE")
		if t.Unlogged {
			b.WriteString(" UNLOGGED")
		}
		b.WriteString(" TABLE")
		if t.IfNotExists {
			b.WriteString(" IF NOT EXISTS")
		}
		b.WriteString(fmt.Sprintf(" %s (\n", name))

		var lines []string
		for _, c := range t.Columns {
			lines = append(lines, "  "+generateColumnDef(c))
		}
		if t.PrimaryKey != nil && len(t.PrimaryKey.Columns) > 0 {
			lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", quoteIdentList(t.PrimaryKey.Columns)))
		}
		for _, fk := range t.ForeignKeys {
			lines = append(lines, "  "+generateForeignKeyDef(fk))
		}
		for _, chk := range t.Checks {
			lines = append(lines, "  "+generateCheckDef(chk))
		}

		b.WriteString(strings.Join(lines, ",\n"))
		b.WriteString("\n);\n\n")
	}
}

func generateColumnDef(c ir.Column) string {
	var sb strings.Builder
	sb.WriteString(quoteIdent(c.Name))
	sb.WriteString(" ")
	sb.WriteString(c.Type)
	if c.Collation != "" {
		sb.WriteString(fmt.Sprintf(" COLLATE %s", quoteIdent(c.Collation)))
	}
	if !c.Nullable {
		sb.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		sb.WriteString(fmt.Sprintf(" DEFAULT %s", c.Default))
	}
	if c.Unique {
		sb.WriteString(" UNIQUE")
	}
	return sb.String()
}

func generateForeignKeyDef(fk ir.ForeignKey) string {
	var sb strings.Builder
	if fk.Name != "" {
		sb.WriteString(fmt.Sprintf("CONSTRAINT %s ", quoteIdent(fk.Name)))
	}
	sb.WriteString(fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
		quoteIdentList(fk.Columns), fk.RefTable, quoteIdentList(fk.RefColumns)))
	if fk.OnDelete != "" && fk.OnDelete != "NO ACTION" {
		sb.WriteString(fmt.Sprintf(" ON DELETE %s", fk.OnDelete))
	}
	if fk.OnUpdate != "" && fk.OnUpdate != "NO ACTION" {
		sb.WriteString(fmt.Sprintf(" ON UPDATE %s", fk.OnUpdate))
	}
	return sb.String()
}

func generateCheckDef(c ir.Check) string {
	if c.Name != "" {
		return fmt.Sprintf("CONSTRAINT %s CHECK (%s)", quoteIdent(c.Name), c.Expression)
	}
	return fmt.Sprintf("CHECK (%s)", c.Expression)
}

func generateIndexes(b *strings.Builder, indexes []ir.Index) {
	for _, idx := range indexes {
		b.WriteString("CREATE")
		if idx.Unique {
			b.WriteString(" UNIQUE")
		}
		b.WriteString(fmt.Sprintf(" INDEX IF NOT EXISTS %s ON %s", quoteIdent(idx.Name), qualified(idx.SchemaOrPublic(), idx.Table)))
		if idx.Method != "" {
			b.WriteString(fmt.Sprintf(" USING %s", idx.Method))
		}
		b.WriteString(fmt.Sprintf(" (%s)", quoteIdentList(idx.Columns)))
		if idx.Where != "" {
			b.WriteString(fmt.Sprintf(" WHERE %s", idx.Where))
		}
		b.WriteString(";\n")
	}
	if len(indexes) > 0 {
		b.WriteString("\n")
	}
}
