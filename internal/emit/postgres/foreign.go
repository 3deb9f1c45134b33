package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

func generateOptionsClause(options map[string]string) string {
	if len(options) == 0 {
		return ""
	}
	keys := sortedKeys(options)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %s", k, quoteLiteral(options[k]))
	}
	return fmt.Sprintf(" OPTIONS (%s)", strings.Join(parts, ", "))
}

func generateForeignDataWrappers(b *strings.Builder, wrappers []ir.ForeignDataWrapper) {
	for _, w := range wrappers {
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE FOREIGN DATA WRAPPER %s", quoteIdent(w.Name)))
		if w.Handler != "" {
			b.WriteString(fmt.Sprintf(" HANDLER %s", w.Handler))
		}
		if w.Validator != "" {
			b.WriteString(fmt.Sprintf(" VALIDATOR %s", w.Validator))
		}
		b.WriteString(";\nEXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
	}
}

func generateForeignServers(b *strings.Builder, servers []ir.ForeignServer) {
	for _, s := range servers {
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE SERVER %s FOREIGN DATA WRAPPER %s%s;\n",
			quoteIdent(s.Name), quoteIdent(s.Wrapper), generateOptionsClause(s.Options)))
		b.WriteString("EXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
	}
}

func generateForeignTables(b *strings.Builder, tables []ir.ForeignTable) {
	for _, t := range tables {
		name := qualified(t.SchemaOrPublic(), t.Name)
		b.WriteString(fmt.Sprintf("CREATE FOREIGN TABLE IF NOT EXISTS %s (\n", name))
		lines := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			lines[i] = "  " + generateColumnDef(c)
		}
		b.WriteString(strings.Join(lines, ",\n"))
		b.WriteString(fmt.Sprintf("\n) SERVER %s%s;\n\n", quoteIdent(t.Server), generateOptionsClause(t.Options)))
	}
}
