package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

func generateViews(b *strings.Builder, views []ir.View) {
	for _, v := range views {
		name := qualified(v.SchemaOrPublic(), v.Name)
		b.WriteString("CREATE")
		if v.Replace {
			b.WriteString(" OR REPLACE")
		}
		b.WriteString(fmt.Sprintf(" VIEW %s", name))
		if len(v.Columns) > 0 {
			b.WriteString(fmt.Sprintf(" (%s)", quoteIdentList(v.Columns)))
		}
		b.WriteString(fmt.Sprintf(" AS\n%s;\n\n", v.Query))
	}
}

func generateMaterializedViews(b *strings.Builder, views []ir.MaterializedView) {
	for _, v := range views {
		name := qualified(v.SchemaOrPublic(), v.Name)
		b.WriteString(fmt.Sprintf("CREATE MATERIALIZED VIEW IF NOT EXISTS %s AS\n%s\n", name, v.Query))
		if v.WithData {
			b.WriteString("WITH DATA;\n\n")
		} else {
			b.WriteString("WITH NO DATA;\n\n")
		}
	}
}
