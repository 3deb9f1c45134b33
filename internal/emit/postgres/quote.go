package postgres

import "strings"

// quoteIdent double-quotes a SQL identifier, escaping embedded quotes, per
// spec.md 4.I's "every identifier is emitted double-quoted".
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// qualified double-quotes a schema-qualified identifier as "schema"."name".
func qualified(schema, name string) string {
	return quoteIdent(schema) + "." + quoteIdent(name)
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdentList(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = quoteIdent(n)
	}
	return strings.Join(out, ", ")
}
