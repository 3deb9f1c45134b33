package prisma

import "strings"

// columnType is one entry of the fixed Postgres-to-Prisma type mapping
// spec.md 4.J names: "serial → Int @id @default(autoincrement()), text →
// String, timestamptz → DateTime, uuid → String @db.Uuid, ...".
type columnType struct {
	prismaType string
	attrs      []string
}

var columnTypeMap = map[string]columnType{
	"serial":            {"Int", []string{"@id", "@default(autoincrement())"}},
	"bigserial":         {"BigInt", []string{"@id", "@default(autoincrement())"}},
	"smallserial":       {"Int", []string{"@id", "@default(autoincrement())"}},
	"text":              {"String", nil},
	"varchar":           {"String", nil},
	"character varying": {"String", nil},
	"char":              {"String", nil},
	"character":         {"String", nil},
	"integer":           {"Int", nil},
	"int":               {"Int", nil},
	"int4":              {"Int", nil},
	"bigint":            {"BigInt", nil},
	"int8":              {"BigInt", nil},
	"smallint":          {"Int", nil},
	"int2":              {"Int", nil},
	"boolean":           {"Boolean", nil},
	"bool":              {"Boolean", nil},
	"real":              {"Float", nil},
	"double precision":  {"Float", nil},
	"float8":            {"Float", nil},
	"numeric":           {"Decimal", nil},
	"decimal":           {"Decimal", nil},
	"timestamptz":       {"DateTime", nil},
	"timestamp":         {"DateTime", nil},
	"timestamp with time zone":    {"DateTime", nil},
	"timestamp without time zone": {"DateTime", nil},
	"date":                        {"DateTime", []string{"@db.Date"}},
	"uuid":                        {"String", []string{"@db.Uuid"}},
	"json":                        {"Json", nil},
	"jsonb":                       {"Json", nil},
	"bytea":                       {"Bytes", nil},
}

// baseType strips a size/precision specifier ("varchar(255)" -> "varchar")
// and lowercases, so the lookup above matches regardless of how the column
// was declared.
func baseType(colType string) string {
	t := strings.ToLower(strings.TrimSpace(colType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
