package prisma

import (
	"fmt"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

// Emit renders doc's enum and table resources as a Prisma schema. Every
// other kind spec.md 4.J excludes ("no functions/triggers/extensions are
// emitted") is untouched even if doc carries it.
func Emit(doc *ir.IR) string {
	var b strings.Builder

	enumNames := map[string]string{}
	for _, e := range doc.Enums {
		enumNames[e.Name] = e.Name
	}

	for i, e := range doc.Enums {
		if i > 0 {
			b.WriteString("\n")
		}
		generateEnum(&b, e)
	}
	if len(doc.Enums) > 0 && len(doc.Tables) > 0 {
		b.WriteString("\n")
	}
	for i, t := range doc.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		generateModel(&b, t, enumNames)
	}

	return b.String()
}

func generateEnum(b *strings.Builder, e ir.Enum) {
	b.WriteString(fmt.Sprintf("enum %s {\n", e.Name))
	for _, v := range e.Values {
		b.WriteString(fmt.Sprintf("  %s\n", v))
	}
	b.WriteString("}\n")
}

func generateModel(b *strings.Builder, t ir.Table, enumNames map[string]string) {
	b.WriteString(fmt.Sprintf("model %s {\n", t.Name))

	pkCols := map[string]bool{}
	singlePK := false
	if t.PrimaryKey != nil {
		for _, c := range t.PrimaryKey.Columns {
			pkCols[c] = true
		}
		singlePK = len(t.PrimaryKey.Columns) == 1
	}

	for _, c := range t.Columns {
		generateField(b, c, enumNames, singlePK && pkCols[c.Name])
	}

	for _, fk := range t.ForeignKeys {
		generateRelationField(b, fk)
	}

	if !singlePK && t.PrimaryKey != nil && len(t.PrimaryKey.Columns) > 1 {
		b.WriteString(fmt.Sprintf("\n  @@id([%s])\n", strings.Join(t.PrimaryKey.Columns, ", ")))
	}

	b.WriteString("}\n")
}

func generateField(b *strings.Builder, c ir.Column, enumNames map[string]string, isSinglePK bool) {
	prismaType, attrs := resolveFieldType(c, enumNames)

	if isSinglePK && !hasAttr(attrs, "@id") {
		attrs = append([]string{"@id"}, attrs...)
	}
	if c.Unique && !hasAttr(attrs, "@unique") && !isSinglePK {
		attrs = append(attrs, "@unique")
	}

	typeStr := prismaType
	if c.Nullable && !isSinglePK {
		typeStr += "?"
	}

	b.WriteString(fmt.Sprintf("  %s %s", c.Name, typeStr))
	if len(attrs) > 0 {
		b.WriteString(" " + strings.Join(attrs, " "))
	}
	b.WriteString("\n")
}

// resolveFieldType maps c's Postgres type through the fixed table, falling
// back to an enum reference when the type names a declared enum, per
// spec.md 4.J's "enum-name → enum reference".
func resolveFieldType(c ir.Column, enumNames map[string]string) (string, []string) {
	bt := baseType(c.Type)
	if mapped, ok := columnTypeMap[bt]; ok {
		return mapped.prismaType, append([]string{}, mapped.attrs...)
	}
	if enumName, ok := enumNames[c.Type]; ok {
		return enumName, nil
	}
	return "String", nil
}

// generateRelationField emits the scalar-field-backed relation Prisma
// requires for a foreign key, per spec.md 4.J's "foreign keys become
// @relation clauses".
func generateRelationField(b *strings.Builder, fk ir.ForeignKey) {
	fieldName := relationFieldName(fk)
	b.WriteString(fmt.Sprintf("  %s %s @relation(fields: [%s], references: [%s])\n",
		fieldName, fk.RefTable, strings.Join(fk.Columns, ", "), strings.Join(fk.RefColumns, ", ")))
}

func relationFieldName(fk ir.ForeignKey) string {
	if fk.Name != "" {
		return fk.Name
	}
	return strings.ToLower(fk.RefTable)
}

func hasAttr(attrs []string, name string) bool {
	for _, a := range attrs {
		if a == name {
			return true
		}
	}
	return false
}
