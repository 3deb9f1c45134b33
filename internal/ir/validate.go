package ir

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/dbschema/dbschema/internal/diag"
)

const maxIdentifierLength = 63

type reportFunc func(ignore func(string) bool, rule string, err *diag.Error)

// Validate runs the post-build invariant checks spec.md §3.7 lists: schema
// references resolve, strict-mode column types resolve to a known built-in
// or declared enum/domain/composite type, foreign keys match column counts,
// primary-key columns exist and are non-nullable, and identifier lengths
// stay within Postgres's 63-byte limit. Fatal problems are returned as
// errors; everything else is appended to warnings unless strict is set, in
// which case every finding here is fatal.
func Validate(ir *IR, strict bool) (errs []*diag.Error, warnings []*diag.Error) {
	schemas := ir.DeclaredSchemas()

	report := func(ignore func(string) bool, rule string, err *diag.Error) {
		if ignore != nil && ignore(rule) {
			return
		}
		if strict {
			errs = append(errs, err)
			return
		}
		warnings = append(warnings, err)
	}

	for _, t := range ir.Tables {
		rng := rangePtr(t.Range)
		validateIdentifier(report, t.Ignores, "table", t.Name, rng)
		if !schemas[t.SchemaOrPublic()] {
			report(t.Ignores, "undeclared_schema", &diag.Error{
				Kind:    diag.KindUnknownReference,
				Message: fmt.Sprintf("table %q references undeclared schema %q", t.Name, t.SchemaOrPublic()),
				Range:   rng,
			})
		}
		colSet := map[string]*Column{}
		for i := range t.Columns {
			c := &t.Columns[i]
			colSet[c.Name] = c
			validateIdentifier(report, t.Ignores, "column", t.Name+"."+c.Name, rng)
			validateColumnType(ir, report, t, c, rng)
		}
		if t.PrimaryKey != nil {
			for _, col := range t.PrimaryKey.Columns {
				c, ok := colSet[col]
				if !ok {
					errs = append(errs, &diag.Error{
						Kind:    diag.KindUnknownReference,
						Message: fmt.Sprintf("table %q primary key references undefined column %q", t.Name, col),
						Range:   rng,
					})
					continue
				}
				if c.Nullable {
					report(t.Ignores, "nullable_primary_key", &diag.Error{
						Kind:    diag.KindTypeMismatch,
						Message: fmt.Sprintf("table %q primary key column %q must not be nullable", t.Name, col),
						Range:   rng,
					})
				}
			}
		}
		for _, fk := range t.ForeignKeys {
			if len(fk.Columns) != len(fk.RefColumns) {
				errs = append(errs, &diag.Error{
					Kind: diag.KindArityMismatch,
					Message: fmt.Sprintf(
						"table %q foreign key %q has %d column(s) but references %d column(s)",
						t.Name, fk.Name, len(fk.Columns), len(fk.RefColumns),
					),
					Range: rng,
				})
				continue
			}
			for _, col := range fk.Columns {
				if _, ok := colSet[col]; !ok {
					errs = append(errs, &diag.Error{
						Kind:    diag.KindUnknownReference,
						Message: fmt.Sprintf("table %q foreign key %q references undefined column %q", t.Name, fk.Name, col),
						Range:   rng,
					})
				}
			}
			refSchema, refName := splitSchemaQualified(fk.RefTable, t.SchemaOrPublic())
			if ref, ok := ir.TableByQualifiedName(refSchema, refName); ok {
				refCols := map[string]bool{}
				for _, c := range ref.Columns {
					refCols[c.Name] = true
				}
				for _, col := range fk.RefColumns {
					if !refCols[col] {
						errs = append(errs, &diag.Error{
							Kind:    diag.KindUnknownReference,
							Message: fmt.Sprintf("table %q foreign key %q references undefined column %q on %q", t.Name, fk.Name, col, fk.RefTable),
							Range:   rng,
						})
					}
				}
			} else {
				report(t.Ignores, "unresolved_foreign_key", &diag.Error{
					Kind:    diag.KindUnknownReference,
					Message: fmt.Sprintf("table %q foreign key %q references unknown table %q", t.Name, fk.Name, fk.RefTable),
					Range:   rng,
				})
			}
		}
	}

	for _, idx := range ir.Indexes {
		rng := rangePtr(idx.Range)
		if _, ok := ir.TableByQualifiedName(idx.SchemaOrPublic(), idx.Table); !ok {
			errs = append(errs, &diag.Error{
				Kind:    diag.KindUnknownReference,
				Message: fmt.Sprintf("index %q references unknown table %q", idx.Name, idx.Table),
				Range:   rng,
			})
		}
		validateIdentifier(report, idx.Ignores, "index", idx.Name, rng)
	}

	for _, trig := range ir.Triggers {
		rng := rangePtr(trig.Range)
		if _, ok := ir.TableByQualifiedName(trig.SchemaOrPublic(), trig.Table); !ok {
			errs = append(errs, &diag.Error{
				Kind:    diag.KindUnknownReference,
				Message: fmt.Sprintf("trigger %q references unknown table %q", trig.Name, trig.Table),
				Range:   rng,
			})
		}
	}

	for _, v := range ir.Views {
		validateIdentifier(report, v.Ignores, "view", v.Name, rangePtr(v.Range))
	}
	for _, v := range ir.Functions {
		validateIdentifier(report, v.Ignores, "function", v.Name, rangePtr(v.Range))
	}

	conflicts := ir.CheckConflicts()
	errs = append(errs, conflicts...)

	return errs, warnings
}

func rangePtr(r hcl.Range) *hcl.Range {
	return &r
}

func validateIdentifier(report reportFunc, ignore func(string) bool, kind, name string, rng *hcl.Range) {
	if len(name) > maxIdentifierLength {
		report(ignore, "long_identifier", &diag.Error{
			Kind:    diag.KindTypeMismatch,
			Message: fmt.Sprintf("%s identifier %q exceeds %d bytes and will be truncated by Postgres", kind, name, maxIdentifierLength),
			Range:   rng,
		})
	}
}

func validateColumnType(ir *IR, report reportFunc, t Table, c *Column, rng *hcl.Range) {
	if builtinColumnTypes[c.Type] {
		return
	}
	if ir.HasEnumDomainOrCompositeType(t.SchemaOrPublic(), c.Type) {
		return
	}
	report(t.Ignores, "unrecognized_column_type", &diag.Error{
		Kind:    diag.KindTypeMismatch,
		Message: fmt.Sprintf("table %q column %q has unrecognized type %q", t.Name, c.Name, c.Type),
		Range:   rng,
	})
}

func splitSchemaQualified(name, fallbackSchema string) (schema, table string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return fallbackSchema, name
}

// builtinColumnTypes lists the Postgres built-in type names spec.md's column
// type validation recognizes without requiring a declared enum/domain/
// composite type.
var builtinColumnTypes = map[string]bool{
	"text": true, "varchar": true, "char": true, "citext": true,
	"integer": true, "int": true, "int4": true, "bigint": true, "int8": true,
	"smallint": true, "int2": true, "numeric": true, "decimal": true,
	"real": true, "float4": true, "double precision": true, "float8": true,
	"boolean": true, "bool": true,
	"date": true, "time": true, "timestamp": true, "timestamptz": true,
	"timestamp with time zone": true, "timestamp without time zone": true,
	"interval": true, "uuid": true, "json": true, "jsonb": true,
	"bytea": true, "inet": true, "cidr": true, "macaddr": true,
	"point": true, "line": true, "polygon": true, "circle": true,
	"serial": true, "bigserial": true, "smallserial": true,
	"money": true, "xml": true, "tsvector": true, "tsquery": true,
}
