package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

// Emit renders doc as a single SQL text buffer, in the fixed order spec.md
// 4.I mandates. Kinds opts excludes are skipped entirely; the caller owns
// pairing include/exclude into a closed subgraph.
func Emit(doc *ir.IR, opts Options) string {
	var b strings.Builder

	if opts.allows("extension") {
		generateExtensions(&b, doc.Extensions)
	}
	if opts.allows("schema") {
		generateSchemas(&b, doc.Schemas)
	}
	if opts.allows("collation") {
		generateCollations(&b, doc.Collations)
	}
	if opts.allows("domain") {
		generateDomains(&b, doc.Domains)
	}
	if opts.allows("composite_type") {
		generateCompositeTypes(&b, doc.CompositeTypes)
	}
	if opts.allows("sequence") {
		generateSequences(&b, doc.Sequences)
	}
	if opts.allows("enum") {
		generateEnums(&b, doc.Enums)
	}
	if opts.allows("table") {
		generateTables(&b, doc.Tables)
	}
	if opts.allows("index") {
		generateIndexes(&b, doc.Indexes)
	}
	if opts.allows("view") {
		generateViews(&b, doc.Views)
	}
	if opts.allows("materialized_view") {
		generateMaterializedViews(&b, doc.MaterializedViews)
	}
	if opts.allows("function") {
		generateFunctions(&b, doc.Functions)
	}
	if opts.allows("procedure") {
		generateProcedures(&b, doc.Procedures)
	}
	if opts.allows("aggregate") {
		generateAggregates(&b, doc.Aggregates)
	}
	if opts.allows("operator") {
		generateOperators(&b, doc.Operators)
	}
	if opts.allows("trigger") {
		generateTriggers(&b, doc.Triggers)
	}
	if opts.allows("event_trigger") {
		generateEventTriggers(&b, doc.EventTriggers)
	}
	if opts.allows("rule") {
		generateRules(&b, doc.Rules)
	}
	if opts.allows("policy") {
		generatePolicies(&b, doc.Policies)
	}
	if opts.allows("role") {
		generateRoles(&b, doc.Roles)
	}
	if opts.allows("grant") {
		generateGrants(&b, doc.Grants)
	}
	if opts.allows("publication") {
		generatePublications(&b, doc.Publications)
	}
	if opts.allows("subscription") {
		generateSubscriptions(&b, doc.Subscriptions)
	}
	if opts.allows("foreign_data_wrapper") {
		generateForeignDataWrappers(&b, doc.ForeignDataWrappers)
	}
	if opts.allows("foreign_server") {
		generateForeignServers(&b, doc.ForeignServers)
	}
	if opts.allows("foreign_table") {
		generateForeignTables(&b, doc.ForeignTables)
	}
	generateTextSearch(&b, doc, opts)
	if opts.allows("statistics") {
		generateStatistics(&b, doc.Statistics)
	}

	return b.String()
}

func generateExtensions(b *strings.Builder, extensions []ir.Extension) {
	for _, e := range extensions {
		b.WriteString(fmt.Sprintf("CREATE EXTENSION IF NOT EXISTS %s", quoteIdent(e.Name)))
		if e.Version != "" {
			b.WriteString(fmt.Sprintf(" VERSION %s", quoteLiteral(e.Version)))
		}
		if e.Cascade {
			b.WriteString(" CASCADE")
		}
		b.WriteString(";\n")
	}
	if len(extensions) > 0 {
		b.WriteString("\n")
	}
}

func generateSchemas(b *strings.Builder, schemas []ir.Schema) {
	for _, s := range schemas {
		b.WriteString("CREATE SCHEMA ")
		if s.IfNotExists {
			b.WriteString("IF NOT EXISTS ")
		}
		b.WriteString(quoteIdent(s.Name))
		if s.Owner != "" {
			b.WriteString(fmt.Sprintf(" AUTHORIZATION %s", quoteIdent(s.Owner)))
		}
		b.WriteString(";\n")
	}
	if len(schemas) > 0 {
		b.WriteString("\n")
	}
}

func generateCollations(b *strings.Builder, collations []ir.Collation) {
	for _, c := range collations {
		name := qualified(c.SchemaOrPublic(), c.Name)
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE COLLATION %s (", name))
		var opts []string
		opts = append(opts, fmt.Sprintf("LC_COLLATE = %s", quoteLiteral(c.LcCollate)))
		opts = append(opts, fmt.Sprintf("LC_CTYPE = %s", quoteLiteral(c.LcCtype)))
		if c.Provider != "" {
			opts = append(opts, fmt.Sprintf("PROVIDER = %s", c.Provider))
		}
		if !c.Deterministic {
			opts = append(opts, "DETERMINISTIC = false")
		}
		b.WriteString(strings.Join(opts, ", "))
		b.WriteString(");\nEXCEPTION WHEN duplicate_object THEN NULL; END $$;\n")
	}
	if len(collations) > 0 {
		b.WriteString("\n")
	}
}

func generateDomains(b *strings.Builder, domains []ir.Domain) {
	for _, d := range domains {
		name := qualified(d.SchemaOrPublic(), d.Name)
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE DOMAIN %s AS %s", name, d.BaseType))
		if d.NotNull {
			b.WriteString(" NOT NULL")
		}
		if d.Default != "" {
			b.WriteString(fmt.Sprintf(" DEFAULT %s", d.Default))
		}
		if d.Check != "" {
			b.WriteString(fmt.Sprintf(" CHECK (%s)", d.Check))
		}
		b.WriteString(";\nEXCEPTION WHEN duplicate_object THEN NULL; END $$;\n")
	}
	if len(domains) > 0 {
		b.WriteString("\n")
	}
}

func generateCompositeTypes(b *strings.Builder, types []ir.CompositeType) {
	for _, t := range types {
		name := qualified(t.SchemaOrPublic(), t.Name)
		fields := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = fmt.Sprintf("%s %s", quoteIdent(f.Name), f.Type)
		}
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE TYPE %s AS (%s);\n", name, strings.Join(fields, ", ")))
		b.WriteString("EXCEPTION WHEN duplicate_object THEN NULL; END $$;\n")
	}
	if len(types) > 0 {
		b.WriteString("\n")
	}
}

func generateSequences(b *strings.Builder, sequences []ir.Sequence) {
	for _, s := range sequences {
		name := qualified(s.SchemaOrPublic(), s.Name)
		b.WriteString(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s", name))
		b.WriteString(fmt.Sprintf(" INCREMENT BY %d", s.IncrementBy))
		if s.MinValue != nil {
			b.WriteString(fmt.Sprintf(" MINVALUE %d", *s.MinValue))
		}
		if s.MaxValue != nil {
			b.WriteString(fmt.Sprintf(" MAXVALUE %d", *s.MaxValue))
		}
		if s.Start != nil {
			b.WriteString(fmt.Sprintf(" START WITH %d", *s.Start))
		}
		if s.Cache != nil {
			b.WriteString(fmt.Sprintf(" CACHE %d", *s.Cache))
		}
		if s.Cycle {
			b.WriteString(" CYCLE")
		}
		b.WriteString(";\n")
		if s.OwnedBy != "" {
			b.WriteString(fmt.Sprintf("ALTER SEQUENCE %s OWNED BY %s;\n", name, s.OwnedBy))
		}
	}
	if len(sequences) > 0 {
		b.WriteString("\n")
	}
}

func generateEnums(b *strings.Builder, enums []ir.Enum) {
	for _, e := range enums {
		name := qualified(e.SchemaOrPublic(), e.Name)
		values := make([]string, len(e.Values))
		for i, v := range e.Values {
			values[i] = quoteLiteral(v)
		}
		b.WriteString("DO $$ BEGIN\n")
		b.WriteString(fmt.Sprintf("  CREATE TYPE %s AS ENUM (%s);\n", name, strings.Join(values, ", ")))
		b.WriteString("EXCEPTION WHEN duplicate_object THEN NULL; END $$;\n")
	}
	if len(enums) > 0 {
		b.WriteString("\n")
	}
}

func generateStatistics(b *strings.Builder, stats []ir.Statistics) {
	for _, s := range stats {
		name := qualified(s.SchemaOrPublic(), s.Name)
		b.WriteString(fmt.Sprintf("CREATE STATISTICS IF NOT EXISTS %s", name))
		if len(s.Kinds) > 0 {
			b.WriteString(fmt.Sprintf(" (%s)", strings.Join(s.Kinds, ", ")))
		}
		b.WriteString(fmt.Sprintf(" ON %s FROM %s;\n", quoteIdentList(s.Columns), quoteIdent(s.Table)))
	}
	if len(stats) > 0 {
		b.WriteString("\n")
	}
}
