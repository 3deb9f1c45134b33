package ir

import (
	"fmt"

	"github.com/dbschema/dbschema/internal/diag"
)

// IR is the frozen collection every emitter reads from. Collection is
// accumulated by the Builder across every module instantiated during
// resolution (spec.md §3.8: "IR records accumulate into a single flat
// collection tagged by originating module id"); Builder.Freeze produces one.
type IR struct {
	Extensions               []Extension               `json:"extensions"`
	Schemas                  []Schema                  `json:"schemas"`
	Collations               []Collation               `json:"collations"`
	Domains                  []Domain                  `json:"domains"`
	CompositeTypes           []CompositeType           `json:"composite_types"`
	Sequences                []Sequence                `json:"sequences"`
	Enums                    []Enum                    `json:"enums"`
	Tables                   []Table                   `json:"tables"`
	Indexes                  []Index                   `json:"indexes"`
	Views                    []View                    `json:"views"`
	MaterializedViews        []MaterializedView        `json:"materialized_views"`
	Functions                []Function                `json:"functions"`
	Procedures               []Procedure               `json:"procedures"`
	Aggregates               []Aggregate               `json:"aggregates"`
	Operators                []Operator                `json:"operators"`
	Triggers                 []Trigger                 `json:"triggers"`
	EventTriggers            []EventTrigger            `json:"event_triggers"`
	Rules                    []Rule                    `json:"rules"`
	Policies                 []Policy                  `json:"policies"`
	Roles                    []Role                    `json:"roles"`
	Grants                   []Grant                   `json:"grants"`
	Publications             []Publication             `json:"publications"`
	Subscriptions            []Subscription            `json:"subscriptions"`
	ForeignDataWrappers      []ForeignDataWrapper       `json:"foreign_data_wrappers"`
	ForeignServers           []ForeignServer            `json:"foreign_servers"`
	ForeignTables            []ForeignTable             `json:"foreign_tables"`
	TextSearchParsers        []TextSearchParser         `json:"text_search_parsers"`
	TextSearchDictionaries   []TextSearchDictionary     `json:"text_search_dictionaries"`
	TextSearchTemplates      []TextSearchTemplate       `json:"text_search_templates"`
	TextSearchConfigurations []TextSearchConfiguration  `json:"text_search_configurations"`
	Statistics               []Statistics               `json:"statistics"`
	Tests                    []Test                     `json:"tests"`
	Invariants               []Invariant                `json:"invariants"`
	Scenarios                []Scenario                 `json:"scenarios"`
}

// QualifiedName builds the (schema, kind, name) triple spec.md's GLOSSARY
// defines, used both for cross-references and for EmitConflict detection.
func QualifiedName(kind, schema, name string) string {
	if schema == "" {
		return fmt.Sprintf("%s.%s", kind, name)
	}
	return fmt.Sprintf("%s.%s.%s", schema, kind, name)
}

// DeclaredSchemas returns the set of schema names explicitly declared with a
// `schema` block, used by the validator to check spec.md 3.7's
// "every IR reference to a schema is either public or declared" rule.
func (ir *IR) DeclaredSchemas() map[string]bool {
	out := map[string]bool{"public": true}
	for _, s := range ir.Schemas {
		out[s.Name] = true
	}
	return out
}

// TableByQualifiedName looks up a table by (schema, name), schema defaulting
// to "public" when empty.
func (ir *IR) TableByQualifiedName(schema, name string) (*Table, bool) {
	if schema == "" {
		schema = "public"
	}
	for i := range ir.Tables {
		t := &ir.Tables[i]
		if t.SchemaOrPublic() == schema && t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// HasEnumDomainOrCompositeType reports whether name resolves to a declared
// enum, domain, or composite type in schema — used by strict-mode column
// type validation (spec.md 3.7, 4.H).
func (ir *IR) HasEnumDomainOrCompositeType(schema, name string) bool {
	for _, e := range ir.Enums {
		if e.SchemaOrPublic() == schema && e.Name == name {
			return true
		}
	}
	for _, d := range ir.Domains {
		if d.SchemaOrPublic() == schema && d.Name == name {
			return true
		}
	}
	for _, c := range ir.CompositeTypes {
		if c.SchemaOrPublic() == schema && c.Name == name {
			return true
		}
	}
	return false
}

// CheckConflicts reports an EmitConflict for every (kind, qualified name)
// claimed by more than one record — spec.md §7's EmitConflict error kind.
func (ir *IR) CheckConflicts() []*diag.Error {
	seen := make(map[string]bool)
	var errs []*diag.Error

	note := func(kind, schema, name string) {
		key := kind + "\x00" + QualifiedName(kind, schema, name)
		if seen[key] {
			errs = append(errs, diag.EmitConflict(kind, QualifiedName(kind, schema, name)))
			return
		}
		seen[key] = true
	}

	for _, v := range ir.Schemas {
		note("schema", "", v.Name)
	}
	for _, v := range ir.Tables {
		note("table", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.Enums {
		note("enum", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.Domains {
		note("domain", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.CompositeTypes {
		note("composite_type", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.Sequences {
		note("sequence", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.Views {
		note("view", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.MaterializedViews {
		note("materialized_view", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.Functions {
		note("function", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.Procedures {
		note("procedure", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.Indexes {
		note("index", v.SchemaOrPublic(), v.Name)
	}
	for _, v := range ir.Triggers {
		note("trigger", v.SchemaOrPublic(), v.Name+"@"+v.Table)
	}
	return errs
}
