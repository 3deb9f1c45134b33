package ir

import "github.com/hashicorp/hcl/v2"

// Meta carries the fields every IR record shares: logical name, owning
// schema, the lint_ignore set, and the source location used in diagnostics.
type Meta struct {
	Name       string          `json:"name"`
	Schema     string          `json:"schema,omitempty"`
	ModuleID   string          `json:"module_id,omitempty"`
	LintIgnore map[string]bool `json:"lint_ignore,omitempty"`
	Range      hcl.Range       `json:"-"`
}

// Ignores reports whether a lint rule name is in this record's lint_ignore set.
func (m Meta) Ignores(rule string) bool {
	return m.LintIgnore[rule]
}

// SchemaOrPublic returns Schema, defaulting to "public" when unset — the
// builder already applies this default, but records built without going
// through the builder (e.g. tests) benefit from the same fallback.
func (m Meta) SchemaOrPublic() string {
	if m.Schema == "" {
		return "public"
	}
	return m.Schema
}

// Extension is a `CREATE EXTENSION` resource.
type Extension struct {
	Meta
	Version string `json:"version,omitempty"`
	Cascade bool   `json:"cascade,omitempty"`
}

// Schema is a `CREATE SCHEMA` resource. Its own Meta.Schema is always empty
// — a schema has no enclosing schema.
type Schema struct {
	Meta
	IfNotExists bool   `json:"if_not_exists"`
	Owner       string `json:"owner,omitempty"`
}

// Collation is a `CREATE COLLATION` resource.
type Collation struct {
	Meta
	LcCollate     string `json:"lc_collate"`
	LcCtype       string `json:"lc_ctype"`
	Provider      string `json:"provider,omitempty"`
	Deterministic bool   `json:"deterministic"`
}

// Domain is a `CREATE DOMAIN` resource.
type Domain struct {
	Meta
	BaseType string `json:"base_type"`
	Default  string `json:"default,omitempty"`
	NotNull  bool   `json:"not_null,omitempty"`
	Check    string `json:"check,omitempty"`
}

// CompositeField is one attribute of a CompositeType.
type CompositeField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CompositeType is a `CREATE TYPE ... AS (...)` resource.
type CompositeType struct {
	Meta
	Fields []CompositeField `json:"fields"`
}

// Sequence is a `CREATE SEQUENCE` resource.
type Sequence struct {
	Meta
	IncrementBy int64  `json:"increment_by"`
	MinValue    *int64 `json:"min_value,omitempty"`
	MaxValue    *int64 `json:"max_value,omitempty"`
	Start       *int64 `json:"start,omitempty"`
	Cache       *int64 `json:"cache,omitempty"`
	Cycle       bool   `json:"cycle,omitempty"`
	OwnedBy     string `json:"owned_by,omitempty"`
}

// Enum is a `CREATE TYPE ... AS ENUM` resource.
type Enum struct {
	Meta
	Values []string `json:"values"`
}

// Column is one column of a Table or ForeignTable.
type Column struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Nullable  bool   `json:"nullable"`
	Default   string `json:"default,omitempty"`
	Unique    bool   `json:"unique,omitempty"`
	Collation string `json:"collation,omitempty"`
}

// PrimaryKey is a table's inline primary-key constraint.
type PrimaryKey struct {
	Columns []string `json:"columns"`
}

// ForeignKey is a table's inline foreign-key constraint.
type ForeignKey struct {
	Name       string   `json:"name,omitempty"`
	Columns    []string `json:"columns"`
	RefTable   string   `json:"ref_table"`
	RefColumns []string `json:"ref_columns"`
	OnDelete   string   `json:"on_delete,omitempty"`
	OnUpdate   string   `json:"on_update,omitempty"`
}

// Check is a table's inline CHECK constraint.
type Check struct {
	Name       string `json:"name,omitempty"`
	Expression string `json:"expression"`
}

// Table is a `CREATE TABLE` resource, with its primary key, foreign keys,
// and check constraints declared inline per spec.md's scenario 1.
type Table struct {
	Meta
	IfNotExists bool         `json:"if_not_exists"`
	Unlogged    bool         `json:"unlogged,omitempty"`
	Columns     []Column     `json:"columns"`
	PrimaryKey  *PrimaryKey  `json:"primary_key,omitempty"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty"`
	Checks      []Check      `json:"checks,omitempty"`
}

// Index is a `CREATE INDEX` resource.
type Index struct {
	Meta
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique,omitempty"`
	Method  string   `json:"method,omitempty"`
	Where   string   `json:"where,omitempty"`
}

// View is a `CREATE VIEW` resource.
type View struct {
	Meta
	Replace bool     `json:"replace"`
	Columns []string `json:"columns,omitempty"`
	Query   string   `json:"query"`
}

// MaterializedView is a `CREATE MATERIALIZED VIEW` resource.
type MaterializedView struct {
	Meta
	Query    string `json:"query"`
	WithData bool   `json:"with_data"`
}

// FunctionArg is one positional argument of a Function, Procedure, or Aggregate.
type FunctionArg struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// Function is a `CREATE FUNCTION` resource.
type Function struct {
	Meta
	Replace    bool          `json:"replace"`
	Args       []FunctionArg `json:"args,omitempty"`
	Returns    string        `json:"returns"`
	Language   string        `json:"language"`
	Body       string        `json:"body"`
	Volatility string        `json:"volatility,omitempty"`
	Security   string        `json:"security,omitempty"`
}

// Procedure is a `CREATE PROCEDURE` resource.
type Procedure struct {
	Meta
	Replace  bool          `json:"replace"`
	Args     []FunctionArg `json:"args,omitempty"`
	Language string        `json:"language"`
	Body     string        `json:"body"`
}

// Aggregate is a `CREATE AGGREGATE` resource.
type Aggregate struct {
	Meta
	InputTypes       []string `json:"input_types"`
	StateFunc        string   `json:"state_func"`
	InitialCondition string   `json:"initial_condition,omitempty"`
	FinalFunc        string   `json:"final_func,omitempty"`
}

// Operator is a `CREATE OPERATOR` resource.
type Operator struct {
	Meta
	Symbol     string `json:"symbol"`
	LeftType   string `json:"left_type,omitempty"`
	RightType  string `json:"right_type,omitempty"`
	Function   string `json:"function"`
	Commutator string `json:"commutator,omitempty"`
	Negator    string `json:"negator,omitempty"`
	Parallel   string `json:"parallel,omitempty"`
}

// Trigger is a `CREATE TRIGGER` resource.
type Trigger struct {
	Meta
	Table    string   `json:"table"`
	Timing   string   `json:"timing"`
	Events   []string `json:"events"`
	Level    string   `json:"level"`
	When     string   `json:"when,omitempty"`
	Function string   `json:"function"`
}

// EventTrigger is a `CREATE EVENT TRIGGER` resource.
type EventTrigger struct {
	Meta
	Event    string   `json:"event"`
	Tags     []string `json:"tags,omitempty"`
	Function string   `json:"function"`
}

// Rule is a `CREATE RULE` resource.
type Rule struct {
	Meta
	Table     string   `json:"table"`
	Event     string   `json:"event"`
	When      string   `json:"when,omitempty"`
	InsteadOf bool     `json:"instead_of,omitempty"`
	Actions   []string `json:"actions,omitempty"`
}

// Policy is a row-level security `CREATE POLICY` resource.
type Policy struct {
	Meta
	Table      string   `json:"table"`
	Command    string   `json:"command"`
	Permissive bool     `json:"permissive"`
	Roles      []string `json:"roles,omitempty"`
	Using      string   `json:"using,omitempty"`
	Check      string   `json:"check,omitempty"`
}

// Role is a `CREATE ROLE` resource.
type Role struct {
	Meta
	Login     bool     `json:"login"`
	Superuser bool     `json:"superuser,omitempty"`
	Password  string   `json:"password,omitempty"`
	InRoles   []string `json:"in_roles,omitempty"`
}

// Grant is a `GRANT` resource. On is a raw object reference (e.g.
// `TABLE "public"."users"`); emission passes it through verbatim.
type Grant struct {
	Meta
	Privileges []string `json:"privileges"`
	On         string   `json:"on"`
	To         []string `json:"to"`
}

// Publication is a `CREATE PUBLICATION` resource.
type Publication struct {
	Meta
	Tables    []string `json:"tables,omitempty"`
	AllTables bool     `json:"all_tables,omitempty"`
}

// Subscription is a `CREATE SUBSCRIPTION` resource.
type Subscription struct {
	Meta
	Connection   string   `json:"connection"`
	Publications []string `json:"publications"`
}

// ForeignDataWrapper is a `CREATE FOREIGN DATA WRAPPER` resource.
type ForeignDataWrapper struct {
	Meta
	Handler   string `json:"handler,omitempty"`
	Validator string `json:"validator,omitempty"`
}

// ForeignServer is a `CREATE SERVER` resource.
type ForeignServer struct {
	Meta
	Wrapper string            `json:"wrapper"`
	Options map[string]string `json:"options,omitempty"`
}

// ForeignTable is a `CREATE FOREIGN TABLE` resource.
type ForeignTable struct {
	Meta
	Server  string            `json:"server"`
	Columns []Column          `json:"columns"`
	Options map[string]string `json:"options,omitempty"`
}

// TextSearchParser is a `CREATE TEXT SEARCH PARSER` resource.
type TextSearchParser struct {
	Meta
	Options map[string]string `json:"options,omitempty"`
}

// TextSearchDictionary is a `CREATE TEXT SEARCH DICTIONARY` resource.
type TextSearchDictionary struct {
	Meta
	Template string            `json:"template"`
	Options  map[string]string `json:"options,omitempty"`
}

// TextSearchTemplate is a `CREATE TEXT SEARCH TEMPLATE` resource.
type TextSearchTemplate struct {
	Meta
	Init   string `json:"init,omitempty"`
	Lexize string `json:"lexize"`
}

// TextSearchConfiguration is a `CREATE TEXT SEARCH CONFIGURATION` resource.
type TextSearchConfiguration struct {
	Meta
	Parser  string            `json:"parser"`
	Options map[string]string `json:"options,omitempty"`
}

// Statistics is a `CREATE STATISTICS` resource.
type Statistics struct {
	Meta
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Kinds   []string `json:"kinds,omitempty"`
}

// Test is an opaque record for a `test` block. The transactional test
// harness (spec.md §1, explicitly out of scope here) is the one that
// interprets Raw; the compiler's job ends at carrying it through the IR.
type Test struct {
	Meta
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Raw         map[string]string `json:"raw,omitempty"`
}

// Invariant is an opaque record for an `invariant` block; see Test.
type Invariant struct {
	Meta
	Condition string            `json:"condition"`
	Raw       map[string]string `json:"raw,omitempty"`
}

// Scenario is an opaque record for a `scenario` block; see Test. ID
// identifies one build's instance of the scenario for the (out-of-scope)
// test harness. It is a random uuid assigned as the record is built, so
// repeated builds of the same source give the scenario different IDs.
type Scenario struct {
	Meta
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Raw         map[string]string `json:"raw,omitempty"`
}
