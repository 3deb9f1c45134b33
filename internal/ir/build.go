package ir

import (
	"github.com/google/uuid"

	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/expand"
)

// Builder accumulates IR records across every module instantiated during
// resolution (spec.md §3.8) and applies the defaults spec.md 4.G lists
// (schema="public", if_not_exists=true for tables, replace=true for
// functions/views, timing="BEFORE" for triggers).
type Builder struct {
	Strict bool

	ir       IR
	Warnings []*diag.Error
}

// NewBuilder returns an empty Builder. strict promotes UnknownAttribute
// warnings to fatal errors, per spec.md's Strict mode definition.
func NewBuilder(strict bool) *Builder {
	return &Builder{Strict: strict}
}

// Freeze returns the accumulated IR. Called once, after every module has
// been built — "the collection is frozen before emission" (spec.md 3.8).
func (b *Builder) Freeze() *IR {
	frozen := b.ir
	return &frozen
}

func (b *Builder) warn(warnings ...*diag.Error) *diag.Error {
	if !b.Strict {
		b.Warnings = append(b.Warnings, warnings...)
		return nil
	}
	for _, w := range warnings {
		if w == nil {
			continue
		}
		return w
	}
	return nil
}

// Add dispatches block to the builder for its kind, appending the resulting
// record to the IR. Unknown block kinds at this layer are a programmer
// error (the resolver only ever forwards kinds the grammar recognizes), so
// Add panics rather than silently dropping a resource — callers always
// range over a known kind table before calling Add.
func (b *Builder) Add(block *expand.Block, moduleID string) *diag.Error {
	switch block.Kind {
	case "extension":
		return b.addExtension(block, moduleID)
	case "schema":
		return b.addSchema(block, moduleID)
	case "collation":
		return b.addCollation(block, moduleID)
	case "domain":
		return b.addDomain(block, moduleID)
	case "composite_type":
		return b.addCompositeType(block, moduleID)
	case "sequence":
		return b.addSequence(block, moduleID)
	case "enum":
		return b.addEnum(block, moduleID)
	case "table":
		return b.addTable(block, moduleID)
	case "index":
		return b.addIndex(block, moduleID)
	case "view":
		return b.addView(block, moduleID)
	case "materialized_view":
		return b.addMaterializedView(block, moduleID)
	case "function":
		return b.addFunction(block, moduleID)
	case "procedure":
		return b.addProcedure(block, moduleID)
	case "aggregate":
		return b.addAggregate(block, moduleID)
	case "operator":
		return b.addOperator(block, moduleID)
	case "trigger":
		return b.addTrigger(block, moduleID)
	case "event_trigger":
		return b.addEventTrigger(block, moduleID)
	case "rule":
		return b.addRule(block, moduleID)
	case "policy":
		return b.addPolicy(block, moduleID)
	case "role":
		return b.addRole(block, moduleID)
	case "grant":
		return b.addGrant(block, moduleID)
	case "publication":
		return b.addPublication(block, moduleID)
	case "subscription":
		return b.addSubscription(block, moduleID)
	case "foreign_data_wrapper":
		return b.addForeignDataWrapper(block, moduleID)
	case "foreign_server":
		return b.addForeignServer(block, moduleID)
	case "foreign_table":
		return b.addForeignTable(block, moduleID)
	case "text_search_parser":
		return b.addTextSearchParser(block, moduleID)
	case "text_search_dictionary":
		return b.addTextSearchDictionary(block, moduleID)
	case "text_search_template":
		return b.addTextSearchTemplate(block, moduleID)
	case "text_search_configuration":
		return b.addTextSearchConfiguration(block, moduleID)
	case "statistics":
		return b.addStatistics(block, moduleID)
	case "test":
		return b.addTest(block, moduleID)
	case "invariant":
		return b.addInvariant(block, moduleID)
	case "scenario":
		return b.addScenario(block, moduleID)
	default:
		panic("ir: unrecognized block kind " + block.Kind)
	}
}

// ResourceKinds lists every block kind the resolver hands to Add, in no
// particular order — used by the driver to decide which top-level blocks
// are resources versus language constructs (variable/local/data/module/output).
var ResourceKinds = map[string]bool{
	"extension": true, "schema": true, "collation": true, "domain": true,
	"composite_type": true, "sequence": true, "enum": true, "table": true,
	"index": true, "view": true, "materialized_view": true, "function": true,
	"procedure": true, "aggregate": true, "operator": true, "trigger": true,
	"event_trigger": true, "rule": true, "policy": true, "role": true,
	"grant": true, "publication": true, "subscription": true,
	"foreign_data_wrapper": true, "foreign_server": true, "foreign_table": true,
	"text_search_parser": true, "text_search_dictionary": true,
	"text_search_template": true, "text_search_configuration": true,
	"statistics": true, "test": true, "invariant": true, "scenario": true,
}

func meta(block *expand.Block, moduleID, name, schema string, lintIgnore map[string]bool) Meta {
	return Meta{
		Name:       name,
		Schema:     schema,
		ModuleID:   moduleID,
		LintIgnore: lintIgnore,
		Range:      block.DefRange,
	}
}

// resourceMeta resolves name/schema/lint_ignore the way every schema-scoped
// resource kind does: name from ResourceName, schema from the "schema"
// attribute (defaulting to "public"), lint_ignore from "lint_ignore".
func resourceMeta(b *Builder, block *expand.Block, moduleID string) (Meta, *diag.Error) {
	name, diags := block.ResourceName(block.Scope)
	if diags.HasErrors() {
		return Meta{}, diag.FromDiagnostics(diags)
	}
	schema, err := stringAttr(block, "schema", "public")
	if err != nil {
		return Meta{}, err
	}
	ignore, err := lintIgnoreAttr(block)
	if err != nil {
		return Meta{}, err
	}
	return meta(block, moduleID, name, schema, ignore), nil
}

func (b *Builder) addExtension(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	version, err := stringAttr(block, "version", "")
	if err != nil {
		return err
	}
	cascade, err := boolAttr(block, "cascade", false)
	if err != nil {
		return err
	}
	if w := b.warn(knownAttrs(block, "version", "cascade")...); w != nil {
		return w
	}
	m.Schema = ""
	b.ir.Extensions = append(b.ir.Extensions, Extension{Meta: m, Version: version, Cascade: cascade})
	return nil
}

func (b *Builder) addSchema(block *expand.Block, moduleID string) *diag.Error {
	name, diags := block.ResourceName(block.Scope)
	if diags.HasErrors() {
		return diag.FromDiagnostics(diags)
	}
	ignore, err := lintIgnoreAttr(block)
	if err != nil {
		return err
	}
	ifNotExists, err := boolAttr(block, "if_not_exists", true)
	if err != nil {
		return err
	}
	owner, err := stringAttr(block, "owner", "")
	if err != nil {
		return err
	}
	if w := b.warn(knownAttrs(block, "if_not_exists", "owner")...); w != nil {
		return w
	}
	m := meta(block, moduleID, name, "", ignore)
	b.ir.Schemas = append(b.ir.Schemas, Schema{Meta: m, IfNotExists: ifNotExists, Owner: owner})
	return nil
}

func (b *Builder) addCollation(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	lcCollate, err := requiredString(block, "lc_collate")
	if err != nil {
		return err
	}
	lcCtype, err := requiredString(block, "lc_ctype")
	if err != nil {
		return err
	}
	provider, err := stringAttr(block, "provider", "")
	if err != nil {
		return err
	}
	deterministic, err := boolAttr(block, "deterministic", true)
	if err != nil {
		return err
	}
	if w := b.warn(knownAttrs(block, "lc_collate", "lc_ctype", "provider", "deterministic")...); w != nil {
		return w
	}
	b.ir.Collations = append(b.ir.Collations, Collation{
		Meta: m, LcCollate: lcCollate, LcCtype: lcCtype, Provider: provider, Deterministic: deterministic,
	})
	return nil
}

func (b *Builder) addDomain(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	baseType, err := requiredString(block, "base_type")
	if err != nil {
		return err
	}
	def, err := stringAttr(block, "default", "")
	if err != nil {
		return err
	}
	notNull, err := boolAttr(block, "not_null", false)
	if err != nil {
		return err
	}
	check, err := stringAttr(block, "check", "")
	if err != nil {
		return err
	}
	if w := b.warn(knownAttrs(block, "base_type", "default", "not_null", "check")...); w != nil {
		return w
	}
	b.ir.Domains = append(b.ir.Domains, Domain{Meta: m, BaseType: baseType, Default: def, NotNull: notNull, Check: check})
	return nil
}

func (b *Builder) addCompositeType(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	var fields []CompositeField
	for _, child := range block.Blocks {
		if child.Kind != "field" {
			continue
		}
		name, diags := child.ResourceName(child.Scope)
		if diags.HasErrors() {
			return diag.FromDiagnostics(diags)
		}
		fieldType, ferr := requiredString(child, "type")
		if ferr != nil {
			return ferr
		}
		fields = append(fields, CompositeField{Name: name, Type: fieldType})
	}
	b.ir.CompositeTypes = append(b.ir.CompositeTypes, CompositeType{Meta: m, Fields: fields})
	return nil
}

func (b *Builder) addSequence(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	increment, err := int64Attr(block, "increment_by", 1)
	if err != nil {
		return err
	}
	minVal, err := optInt64Attr(block, "min_value")
	if err != nil {
		return err
	}
	maxVal, err := optInt64Attr(block, "max_value")
	if err != nil {
		return err
	}
	start, err := optInt64Attr(block, "start")
	if err != nil {
		return err
	}
	cache, err := optInt64Attr(block, "cache")
	if err != nil {
		return err
	}
	cycle, err := boolAttr(block, "cycle", false)
	if err != nil {
		return err
	}
	ownedBy, err := stringAttr(block, "owned_by", "")
	if err != nil {
		return err
	}
	b.ir.Sequences = append(b.ir.Sequences, Sequence{
		Meta: m, IncrementBy: increment, MinValue: minVal, MaxValue: maxVal,
		Start: start, Cache: cache, Cycle: cycle, OwnedBy: ownedBy,
	})
	return nil
}

func (b *Builder) addEnum(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	values, err := stringListAttr(block, "values")
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return diag.MissingRequiredAttribute(block.Kind, blockLabel(block), "values", &block.DefRange)
	}
	b.ir.Enums = append(b.ir.Enums, Enum{Meta: m, Values: values})
	return nil
}

func (b *Builder) addTable(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	ifNotExists, err := boolAttr(block, "if_not_exists", true)
	if err != nil {
		return err
	}
	unlogged, err := boolAttr(block, "unlogged", false)
	if err != nil {
		return err
	}

	var columns []Column
	var pk *PrimaryKey
	var fks []ForeignKey
	var checks []Check

	for _, child := range block.Blocks {
		switch child.Kind {
		case "column":
			col, cerr := buildColumn(child)
			if cerr != nil {
				return cerr
			}
			columns = append(columns, col)
		case "primary_key":
			cols, perr := stringListAttr(child, "columns")
			if perr != nil {
				return perr
			}
			if len(cols) == 0 {
				return diag.MissingRequiredAttribute("primary_key", "", "columns", &child.DefRange)
			}
			pk = &PrimaryKey{Columns: cols}
		case "foreign_key":
			fk, ferr := buildForeignKey(child)
			if ferr != nil {
				return ferr
			}
			fks = append(fks, fk)
		case "check":
			name := blockLabel(child)
			expr, cerr := requiredString(child, "expression")
			if cerr != nil {
				return cerr
			}
			checks = append(checks, Check{Name: name, Expression: expr})
		}
	}

	b.ir.Tables = append(b.ir.Tables, Table{
		Meta: m, IfNotExists: ifNotExists, Unlogged: unlogged,
		Columns: columns, PrimaryKey: pk, ForeignKeys: fks, Checks: checks,
	})
	return nil
}

func buildColumn(block *expand.Block) (Column, *diag.Error) {
	name, diags := block.ResourceName(block.Scope)
	if diags.HasErrors() {
		return Column{}, diag.FromDiagnostics(diags)
	}
	colType, err := requiredString(block, "type")
	if err != nil {
		return Column{}, err
	}
	nullable, err := boolAttr(block, "nullable", true)
	if err != nil {
		return Column{}, err
	}
	def, err := stringAttr(block, "default", "")
	if err != nil {
		return Column{}, err
	}
	unique, err := boolAttr(block, "unique", false)
	if err != nil {
		return Column{}, err
	}
	collation, err := stringAttr(block, "collation", "")
	if err != nil {
		return Column{}, err
	}
	return Column{Name: name, Type: colType, Nullable: nullable, Default: def, Unique: unique, Collation: collation}, nil
}

func buildForeignKey(block *expand.Block) (ForeignKey, *diag.Error) {
	name, err := stringAttr(block, "name", blockLabel(block))
	if err != nil {
		return ForeignKey{}, err
	}
	cols, err := stringListAttr(block, "columns")
	if err != nil {
		return ForeignKey{}, err
	}
	refTable, err := requiredString(block, "ref_table")
	if err != nil {
		return ForeignKey{}, err
	}
	refCols, err := stringListAttr(block, "ref_columns")
	if err != nil {
		return ForeignKey{}, err
	}
	onDelete, err := stringAttr(block, "on_delete", "NO ACTION")
	if err != nil {
		return ForeignKey{}, err
	}
	onUpdate, err := stringAttr(block, "on_update", "NO ACTION")
	if err != nil {
		return ForeignKey{}, err
	}
	return ForeignKey{
		Name: name, Columns: cols, RefTable: refTable, RefColumns: refCols,
		OnDelete: onDelete, OnUpdate: onUpdate,
	}, nil
}

func (b *Builder) addIndex(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	table, err := requiredString(block, "table")
	if err != nil {
		return err
	}
	cols, err := stringListAttr(block, "columns")
	if err != nil {
		return err
	}
	unique, err := boolAttr(block, "unique", false)
	if err != nil {
		return err
	}
	method, err := stringAttr(block, "method", "btree")
	if err != nil {
		return err
	}
	where, err := stringAttr(block, "where", "")
	if err != nil {
		return err
	}
	b.ir.Indexes = append(b.ir.Indexes, Index{Meta: m, Table: table, Columns: cols, Unique: unique, Method: method, Where: where})
	return nil
}

func (b *Builder) addView(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	replace, err := boolAttr(block, "replace", true)
	if err != nil {
		return err
	}
	query, err := requiredString(block, "query")
	if err != nil {
		return err
	}
	columns, err := stringListAttr(block, "columns")
	if err != nil {
		return err
	}
	b.ir.Views = append(b.ir.Views, View{Meta: m, Replace: replace, Query: query, Columns: columns})
	return nil
}

func (b *Builder) addMaterializedView(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	query, err := requiredString(block, "query")
	if err != nil {
		return err
	}
	withData, err := boolAttr(block, "with_data", true)
	if err != nil {
		return err
	}
	b.ir.MaterializedViews = append(b.ir.MaterializedViews, MaterializedView{Meta: m, Query: query, WithData: withData})
	return nil
}

func buildArgs(block *expand.Block) ([]FunctionArg, *diag.Error) {
	var args []FunctionArg
	for _, child := range block.Blocks {
		if child.Kind != "arg" {
			continue
		}
		name, diags := child.ResourceName(child.Scope)
		if diags.HasErrors() {
			return nil, diag.FromDiagnostics(diags)
		}
		argType, err := requiredString(child, "type")
		if err != nil {
			return nil, err
		}
		args = append(args, FunctionArg{Name: name, Type: argType})
	}
	return args, nil
}

func (b *Builder) addFunction(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	replace, err := boolAttr(block, "replace", true)
	if err != nil {
		return err
	}
	args, err := buildArgs(block)
	if err != nil {
		return err
	}
	returns, err := requiredString(block, "returns")
	if err != nil {
		return err
	}
	language, err := stringAttr(block, "language", "plpgsql")
	if err != nil {
		return err
	}
	body, err := requiredString(block, "body")
	if err != nil {
		return err
	}
	volatility, err := stringAttr(block, "volatility", "")
	if err != nil {
		return err
	}
	security, err := stringAttr(block, "security", "")
	if err != nil {
		return err
	}
	b.ir.Functions = append(b.ir.Functions, Function{
		Meta: m, Replace: replace, Args: args, Returns: returns, Language: language,
		Body: body, Volatility: volatility, Security: security,
	})
	return nil
}

func (b *Builder) addProcedure(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	replace, err := boolAttr(block, "replace", true)
	if err != nil {
		return err
	}
	args, err := buildArgs(block)
	if err != nil {
		return err
	}
	language, err := stringAttr(block, "language", "plpgsql")
	if err != nil {
		return err
	}
	body, err := requiredString(block, "body")
	if err != nil {
		return err
	}
	b.ir.Procedures = append(b.ir.Procedures, Procedure{Meta: m, Replace: replace, Args: args, Language: language, Body: body})
	return nil
}

func (b *Builder) addAggregate(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	inputTypes, err := stringListAttr(block, "input_types")
	if err != nil {
		return err
	}
	stateFunc, err := requiredString(block, "state_func")
	if err != nil {
		return err
	}
	initial, err := stringAttr(block, "initial_condition", "")
	if err != nil {
		return err
	}
	finalFunc, err := stringAttr(block, "final_func", "")
	if err != nil {
		return err
	}
	b.ir.Aggregates = append(b.ir.Aggregates, Aggregate{
		Meta: m, InputTypes: inputTypes, StateFunc: stateFunc, InitialCondition: initial, FinalFunc: finalFunc,
	})
	return nil
}

func (b *Builder) addOperator(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	symbol, err := stringAttr(block, "symbol", blockLabel(block))
	if err != nil {
		return err
	}
	leftType, err := stringAttr(block, "left_type", "")
	if err != nil {
		return err
	}
	rightType, err := stringAttr(block, "right_type", "")
	if err != nil {
		return err
	}
	fn, err := requiredString(block, "function")
	if err != nil {
		return err
	}
	commutator, err := stringAttr(block, "commutator", "")
	if err != nil {
		return err
	}
	negator, err := stringAttr(block, "negator", "")
	if err != nil {
		return err
	}
	parallel, err := stringAttr(block, "parallel", "")
	if err != nil {
		return err
	}
	b.ir.Operators = append(b.ir.Operators, Operator{
		Meta: m, Symbol: symbol, LeftType: leftType, RightType: rightType, Function: fn,
		Commutator: commutator, Negator: negator, Parallel: parallel,
	})
	return nil
}

func (b *Builder) addTrigger(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	table, err := requiredString(block, "table")
	if err != nil {
		return err
	}
	timing, err := stringAttr(block, "timing", "BEFORE")
	if err != nil {
		return err
	}
	events, err := stringListAttr(block, "events")
	if err != nil {
		return err
	}
	level, err := stringAttr(block, "level", "ROW")
	if err != nil {
		return err
	}
	when, err := stringAttr(block, "when", "")
	if err != nil {
		return err
	}
	fn, err := requiredString(block, "function")
	if err != nil {
		return err
	}
	b.ir.Triggers = append(b.ir.Triggers, Trigger{
		Meta: m, Table: table, Timing: timing, Events: events, Level: level, When: when, Function: fn,
	})
	return nil
}

func (b *Builder) addEventTrigger(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	event, err := requiredString(block, "event")
	if err != nil {
		return err
	}
	tags, err := stringListAttr(block, "tags")
	if err != nil {
		return err
	}
	fn, err := requiredString(block, "function")
	if err != nil {
		return err
	}
	b.ir.EventTriggers = append(b.ir.EventTriggers, EventTrigger{Meta: m, Event: event, Tags: tags, Function: fn})
	return nil
}

func (b *Builder) addRule(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	table, err := requiredString(block, "table")
	if err != nil {
		return err
	}
	event, err := requiredString(block, "event")
	if err != nil {
		return err
	}
	when, err := stringAttr(block, "when", "")
	if err != nil {
		return err
	}
	insteadOf, err := boolAttr(block, "instead_of", false)
	if err != nil {
		return err
	}
	actions, err := stringListAttr(block, "actions")
	if err != nil {
		return err
	}
	b.ir.Rules = append(b.ir.Rules, Rule{Meta: m, Table: table, Event: event, When: when, InsteadOf: insteadOf, Actions: actions})
	return nil
}

func (b *Builder) addPolicy(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	table, err := requiredString(block, "table")
	if err != nil {
		return err
	}
	command, err := stringAttr(block, "command", "ALL")
	if err != nil {
		return err
	}
	permissive, err := boolAttr(block, "permissive", true)
	if err != nil {
		return err
	}
	roles, err := stringListAttr(block, "roles")
	if err != nil {
		return err
	}
	using, err := stringAttr(block, "using", "")
	if err != nil {
		return err
	}
	check, err := stringAttr(block, "check", "")
	if err != nil {
		return err
	}
	b.ir.Policies = append(b.ir.Policies, Policy{
		Meta: m, Table: table, Command: command, Permissive: permissive, Roles: roles, Using: using, Check: check,
	})
	return nil
}

func (b *Builder) addRole(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	login, err := boolAttr(block, "login", false)
	if err != nil {
		return err
	}
	superuser, err := boolAttr(block, "superuser", false)
	if err != nil {
		return err
	}
	password, err := stringAttr(block, "password", "")
	if err != nil {
		return err
	}
	inRoles, err := stringListAttr(block, "in_roles")
	if err != nil {
		return err
	}
	b.ir.Roles = append(b.ir.Roles, Role{Meta: m, Login: login, Superuser: superuser, Password: password, InRoles: inRoles})
	return nil
}

func (b *Builder) addGrant(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	privileges, err := stringListAttr(block, "privileges")
	if err != nil {
		return err
	}
	on, err := requiredString(block, "on")
	if err != nil {
		return err
	}
	to, err := stringListAttr(block, "to")
	if err != nil {
		return err
	}
	b.ir.Grants = append(b.ir.Grants, Grant{Meta: m, Privileges: privileges, On: on, To: to})
	return nil
}

func (b *Builder) addPublication(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	tables, err := stringListAttr(block, "tables")
	if err != nil {
		return err
	}
	allTables, err := boolAttr(block, "all_tables", len(tables) == 0)
	if err != nil {
		return err
	}
	b.ir.Publications = append(b.ir.Publications, Publication{Meta: m, Tables: tables, AllTables: allTables})
	return nil
}

func (b *Builder) addSubscription(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	conn, err := requiredString(block, "connection")
	if err != nil {
		return err
	}
	pubs, err := stringListAttr(block, "publications")
	if err != nil {
		return err
	}
	b.ir.Subscriptions = append(b.ir.Subscriptions, Subscription{Meta: m, Connection: conn, Publications: pubs})
	return nil
}

func (b *Builder) addForeignDataWrapper(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	handler, err := stringAttr(block, "handler", "")
	if err != nil {
		return err
	}
	validator, err := stringAttr(block, "validator", "")
	if err != nil {
		return err
	}
	b.ir.ForeignDataWrappers = append(b.ir.ForeignDataWrappers, ForeignDataWrapper{Meta: m, Handler: handler, Validator: validator})
	return nil
}

func (b *Builder) addForeignServer(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	wrapper, err := requiredString(block, "wrapper")
	if err != nil {
		return err
	}
	options, err := stringMapAttr(block, "options")
	if err != nil {
		return err
	}
	b.ir.ForeignServers = append(b.ir.ForeignServers, ForeignServer{Meta: m, Wrapper: wrapper, Options: options})
	return nil
}

func (b *Builder) addForeignTable(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	server, err := requiredString(block, "server")
	if err != nil {
		return err
	}
	options, err := stringMapAttr(block, "options")
	if err != nil {
		return err
	}
	var columns []Column
	for _, child := range block.Blocks {
		if child.Kind != "column" {
			continue
		}
		col, cerr := buildColumn(child)
		if cerr != nil {
			return cerr
		}
		columns = append(columns, col)
	}
	b.ir.ForeignTables = append(b.ir.ForeignTables, ForeignTable{Meta: m, Server: server, Columns: columns, Options: options})
	return nil
}

func (b *Builder) addTextSearchParser(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	options, err := stringMapAttr(block, "options")
	if err != nil {
		return err
	}
	b.ir.TextSearchParsers = append(b.ir.TextSearchParsers, TextSearchParser{Meta: m, Options: options})
	return nil
}

func (b *Builder) addTextSearchDictionary(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	template, err := requiredString(block, "template")
	if err != nil {
		return err
	}
	options, err := stringMapAttr(block, "options")
	if err != nil {
		return err
	}
	b.ir.TextSearchDictionaries = append(b.ir.TextSearchDictionaries, TextSearchDictionary{Meta: m, Template: template, Options: options})
	return nil
}

func (b *Builder) addTextSearchTemplate(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	init, err := stringAttr(block, "init", "")
	if err != nil {
		return err
	}
	lexize, err := requiredString(block, "lexize")
	if err != nil {
		return err
	}
	b.ir.TextSearchTemplates = append(b.ir.TextSearchTemplates, TextSearchTemplate{Meta: m, Init: init, Lexize: lexize})
	return nil
}

func (b *Builder) addTextSearchConfiguration(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	parser, err := requiredString(block, "parser")
	if err != nil {
		return err
	}
	options, err := stringMapAttr(block, "options")
	if err != nil {
		return err
	}
	b.ir.TextSearchConfigurations = append(b.ir.TextSearchConfigurations, TextSearchConfiguration{Meta: m, Parser: parser, Options: options})
	return nil
}

func (b *Builder) addStatistics(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	table, err := requiredString(block, "table")
	if err != nil {
		return err
	}
	columns, err := stringListAttr(block, "columns")
	if err != nil {
		return err
	}
	kinds, err := stringListAttr(block, "kinds")
	if err != nil {
		return err
	}
	b.ir.Statistics = append(b.ir.Statistics, Statistics{Meta: m, Table: table, Columns: columns, Kinds: kinds})
	return nil
}

// rawAttrs captures every attribute on block as plain strings, for the
// opaque Test/Invariant/Scenario records the transactional test harness (out
// of this compiler's scope) interprets.
func rawAttrs(block *expand.Block) (map[string]string, *diag.Error) {
	out := map[string]string{}
	for name, attr := range block.Attrs {
		if name == "name" || name == "schema" || name == "lint_ignore" {
			continue
		}
		val, diags := evalexprString(attr, block)
		if diags != nil {
			return nil, diags
		}
		out[name] = val
	}
	return out, nil
}

func (b *Builder) addTest(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	desc, err := stringAttr(block, "description", "")
	if err != nil {
		return err
	}
	raw, err := rawAttrs(block)
	if err != nil {
		return err
	}
	b.ir.Tests = append(b.ir.Tests, Test{Meta: m, ID: uuid.NewString(), Description: desc, Raw: raw})
	return nil
}

func (b *Builder) addInvariant(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	condition, err := requiredString(block, "condition")
	if err != nil {
		return err
	}
	raw, err := rawAttrs(block)
	if err != nil {
		return err
	}
	b.ir.Invariants = append(b.ir.Invariants, Invariant{Meta: m, Condition: condition, Raw: raw})
	return nil
}

func (b *Builder) addScenario(block *expand.Block, moduleID string) *diag.Error {
	m, err := resourceMeta(b, block, moduleID)
	if err != nil {
		return err
	}
	desc, err := stringAttr(block, "description", "")
	if err != nil {
		return err
	}
	raw, err := rawAttrs(block)
	if err != nil {
		return err
	}
	b.ir.Scenarios = append(b.ir.Scenarios, Scenario{Meta: m, ID: uuid.NewString(), Description: desc, Raw: raw})
	return nil
}
