package ir

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/evalexpr"
	"github.com/dbschema/dbschema/internal/expand"
)

func optString(b *expand.Block, name string) (string, bool, *diag.Error) {
	attr, ok := b.Attr(name)
	if !ok {
		return "", false, nil
	}
	val, diags := evalexpr.EvalString(attr.Expr, b.Scope)
	if diags.HasErrors() {
		return "", true, diag.FromDiagnostics(diags)
	}
	return val, true, nil
}

func stringAttr(b *expand.Block, name, def string) (string, *diag.Error) {
	val, ok, err := optString(b, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return val, nil
}

func requiredString(b *expand.Block, name string) (string, *diag.Error) {
	val, ok, err := optString(b, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", diag.MissingRequiredAttribute(b.Kind, blockLabel(b), name, &b.DefRange)
	}
	return val, nil
}

func boolAttr(b *expand.Block, name string, def bool) (bool, *diag.Error) {
	attr, ok := b.Attr(name)
	if !ok {
		return def, nil
	}
	val, diags := evalexpr.EvalBool(attr.Expr, b.Scope)
	if diags.HasErrors() {
		return def, diag.FromDiagnostics(diags)
	}
	return val, nil
}

func stringListAttr(b *expand.Block, name string) ([]string, *diag.Error) {
	attr, ok := b.Attr(name)
	if !ok {
		return nil, nil
	}
	val, diags := evalexpr.Eval(attr.Expr, b.Scope)
	if diags.HasErrors() {
		return nil, diag.FromDiagnostics(diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, diag.TypeMismatch("list(string)", ty.FriendlyName(), name, attr.Expr.Range().Ptr())
	}
	var out []string
	it := val.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		s, err := evalexpr.StringOf(elem)
		if err != nil {
			return nil, diag.TypeMismatch("string", elem.Type().FriendlyName(), name, attr.Expr.Range().Ptr())
		}
		out = append(out, s)
	}
	return out, nil
}

func stringMapAttr(b *expand.Block, name string) (map[string]string, *diag.Error) {
	attr, ok := b.Attr(name)
	if !ok {
		return nil, nil
	}
	val, diags := evalexpr.Eval(attr.Expr, b.Scope)
	if diags.HasErrors() {
		return nil, diag.FromDiagnostics(diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, diag.TypeMismatch("map(string)", val.Type().FriendlyName(), name, attr.Expr.Range().Ptr())
	}
	out := map[string]string{}
	for k, v := range val.AsValueMap() {
		s, err := evalexpr.StringOf(v)
		if err != nil {
			return nil, diag.TypeMismatch("string", v.Type().FriendlyName(), name, attr.Expr.Range().Ptr())
		}
		out[k] = s
	}
	return out, nil
}

func int64Attr(b *expand.Block, name string, def int64) (int64, *diag.Error) {
	attr, ok := b.Attr(name)
	if !ok {
		return def, nil
	}
	val, diags := evalexpr.Eval(attr.Expr, b.Scope)
	if diags.HasErrors() {
		return def, diag.FromDiagnostics(diags)
	}
	if val.IsNull() {
		return def, nil
	}
	n, err := evalexpr.IntOf(val)
	if err != nil {
		return def, diag.TypeMismatch("number", val.Type().FriendlyName(), name, attr.Expr.Range().Ptr())
	}
	return n, nil
}

func optInt64Attr(b *expand.Block, name string) (*int64, *diag.Error) {
	attr, ok := b.Attr(name)
	if !ok {
		return nil, nil
	}
	val, diags := evalexpr.Eval(attr.Expr, b.Scope)
	if diags.HasErrors() {
		return nil, diag.FromDiagnostics(diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	n, err := evalexpr.IntOf(val)
	if err != nil {
		return nil, diag.TypeMismatch("number", val.Type().FriendlyName(), name, attr.Expr.Range().Ptr())
	}
	return &n, nil
}

// evalexprString evaluates attr's expression in block's scope and converts
// the result to a string, for rawAttrs' pass-through capture of every
// attribute on an opaque Test/Invariant/Scenario block.
func evalexprString(attr *hclsyntax.Attribute, block *expand.Block) (string, *diag.Error) {
	val, diags := evalexpr.Eval(attr.Expr, block.Scope)
	if diags.HasErrors() {
		return "", diag.FromDiagnostics(diags)
	}
	s, err := evalexpr.StringOf(val)
	if err != nil {
		return "", diag.TypeMismatch("string", val.Type().FriendlyName(), attr.Name, attr.Range().Ptr())
	}
	return s, nil
}

func lintIgnoreAttr(b *expand.Block) (map[string]bool, *diag.Error) {
	rules, err := stringListAttr(b, "lint_ignore")
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	out := make(map[string]bool, len(rules))
	for _, r := range rules {
		out[r] = true
	}
	return out, nil
}

func blockLabel(b *expand.Block) string {
	if len(b.Labels) > 0 {
		return b.Labels[len(b.Labels)-1]
	}
	return ""
}

// knownAttrs checks b's attribute set against the recognized names for its
// kind, reporting an UnknownAttribute warning per spec.md 4.G for each
// extra one (for_each/count/name/schema/lint_ignore are always allowed).
func knownAttrs(b *expand.Block, names ...string) []*diag.Error {
	allowed := map[string]bool{"name": true, "schema": true, "lint_ignore": true}
	for _, n := range names {
		allowed[n] = true
	}
	var warnings []*diag.Error
	for attrName, attr := range b.Attrs {
		if !allowed[attrName] {
			warnings = append(warnings, diag.UnknownAttribute(b.Kind, attrName, attr.Range().Ptr()))
		}
	}
	return warnings
}
