package expand

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/evalexpr"
	"github.com/dbschema/dbschema/internal/scope"
)

// Block is a concrete block after for_each/count/dynamic expansion: exactly
// one resource instance, with each.*/count.index (if any) already bound
// into Scope. The IR builder reads Attrs/Blocks directly; it never sees
// for_each, count, or dynamic.
type Block struct {
	Kind     string
	Labels   []string
	Attrs    hclsyntax.Attributes
	Blocks   []*Block
	Scope    *scope.Scope
	DefRange hcl.Range
}

// Attr looks up a single attribute by name, reporting whether it was present.
func (b *Block) Attr(name string) (*hclsyntax.Attribute, bool) {
	a, ok := b.Attrs[name]
	return a, ok
}

// ResourceName returns the block's logical name: the "name" attribute if the
// block declares one, otherwise its last label. Per spec.md 4.F, expanding
// a block with no "name" attribute and no name-disambiguating label
// collapses multiple copies onto the same name — a caller error surfaced
// later as an EmitConflict, not rejected here.
func (b *Block) ResourceName(s *scope.Scope) (string, hcl.Diagnostics) {
	if nameAttr, ok := b.Attrs["name"]; ok {
		return evalexpr.EvalString(nameAttr.Expr, s)
	}
	if len(b.Labels) > 0 {
		return b.Labels[len(b.Labels)-1], nil
	}
	return "", hcl.Diagnostics{&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Missing resource name",
		Detail:   fmt.Sprintf("%s block has neither a label nor a \"name\" attribute.", b.Kind),
		Subject:  &b.DefRange,
	}}
}

// Expand expands a single source AST block against s, returning one Block
// per concrete instance (one, unless for_each/count produced more).
func Expand(src *hclsyntax.Block, s *scope.Scope) ([]*Block, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	body := src.Body

	forEachAttr, hasForEach := body.Attributes["for_each"]
	countAttr, hasCount := body.Attributes["count"]
	if hasForEach && hasCount {
		srcRange := src.Range()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Conflicting looping attributes",
			Detail:   "\"for_each\" and \"count\" cannot be used together on the same block.",
			Subject:  &srcRange,
		})
		return nil, diags
	}

	iterations, iterDiags := iterationScopes(hasForEach, forEachAttr, hasCount, countAttr, s)
	diags = append(diags, iterDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	remaining := make(hclsyntax.Attributes, len(body.Attributes))
	for name, attr := range body.Attributes {
		if name == "for_each" || name == "count" {
			continue
		}
		remaining[name] = attr
	}

	var out []*Block
	for _, iterScope := range iterations {
		childBlocks, childDiags := expandChildren(body.Blocks, iterScope)
		diags = append(diags, childDiags...)
		out = append(out, &Block{
			Kind:     src.Type,
			Labels:   src.Labels,
			Attrs:    remaining,
			Blocks:   childBlocks,
			Scope:    iterScope,
			DefRange: src.DefRange(),
		})
	}
	return out, diags
}

// iterationScopes computes one Scope per concrete instance a block's
// for_each/count attribute (if any) produces.
func iterationScopes(
	hasForEach bool, forEachAttr *hclsyntax.Attribute,
	hasCount bool, countAttr *hclsyntax.Attribute,
	s *scope.Scope,
) ([]*scope.Scope, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	switch {
	case hasCount:
		val, countDiags := evalexpr.Eval(countAttr.Expr, s)
		diags = append(diags, countDiags...)
		if diags.HasErrors() {
			return nil, diags
		}
		if val.IsNull() || val.Type() != cty.Number {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid count value",
				Detail:   "The \"count\" attribute must be a number.",
				Subject:  countAttr.Expr.Range().Ptr(),
			})
			return nil, diags
		}
		n, _ := val.AsBigFloat().Int64()
		scopes := make([]*scope.Scope, 0, n)
		for i := int64(0); i < n; i++ {
			scopes = append(scopes, s.WithCount(int(i)))
		}
		return scopes, diags

	case hasForEach:
		val, feDiags := evalexpr.Eval(forEachAttr.Expr, s)
		diags = append(diags, feDiags...)
		if diags.HasErrors() {
			return nil, diags
		}
		return forEachScopes(val, forEachAttr.Expr.Range(), s)

	default:
		return []*scope.Scope{s}, diags
	}
}

// forEachScopes binds each.key/each.value per spec.md 4.F: numeric,
// zero-based key for lists/tuples/sets; string key for maps/objects, never
// coerced to a number even when it looks numeric (spec.md §9 open question).
func forEachScopes(val cty.Value, rng hcl.Range, s *scope.Scope) ([]*scope.Scope, hcl.Diagnostics) {
	if val.IsNull() {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid for_each value",
			Detail:   "The \"for_each\" attribute cannot be null.",
			Subject:  &rng,
		}}
	}

	ty := val.Type()
	switch {
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var scopes []*scope.Scope
		i := 0
		it := val.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			scopes = append(scopes, s.WithEach(cty.NumberIntVal(int64(i)), elem))
			i++
		}
		return scopes, nil

	case ty.IsMapType() || ty.IsObjectType():
		keys := make([]string, 0)
		values := val.AsValueMap()
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		scopes := make([]*scope.Scope, 0, len(keys))
		for _, k := range keys {
			scopes = append(scopes, s.WithEach(cty.StringVal(k), values[k]))
		}
		return scopes, nil

	default:
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid for_each value",
			Detail:   "The \"for_each\" attribute must be a list, set, tuple, or map/object value.",
			Subject:  &rng,
		}}
	}
}

// expandChildren expands every nested block, inlining "dynamic" blocks into
// their generated concrete blocks.
func expandChildren(blocks hclsyntax.Blocks, s *scope.Scope) ([]*Block, hcl.Diagnostics) {
	var out []*Block
	var diags hcl.Diagnostics

	for _, child := range blocks {
		if child.Type == "dynamic" {
			expanded, dynDiags := expandDynamic(child, s)
			diags = append(diags, dynDiags...)
			out = append(out, expanded...)
			continue
		}
		expanded, childDiags := Expand(child, s)
		diags = append(diags, childDiags...)
		out = append(out, expanded...)
	}
	return out, diags
}

// expandDynamic expands a `dynamic "X" { for_each = ...; labels = [...];
// content { ... } }` block into one concrete Block of kind X per iteration.
// dynamic may nest: content's own body is expanded recursively, so a
// dynamic block inside a content block is handled the same way.
func expandDynamic(block *hclsyntax.Block, s *scope.Scope) ([]*Block, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	defRange := block.DefRange()
	if len(block.Labels) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid dynamic block",
			Detail:   "\"dynamic\" requires exactly one label naming the block kind to generate.",
			Subject:  &defRange,
		})
		return nil, diags
	}
	kind := block.Labels[0]

	forEachAttr, ok := block.Body.Attributes["for_each"]
	if !ok {
		blockRange := block.Range()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid dynamic block",
			Detail:   "\"dynamic\" requires a \"for_each\" attribute.",
			Subject:  &blockRange,
		})
		return nil, diags
	}
	var contentBlock *hclsyntax.Block
	for _, b := range block.Body.Blocks {
		if b.Type == "content" {
			contentBlock = b
			break
		}
	}
	if contentBlock == nil {
		blockRange := block.Range()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid dynamic block",
			Detail:   "\"dynamic\" requires a nested \"content\" block.",
			Subject:  &blockRange,
		})
		return nil, diags
	}

	val, feDiags := evalexpr.Eval(forEachAttr.Expr, s)
	diags = append(diags, feDiags...)
	if diags.HasErrors() {
		return nil, diags
	}
	iterScopes, iterDiags := forEachScopes(val, forEachAttr.Expr.Range(), s)
	diags = append(diags, iterDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	var out []*Block
	for _, iterScope := range iterScopes {
		labels, labelDiags := dynamicLabels(block.Body.Attributes["labels"], iterScope)
		diags = append(diags, labelDiags...)

		childBlocks, childDiags := expandChildren(contentBlock.Body.Blocks, iterScope)
		diags = append(diags, childDiags...)

		out = append(out, &Block{
			Kind:     kind,
			Labels:   labels,
			Attrs:    contentBlock.Body.Attributes,
			Blocks:   childBlocks,
			Scope:    iterScope,
			DefRange: block.DefRange(),
		})
	}
	return out, diags
}

func dynamicLabels(attr *hclsyntax.Attribute, s *scope.Scope) ([]string, hcl.Diagnostics) {
	if attr == nil {
		return nil, nil
	}
	val, diags := evalexpr.Eval(attr.Expr, s)
	if diags.HasErrors() || val.IsNull() {
		return nil, diags
	}
	if !val.Type().IsListType() && !val.Type().IsTupleType() && !val.Type().IsSetType() {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid dynamic labels",
			Detail:   "\"labels\" must be a list of strings.",
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	var labels []string
	it := val.ElementIterator()
	for it.Next() {
		_, v := it.Element()
		s, err := evalexpr.StringOf(v)
		if err != nil {
			return nil, hcl.Diagnostics{&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid dynamic labels",
				Detail:   err.Error(),
				Subject:  attr.Expr.Range().Ptr(),
			}}
		}
		labels = append(labels, s)
	}
	return labels, nil
}
