package module

import (
	"path"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/evalexpr"
	"github.com/dbschema/dbschema/internal/lang"
	"github.com/dbschema/dbschema/internal/scope"
)

// pendingBinding is one not-yet-evaluated local or data source, per spec.md
// 4.E step 3: "evaluate them lazily but memoized". Dependencies among them
// are resolved by repeatedly evaluating whatever has no outstanding
// dependency left, which observes the same evaluation order true laziness
// would produce for every local/data actually referenced, without needing a
// demand-driven interpreter.
type pendingBinding struct {
	id     string
	kind   string // "local" or "data"
	name   string
	dsType string
	expr   hcl.Expression // local value expression
	block  *hclsyntax.Block
	rng    hcl.Range
}

func localID(name string) string       { return "local." + name }
func dataID(dsType, name string) string { return "data." + dsType + "." + name }

// bindLocalsAndData evaluates every `locals` attribute and `data` block
// declared in dir's module, in dependency order, binding each into scope as
// it resolves.
func (r *Resolver) bindLocalsAndData(s *scope.Scope, dir string, localsBlocks, dataBlocks []*hclsyntax.Block) (*scope.Scope, *diag.Error) {
	pending := map[string]*pendingBinding{}

	for _, block := range localsBlocks {
		for name, attr := range block.Body.Attributes {
			pending[localID(name)] = &pendingBinding{
				id: localID(name), kind: "local", name: name, expr: attr.Expr, rng: attr.Range(),
			}
		}
	}
	for _, block := range dataBlocks {
		if len(block.Labels) != 2 {
			defRange := block.DefRange()
			return nil, diag.ParseError(defRange.Filename, &defRange, "\"data\" block requires a type and a name label")
		}
		dsType, name := block.Labels[0], block.Labels[1]
		if _, ok := r.opts.DataSources.Lookup(dsType); !ok {
			defRange := block.DefRange()
			return nil, diag.DataSourceUnsupported(dsType, &defRange)
		}
		defRange := block.DefRange()
		pending[dataID(dsType, name)] = &pendingBinding{
			id: dataID(dsType, name), kind: "data", name: name, dsType: dsType, block: block, rng: defRange,
		}
	}

	depsOf := map[string][]string{}
	for id, p := range pending {
		depsOf[id] = depsWithin(p, pending)
	}

	for len(pending) > 0 {
		ids := make([]string, 0, len(pending))
		for id := range pending {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		progressed := false
		for _, id := range ids {
			p := pending[id]
			ready := true
			for _, dep := range depsOf[id] {
				if _, stillPending := pending[dep]; stillPending {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}

			val, err := r.evalBinding(p, dir, s)
			if err != nil {
				return nil, err
			}
			if p.kind == "local" {
				s = s.WithLocal(p.name, val)
			} else {
				s = s.WithData(p.dsType, p.name, val)
			}
			delete(pending, id)
			progressed = true
		}

		if !progressed {
			remaining := make([]string, 0, len(pending))
			for id := range pending {
				remaining = append(remaining, id)
			}
			sort.Strings(remaining)
			return nil, diag.ModuleCycle(remaining)
		}
	}

	return s, nil
}

func (r *Resolver) evalBinding(p *pendingBinding, dir string, s *scope.Scope) (cty.Value, *diag.Error) {
	if p.kind == "local" {
		val, diags := evalexpr.Eval(p.expr, s)
		if diags.HasErrors() {
			return cty.NilVal, diag.FromDiagnostics(diags)
		}
		return val, nil
	}

	attrs := map[string]cty.Value{}
	for name, attr := range p.block.Body.Attributes {
		val, diags := evalexpr.Eval(attr.Expr, s)
		if diags.HasErrors() {
			return cty.NilVal, diag.FromDiagnostics(diags)
		}
		attrs[name] = val
	}

	load, ok := r.opts.DataSources.Lookup(p.dsType)
	if !ok {
		return cty.NilVal, diag.DataSourceUnsupported(p.dsType, &p.rng)
	}
	fileLoader := func(relPath string) (string, error) {
		return r.ld.Load(resolveRelative(dir, relPath))
	}
	val, diags := load(attrs, fileLoader)
	if diags.HasErrors() {
		return cty.NilVal, diag.FromDiagnostics(diags)
	}
	return val, nil
}

func resolveRelative(dir, relPath string) string {
	if len(relPath) > 0 && relPath[0] == '/' {
		return relPath
	}
	return path.Join(dir, relPath)
}

// depsWithin returns the ids, among those still pending, that p's
// expression(s) reference via local.* or data.<type>.<name> traversals.
func depsWithin(p *pendingBinding, pending map[string]*pendingBinding) []string {
	exprs := p.exprs()
	refs, _ := lang.ExtractReferencesAndFunctions(exprs...)

	seen := map[string]bool{}
	var deps []string
	for _, ref := range refs {
		if len(ref) == 0 {
			continue
		}
		root, ok := ref[0].(hcl.TraverseRoot)
		if !ok {
			continue
		}
		switch root.Name {
		case "local":
			if len(ref) < 2 {
				continue
			}
			attr, ok := ref[1].(hcl.TraverseAttr)
			if !ok {
				continue
			}
			id := localID(attr.Name)
			if _, exists := pending[id]; exists && !seen[id] {
				seen[id] = true
				deps = append(deps, id)
			}
		case "data":
			if len(ref) < 3 {
				continue
			}
			typeAttr, ok1 := ref[1].(hcl.TraverseAttr)
			nameAttr, ok2 := ref[2].(hcl.TraverseAttr)
			if !ok1 || !ok2 {
				continue
			}
			id := dataID(typeAttr.Name, nameAttr.Name)
			if _, exists := pending[id]; exists && !seen[id] {
				seen[id] = true
				deps = append(deps, id)
			}
		}
	}
	return deps
}

func (p *pendingBinding) exprs() []hcl.Expression {
	if p.kind == "local" {
		return []hcl.Expression{p.expr}
	}
	var out []hcl.Expression
	for _, attr := range p.block.Body.Attributes {
		out = append(out, attr.Expr)
	}
	return out
}
