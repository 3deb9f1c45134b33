package module

import (
	"path"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/dbschema/dbschema/internal/datasource"
	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/evalexpr"
	"github.com/dbschema/dbschema/internal/expand"
	"github.com/dbschema/dbschema/internal/ir"
	"github.com/dbschema/dbschema/internal/lang"
	"github.com/dbschema/dbschema/internal/loader"
	"github.com/dbschema/dbschema/internal/scope"
	"github.com/dbschema/dbschema/internal/typesys"
)

// Options configures a Resolver.
type Options struct {
	Strict      bool
	Functions   map[string]function.Function
	DataSources *datasource.Registry
}

// Resolver walks the module import graph rooted at one directory, per
// spec.md 4.E's algorithm: an `active` stack for cycle detection (a module
// is only ever instantiated once per call site, so there is no separate
// `loaded` cache to thread through).
type Resolver struct {
	ld      loader.Loader
	opts    Options
	builder *ir.Builder

	active []string

	// Warnings accumulates non-fatal findings (unrecognized top-level block
	// types). Component H owns every other warning kind.
	Warnings []*diag.Error
}

// New creates a Resolver that accumulates IR into b.
func New(ld loader.Loader, b *ir.Builder, opts Options) *Resolver {
	return &Resolver{ld: ld, opts: opts, builder: b}
}

// ResolveRoot loads rootFile's enclosing directory as the root module, with
// suppliedVars already merged (defaults < --var-file < --var, per spec.md
// 4.D) as the highest-priority input short of an enclosing caller — the
// root module has none.
func (r *Resolver) ResolveRoot(rootFile string, suppliedVars map[string]cty.Value) (map[string]cty.Value, *diag.Error) {
	dir := path.Dir(rootFile)
	return r.resolveModule(dir, suppliedVars)
}

func (r *Resolver) resolveModule(dir string, suppliedVars map[string]cty.Value) (map[string]cty.Value, *diag.Error) {
	for _, a := range r.active {
		if a == dir {
			chain := append(append([]string{}, r.active...), dir)
			return nil, diag.ModuleCycle(chain)
		}
	}
	r.active = append(r.active, dir)
	defer func() { r.active = r.active[:len(r.active)-1] }()

	body, err := r.loadModuleBody(dir)
	if err != nil {
		return nil, err
	}

	s := scope.Root(r.opts.Functions)

	var variableBlocks, localsBlocks, dataBlocks, moduleBlocks, outputBlocks []*hclsyntax.Block
	var resourceBlocks []*hclsyntax.Block
	for _, block := range lang.SortedSyntaxBlocks(body.Blocks) {
		switch block.Type {
		case "variable":
			variableBlocks = append(variableBlocks, block)
		case "locals":
			localsBlocks = append(localsBlocks, block)
		case "data":
			dataBlocks = append(dataBlocks, block)
		case "module":
			moduleBlocks = append(moduleBlocks, block)
		case "output":
			outputBlocks = append(outputBlocks, block)
		default:
			if ir.ResourceKinds[block.Type] {
				resourceBlocks = append(resourceBlocks, block)
			} else {
				r.warnUnknownBlock(block)
			}
		}
	}

	s, err = r.bindVariables(s, variableBlocks, suppliedVars)
	if err != nil {
		return nil, err
	}

	// spec.md 4.E step 4: locals, data, resource, and module blocks all
	// interleave in file order, since a module block's outputs must become
	// visible to whatever follows it — a local, a data source, or another
	// resource — in the same file set. Consecutive locals/data blocks are
	// batched and resolved together so their existing lazy, dependency-order
	// evaluation (bindLocalsAndData) still applies within a run; hitting a
	// module or resource block flushes whatever batch is outstanding first.
	var pendingLocals, pendingData []*hclsyntax.Block
	flush := func() *diag.Error {
		if len(pendingLocals) == 0 && len(pendingData) == 0 {
			return nil
		}
		var ferr *diag.Error
		s, ferr = r.bindLocalsAndData(s, dir, pendingLocals, pendingData)
		pendingLocals, pendingData = nil, nil
		return ferr
	}

	interleaved := append(append(append(append([]*hclsyntax.Block{}, localsBlocks...), dataBlocks...), resourceBlocks...), moduleBlocks...)
	for _, block := range lang.SortedSyntaxBlocks(interleaved) {
		switch block.Type {
		case "locals":
			pendingLocals = append(pendingLocals, block)
		case "data":
			pendingData = append(pendingData, block)
		case "module":
			if ferr := flush(); ferr != nil {
				return nil, ferr
			}
			var merr *diag.Error
			s, merr = r.evalModuleBlock(block, dir, s)
			if merr != nil {
				return nil, merr
			}
		default:
			if ferr := flush(); ferr != nil {
				return nil, ferr
			}
			if berr := r.expandAndBuild(block, dir, s); berr != nil {
				return nil, berr
			}
		}
	}
	if ferr := flush(); ferr != nil {
		return nil, ferr
	}

	outputs, err := r.evalOutputs(outputBlocks, s)
	if err != nil {
		return nil, err
	}
	return outputs, nil
}

func (r *Resolver) warnUnknownBlock(block *hclsyntax.Block) {
	defRange := block.DefRange()
	r.Warnings = append(r.Warnings, &diag.Error{
		Kind:    diag.KindParseError,
		Message: "unrecognized top-level block type \"" + block.Type + "\"",
		Range:   &defRange,
	})
}

// loadModuleBody reads and merges every .hcl file in dir (main.hcl plus any
// siblings the loader can enumerate) into a single body, per spec.md 4.E
// step 1.
func (r *Resolver) loadModuleBody(dir string) (*hclsyntax.Body, *diag.Error) {
	var files []string
	if lister, ok := r.ld.(loader.DirLister); ok {
		listed, lerr := lister.ListDir(dir, ".hcl")
		if lerr == nil && len(listed) > 0 {
			files = listed
		}
	}
	if len(files) == 0 {
		files = []string{path.Join(dir, "main.hcl")}
	}

	var bodies []*hclsyntax.Body
	for _, f := range files {
		contents, lerr := r.ld.Load(f)
		if lerr != nil {
			if _, ok := lerr.(*loader.NotFoundError); ok {
				return nil, diag.ModuleSourceMissing(f, nil)
			}
			return nil, diag.IOError(f, lerr)
		}
		parsed, diags := lang.ParseFile(f, contents)
		if diags.HasErrors() {
			return nil, diag.FromDiagnostics(diags)
		}
		bodies = append(bodies, parsed)
	}
	return lang.MergeBodies(bodies), nil
}

// bindVariables processes `variable` blocks in file order, coercing each
// one's supplied or default value and binding it into scope before moving
// to the next, so a later variable's default may reference an earlier one.
func (r *Resolver) bindVariables(s *scope.Scope, blocks []*hclsyntax.Block, supplied map[string]cty.Value) (*scope.Scope, *diag.Error) {
	for _, block := range blocks {
		if len(block.Labels) != 1 {
			defRange := block.DefRange()
			return nil, diag.ParseError(defRange.Filename, &defRange, "\"variable\" block requires exactly one label")
		}
		name := block.Labels[0]
		defRange := block.DefRange()

		ty := cty.DynamicPseudoType
		hasType := false
		if attr, ok := block.Body.Attributes["type"]; ok {
			parsed, diags := typesys.ParseTypeExpr(attr.Expr)
			if diags.HasErrors() {
				return nil, diag.FromDiagnostics(diags)
			}
			ty = parsed
			hasType = true
		}

		var rules []typesys.ValidationRule
		for _, child := range block.Body.Blocks {
			if child.Type != "validation" {
				continue
			}
			cond, ok1 := child.Body.Attributes["condition"]
			msg, ok2 := child.Body.Attributes["error_message"]
			if !ok1 || !ok2 {
				childRange := child.DefRange()
				return nil, diag.MissingRequiredAttribute("validation", name, "condition/error_message", &childRange)
			}
			childRange := child.DefRange()
			rules = append(rules, typesys.ValidationRule{Condition: cond.Expr, ErrorMessage: msg.Expr, Range: &childRange})
		}

		var raw cty.Value
		if supplied != nil && hasSupplied(supplied, name) {
			raw = supplied[name]
		} else {
			defaultAttr, ok := block.Body.Attributes["default"]
			if !ok {
				return nil, diag.MissingRequiredAttribute("variable", name, "value", &defRange)
			}
			val, diags := evalexpr.Eval(defaultAttr.Expr, s)
			if diags.HasErrors() {
				return nil, diag.FromDiagnostics(diags)
			}
			raw = val
		}

		if !hasType {
			ty = raw.Type()
		}
		coerced, _, cerr := typesys.CoerceVariable(name, raw, ty, &defRange)
		if cerr != nil {
			return nil, cerr
		}
		if verr := typesys.RunValidations(name, coerced, rules); verr != nil {
			return nil, verr
		}
		s = s.WithVar(name, coerced)
	}
	return s, nil
}

func hasSupplied(m map[string]cty.Value, name string) bool {
	_, ok := m[name]
	return ok
}

// expandAndBuild expands block against s and feeds every resulting concrete
// instance to the IR builder, tagged with moduleID.
func (r *Resolver) expandAndBuild(block *hclsyntax.Block, moduleID string, s *scope.Scope) *diag.Error {
	expanded, diags := expand.Expand(block, s)
	if diags.HasErrors() {
		return diag.FromDiagnostics(diags)
	}
	for _, b := range expanded {
		if berr := r.builder.Add(b, moduleID); berr != nil {
			return berr
		}
	}
	return nil
}

func (r *Resolver) evalOutputs(blocks []*hclsyntax.Block, s *scope.Scope) (map[string]cty.Value, *diag.Error) {
	outputs := map[string]cty.Value{}
	for _, block := range blocks {
		if len(block.Labels) != 1 {
			defRange := block.DefRange()
			return nil, diag.ParseError(defRange.Filename, &defRange, "\"output\" block requires exactly one label")
		}
		name := block.Labels[0]
		valueAttr, ok := block.Body.Attributes["value"]
		if !ok {
			defRange := block.DefRange()
			return nil, diag.MissingRequiredAttribute("output", name, "value", &defRange)
		}
		val, diags := evalexpr.Eval(valueAttr.Expr, s)
		if diags.HasErrors() {
			return nil, diag.FromDiagnostics(diags)
		}
		outputs[name] = val
	}
	return outputs, nil
}

func (r *Resolver) evalModuleBlock(block *hclsyntax.Block, parentDir string, s *scope.Scope) (*scope.Scope, *diag.Error) {
	if len(block.Labels) != 1 {
		defRange := block.DefRange()
		return nil, diag.ParseError(defRange.Filename, &defRange, "\"module\" block requires exactly one label")
	}
	name := block.Labels[0]
	defRange := block.DefRange()

	sourceAttr, ok := block.Body.Attributes["source"]
	if !ok {
		return nil, diag.MissingRequiredAttribute("module", name, "source", &defRange)
	}
	sourceVal, diags := evalexpr.Eval(sourceAttr.Expr, s)
	if diags.HasErrors() {
		return nil, diag.FromDiagnostics(diags)
	}
	sourcePath, serr := evalexpr.StringOf(sourceVal)
	if serr != nil {
		rng := sourceAttr.Expr.Range()
		return nil, diag.TypeMismatch("string", sourceVal.Type().FriendlyName(), "module."+name+".source", &rng)
	}

	childDir := path.Clean(path.Join(parentDir, sourcePath))

	inputs := map[string]cty.Value{}
	for attrName, attr := range block.Body.Attributes {
		if attrName == "source" {
			continue
		}
		val, vdiags := evalexpr.Eval(attr.Expr, s)
		if vdiags.HasErrors() {
			return nil, diag.FromDiagnostics(vdiags)
		}
		inputs[attrName] = val
	}

	outputs, cerr := r.resolveModule(childDir, inputs)
	if cerr != nil {
		return nil, cerr
	}

	return s.WithModuleOutputs(name, outputs), nil
}
