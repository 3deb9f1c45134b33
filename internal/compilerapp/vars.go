package compilerapp

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/evalexpr"
	"github.com/dbschema/dbschema/internal/lang"
	"github.com/dbschema/dbschema/internal/loader"
	"github.com/dbschema/dbschema/internal/scope"
)

// resolveVars merges var-file attributes and --var pairs into the single
// map the resolver's ResolveRoot expects, applying spec.md 4.D's priority
// order: defaults (handled inside the resolver) < --var-file < --var.
func resolveVars(cfg *Config, ld loader.Loader) (map[string]cty.Value, *diag.Error) {
	vars := map[string]cty.Value{}
	root := scope.Root(nil)

	for _, path := range cfg.VarFiles {
		contents, err := ld.Load(path)
		if err != nil {
			return nil, diag.IOError(path, err)
		}
		body, diags := lang.ParseFile(path, contents)
		if diags.HasErrors() {
			return nil, diag.FromDiagnostics(diags)
		}
		for name, attr := range body.Attributes {
			val, diags := evalexpr.Eval(attr.Expr, root)
			if diags.HasErrors() {
				return nil, diag.FromDiagnostics(diags)
			}
			vars[name] = val
		}
	}

	for _, kv := range cfg.Vars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, diag.ParseError("<--var>", nil, fmt.Sprintf("malformed --var %q, expected key=value", kv))
		}
		vars[name] = cty.StringVal(value)
	}

	return vars, nil
}
