// Package compiler wires the pipeline stages into the driver spec.md §2
// describes: load → expand → build → validate → emit. It owns none of the
// stages' logic — only the order they run in and how their diagnostics
// accumulate into one Result.
package compiler

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/dbschema/dbschema/internal/datasource"
	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/funcs"
	"github.com/dbschema/dbschema/internal/ir"
	"github.com/dbschema/dbschema/internal/loader"
	"github.com/dbschema/dbschema/internal/module"
)

// Options configures one compile run.
type Options struct {
	Strict bool
	Vars   map[string]cty.Value
}

// Result is everything a caller needs after a compile run: the frozen IR
// (nil if resolution itself failed before any IR existed), every warning
// (unknown blocks/attributes, lint-level findings), and every fatal error.
// A caller checks len(Errors) == 0 before emitting.
type Result struct {
	IR       *ir.IR
	Warnings []*diag.Error
	Errors   []*diag.Error
}

// Compile runs A through H against rootFile: parses and resolves every
// module it transitively reaches (E, which internally drives F and G),
// applies the post-build normalization pass, then validates (H). It never
// panics on user input — ir.Builder.Add's panic path only fires for a
// resolver bug, since the resolver only ever forwards grammar-recognized
// block kinds.
func Compile(ld loader.Loader, rootFile string, opts Options) *Result {
	builder := ir.NewBuilder(opts.Strict)
	resolver := module.New(ld, builder, module.Options{
		Strict:      opts.Strict,
		Functions:   funcs.Registry(),
		DataSources: datasource.Default(),
	})

	if _, err := resolver.ResolveRoot(rootFile, opts.Vars); err != nil {
		return &Result{Errors: []*diag.Error{err}, Warnings: resolver.Warnings}
	}

	doc := builder.Freeze()
	ir.Normalize(doc)

	errs, warnings := ir.Validate(doc, opts.Strict)
	warnings = append(append(resolver.Warnings, builder.Warnings...), warnings...)

	return &Result{IR: doc, Warnings: warnings, Errors: errs}
}
