package compilerapp

import (
	"context"
	"fmt"

	"github.com/dbschema/dbschema/internal/compiler"
	"github.com/dbschema/dbschema/internal/ctxlog"
	"github.com/dbschema/dbschema/internal/diag"
)

// Validate runs stages A through H against the configured input and prints
// resource counts on success, per spec.md §6.4: "run A-H, print resource
// counts, exit 0 on success / 1 on error."
func (a *App) Validate(ctx context.Context) *diag.Error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.DebugContext(ctx, "validate starting", "input", a.config.InputPath)

	vars, verr := resolveVars(a.config, a.ld)
	if verr != nil {
		return verr
	}

	result := compiler.Compile(a.ld, a.config.InputPath, compiler.Options{
		Strict: a.config.Strict,
		Vars:   vars,
	})

	for _, w := range result.Warnings {
		fmt.Fprintf(a.errW, "warning: %s\n", w.Error())
	}

	if len(result.Errors) > 0 {
		return result.Errors[0]
	}

	doc := result.IR
	fmt.Fprintf(a.outW, "ok: %d schemas, %d tables, %d enums, %d indexes, %d views, %d functions, %d triggers, %d policies\n",
		len(doc.Schemas), len(doc.Tables), len(doc.Enums), len(doc.Indexes), len(doc.Views), len(doc.Functions), len(doc.Triggers), len(doc.Policies))
	return nil
}
