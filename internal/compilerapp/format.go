package compilerapp

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/dbschema/dbschema/internal/ctxlog"
	"github.com/dbschema/dbschema/internal/diag"
)

// Format reparses and reserializes every path in canonical style, writing
// each file back in place. Per spec.md §6.4/§7, fmt only needs stage A
// (the lexer/parser) and reports errors per-file rather than aborting the
// whole run, so one malformed file doesn't block formatting the rest.
func (a *App) Format(ctx context.Context, paths []string) []*diag.Error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	var errs []*diag.Error

	for _, path := range paths {
		contents, err := a.ld.Load(path)
		if err != nil {
			errs = append(errs, diag.IOError(path, err))
			continue
		}

		formatted := hclwrite.Format([]byte(contents))

		w, ok := a.ld.(interface{ Write(path string, contents string) error })
		if !ok {
			errs = append(errs, diag.IOError(path, fmt.Errorf("loader does not support writing back formatted output")))
			continue
		}
		if err := w.Write(path, string(formatted)); err != nil {
			errs = append(errs, diag.IOError(path, err))
			continue
		}
		a.logger.DebugContext(ctx, "formatted", "path", path)
	}

	return errs
}
