package compilerapp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dbschema/dbschema/internal/compiler"
	"github.com/dbschema/dbschema/internal/ctxlog"
	"github.com/dbschema/dbschema/internal/diag"
	"github.com/dbschema/dbschema/internal/emit/jsonir"
	"github.com/dbschema/dbschema/internal/emit/postgres"
	"github.com/dbschema/dbschema/internal/emit/prisma"
)

var extensionForBackend = map[string]string{
	"postgres": "sql",
	"prisma":   "prisma",
	"json":     "json",
}

// CreateMigration compiles the configured input and emits one file in the
// requested backend's format to cfg.OutDir (stdout when OutDir is empty),
// per spec.md §6.4's create-migration subcommand.
func (a *App) CreateMigration(ctx context.Context) *diag.Error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.DebugContext(ctx, "create-migration starting", "backend", a.config.Backend)

	ext, ok := extensionForBackend[a.config.Backend]
	if !ok {
		return diag.ParseError("<--backend>", nil, fmt.Sprintf("unsupported backend %q: want postgres, prisma, or json", a.config.Backend))
	}

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

	include, exclude := kindSets(a.config.Include), kindSets(a.config.Exclude)

	var content []byte
	switch a.config.Backend {
	case "postgres":
		content = []byte(postgres.Emit(result.IR, postgres.Options{Include: include, Exclude: exclude}))
	case "prisma":
		content = []byte(prisma.Emit(result.IR))
	case "json":
		out, err := jsonir.Emit(result.IR)
		if err != nil {
			return diag.IOError("<stdout>", err)
		}
		content = out
	}

	if a.config.OutDir == "" {
		fmt.Fprint(a.outW, string(content))
		return nil
	}

	name := a.config.Name
	if name == "" {
		name = "migration"
	}
	if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
		return diag.IOError(a.config.OutDir, err)
	}

	filename := fmt.Sprintf("%s_%s.%s", migrationTimestamp(), name, ext)
	path := filepath.Join(a.config.OutDir, filename)
	if _, err := os.Stat(path); err == nil {
		// Same timestamp and --name already claimed a file in this
		// directory (two runs in the same second, or a re-run with an
		// explicit --name) — disambiguate with a short uuid suffix rather
		// than silently overwriting the earlier migration.
		filename = fmt.Sprintf("%s_%s_%s.%s", migrationTimestamp(), name, uuid.NewString()[:8], ext)
		path = filepath.Join(a.config.OutDir, filename)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return diag.IOError(path, err)
	}
	fmt.Fprintf(a.outW, "wrote %s\n", path)
	return nil
}

func kindSets(kinds []string) map[string]bool {
	if len(kinds) == 0 {
		return nil
	}
	out := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		out[k] = true
	}
	return out
}

// migrationTimestamp is its own function so tests can see the exact format
// without depending on wall-clock time in assertions.
func migrationTimestamp() string {
	return time.Now().UTC().Format("20060102150405")
}
