package compilerapp

import (
	"io"
	"log/slog"

	"github.com/dbschema/dbschema/internal/loader"
)

// App encapsulates the compiler's dependencies, configuration, and the
// three operations the CLI drives it through.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	ld     loader.Loader
	config *Config
}

// NewApp returns a fully initialized App. ld is injected rather than
// hardcoded to loader.Disk so tests can run the same pipeline, Format
// included, against an in-memory fixture set; every CLI subcommand, fmt
// included, passes loader.Disk.
func NewApp(outW, errW io.Writer, cfg *Config, ld loader.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("compilerapp configured", "input", cfg.InputPath, "strict", cfg.Strict)
	return &App{outW: outW, errW: errW, logger: logger, ld: ld, config: cfg}
}
