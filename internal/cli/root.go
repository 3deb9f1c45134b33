package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dbschema/dbschema/internal/compilerapp"
	"github.com/dbschema/dbschema/internal/loader"
)

// sharedFlags holds the flags every subcommand but fmt accepts, bound onto
// this struct's fields via pflag's *Var family and copied into a
// compilerapp.Config by config().
type sharedFlags struct {
	input     string
	strict    bool
	vars      []string
	varFiles  []string
	include   []string
	exclude   []string
	logFormat string
	logLevel  string
}

func (f *sharedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input, "input", "", "root configuration file")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "promote warnings (unknown attributes, unresolved enum/domain types) to errors")
	cmd.Flags().StringArrayVar(&f.vars, "var", nil, "variable override key=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.varFiles, "var-file", nil, "HCL file of variable overrides (repeatable)")
	cmd.Flags().StringArrayVar(&f.include, "include", nil, "only emit this resource kind (repeatable)")
	cmd.Flags().StringArrayVar(&f.exclude, "exclude", nil, "never emit this resource kind (repeatable)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "text", "log output format: text or json")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

func (f *sharedFlags) config() compilerapp.Config {
	return compilerapp.Config{
		InputPath: f.input,
		Strict:    f.strict,
		Vars:      f.vars,
		VarFiles:  f.varFiles,
		Include:   f.include,
		Exclude:   f.exclude,
		LogFormat: f.logFormat,
		LogLevel:  f.logLevel,
	}
}

// NewRootCmd builds the dbschema root command and its three subcommands.
func NewRootCmd(outW, errW io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "dbschema",
		Short:         "Compile a declarative configuration language into PostgreSQL DDL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)

	root.AddCommand(newValidateCmd(outW, errW))
	root.AddCommand(newCreateMigrationCmd(outW, errW))
	root.AddCommand(newFmtCmd(outW, errW))

	return root
}

func newValidateCmd(outW, errW io.Writer) *cobra.Command {
	flags := &sharedFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the compiler pipeline and report resource counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := compilerapp.NewConfig(flags.config())
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			app := compilerapp.NewApp(outW, errW, cfg, loader.NewDisk())
			return asExitError(app.Validate(cmd.Context()))
		},
	}
	flags.register(cmd)
	return cmd
}

func newCreateMigrationCmd(outW, errW io.Writer) *cobra.Command {
	flags := &sharedFlags{}
	var backend, outDir, name string
	cmd := &cobra.Command{
		Use:   "create-migration",
		Short: "Emit one migration file in the requested backend format",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg := flags.config()
			appCfg.Backend = backend
			appCfg.OutDir = outDir
			appCfg.Name = name
			cfg, err := compilerapp.NewConfig(appCfg)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			app := compilerapp.NewApp(outW, errW, cfg, loader.NewDisk())
			return asExitError(app.CreateMigration(cmd.Context()))
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&backend, "backend", "postgres", "postgres, prisma, or json")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory to write the migration file into (stdout if empty)")
	cmd.Flags().StringVar(&name, "name", "", "migration name, embedded in the output filename")
	return cmd
}

func newFmtCmd(outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Reparse and reserialize configuration files in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := compilerapp.NewApp(outW, errW, &compilerapp.Config{InputPath: "<fmt>"}, loader.NewDisk())
			errs := app.Format(cmd.Context(), args)
			if len(errs) == 0 {
				return nil
			}
			for _, e := range errs[:len(errs)-1] {
				cmd.PrintErrln(e.Error())
			}
			return asExitError(errs[len(errs)-1])
		},
	}
	return cmd
}
