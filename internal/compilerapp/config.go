package compilerapp

import "errors"

// Config holds everything one invocation of the compiler needs, independent
// of which subcommand is driving it.
type Config struct {
	InputPath string // root configuration file, e.g. "schema/main.hcl"
	Strict    bool

	// Vars and VarFiles are raw, unparsed CLI input: Vars holds "--var k=v"
	// pairs in the order given, VarFiles holds "--var-file path" paths in
	// the order given. Priority (lowest to highest) is defaults < var-file
	// < --var, per spec.md 4.D — the App resolves both into cty.Values
	// before calling the compiler.
	Vars     []string
	VarFiles []string

	Include []string
	Exclude []string

	Backend string // "postgres" | "prisma" | "json" — create-migration only
	OutDir  string
	Name    string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy, mirroring the teacher's
// fail-fast constructor for required fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
