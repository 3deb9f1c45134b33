// Package cli wires the compiler's three subcommands (validate,
// create-migration, fmt) onto cobra, translating compilerapp results into
// the exit codes spec.md §7 defines: 0 ok, 1 user error, 2 I/O error.
package cli
