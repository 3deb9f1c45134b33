// Package compilerapp contains the core application logic for the compiler:
// the Config and App types, and the three operations the CLI exposes
// (validate, create-migration, fmt), decoupled from cobra or any other
// entrypoint.
package compilerapp
