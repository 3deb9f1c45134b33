// Package postgres renders an IR into idempotent PostgreSQL DDL (spec.md
// 4.I): one strings.Builder, one generate function per resource kind, called
// in the fixed topological order the spec mandates rather than one computed
// per run.
package postgres
