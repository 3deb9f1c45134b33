// Package datasource implements the pluggable `data "<type>" "<name>" { ... }`
// loader table. Registration mirrors the teacher's registry.RegisterRunner
// pattern: a fixed map keyed by type name, populated once at startup and
// panicking on a duplicate registration, with one concrete loader shipped —
// prisma_schema — and room for more to be added the same way.
package datasource
