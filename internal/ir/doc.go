// Package ir defines the flat, acyclic Intermediate Representation
// (spec.md §3.6), the builder that maps expanded blocks into it (component
// G), and the post-build validator (component H). Relationships between
// records are qualified-name strings, never pointers, so the whole
// collection serializes trivially (internal/emit/jsonir) and has no cycles
// to worry about beyond the module-import graph already checked in
// internal/module.
package ir
