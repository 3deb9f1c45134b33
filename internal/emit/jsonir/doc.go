// Package jsonir serializes an IR as the JSON document spec.md §6.3
// describes: a single object with one array field per resource kind
// (schemas, tables, …). Encoding goes through goccy/go-json rather than
// encoding/json — a drop-in, faster encoder that honors the same struct
// field order and tags.
package jsonir
