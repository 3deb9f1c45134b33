// Package prisma parses the subset of the Prisma schema language needed to
// expose a `.prisma` file's models and enums to the compiler: model and enum
// blocks, field name/type/attributes, and enum values. Datasource and
// generator blocks, type aliases, and composite types are skipped — nothing
// in this module's domain consumes them.
//
// There is no existing Prisma-schema-parsing library anywhere in the
// example pack or its dependency trees, so this is a small hand-rolled,
// line-oriented parser rather than an adapted one.
package prisma
