// Package prisma renders the enum/table subset of an IR to a Prisma schema
// (spec.md 4.J). Column types go through a fixed mapping table; foreign
// keys become @relation fields. Functions, triggers, and extensions have no
// Prisma analog and are never emitted.
package prisma
