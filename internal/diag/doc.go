// Package diag implements a closed error taxonomy for compiler failures.
// Parsing and expression evaluation work in terms of hcl.Diagnostics, HCL's
// own rich diagnostic type; once a configuration has been reduced past the
// module resolver there is no HCL syntax left to blame, so IR building,
// validation, and emission raise Error values instead. FromDiagnostics
// bridges the two so the driver can always render one bullet list regardless
// of which stage failed.
package diag
