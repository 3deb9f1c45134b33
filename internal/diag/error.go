package diag

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Kind identifies the category of a diagnostic error. It is exhaustive:
// every failure raised past the module resolver maps to exactly one Kind.
type Kind string

const (
	KindParseError               Kind = "ParseError"
	KindUnknownReference         Kind = "UnknownReference"
	KindTypeMismatch             Kind = "TypeMismatch"
	KindArityMismatch            Kind = "ArityMismatch"
	KindMissingRequiredAttribute Kind = "MissingRequiredAttribute"
	KindUnknownAttribute         Kind = "UnknownAttribute"
	KindVariableValidation       Kind = "VariableValidation"
	KindModuleCycle              Kind = "ModuleCycle"
	KindModuleSourceMissing      Kind = "ModuleSourceMissing"
	KindDataSourceUnsupported    Kind = "DataSourceUnsupported"
	KindEmitConflict             Kind = "EmitConflict"
	KindIOError                  Kind = "IOError"
)

// Frame is one location appended to an Error's chain as it unwinds through
// nested evaluation: each evaluator frame that rethrows appends a trace
// entry describing where it was standing.
type Frame struct {
	Description string
	Range       *hcl.Range
}

// Error is a single diagnostic of a known Kind, optionally carrying a chain
// of frames describing how evaluation reached the failure.
type Error struct {
	Kind    Kind
	Message string
	Range   *hcl.Range
	Chain   []Frame

	// Detail fields, populated depending on Kind. Only the fields relevant
	// to the Kind are set; the rest are zero.
	Expected       string   // TypeMismatch
	Got            string   // TypeMismatch
	Path           string   // TypeMismatch
	Function       string   // ArityMismatch
	ExpectedArity  int      // ArityMismatch
	GotArity       int      // ArityMismatch
	BlockKind      string   // MissingRequiredAttribute, UnknownAttribute, EmitConflict
	BlockLabel     string   // MissingRequiredAttribute, UnknownAttribute
	Attribute      string   // MissingRequiredAttribute, UnknownAttribute
	Variable       string   // VariableValidation
	PathChain      []string // ModuleCycle
	SourcePath     string   // ModuleSourceMissing, IOError
	DataSourceType string   // DataSourceUnsupported
	ConflictName   string   // EmitConflict
	Available      []string // UnknownReference
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	for _, f := range e.Chain {
		b.WriteString("\n  at ")
		b.WriteString(f.Description)
		if f.Range != nil {
			fmt.Fprintf(&b, " (%s)", f.Range.String())
		}
	}
	return b.String()
}

// WithFrame returns a copy of e with an additional frame appended, used by
// the evaluator to build a trace as an error unwinds through nested
// expressions.
func (e *Error) WithFrame(description string, rng *hcl.Range) *Error {
	clone := *e
	clone.Chain = append(append([]Frame{}, e.Chain...), Frame{Description: description, Range: rng})
	return &clone
}

// ParseError reports a syntax-level failure tied to a specific file.
func ParseError(file string, rng *hcl.Range, message string) *Error {
	return &Error{Kind: KindParseError, Message: fmt.Sprintf("%s: %s", file, message), Range: rng}
}

// UnknownReference reports a traversal to a name nothing in scope defines.
func UnknownReference(name string, available []string, rng *hcl.Range) *Error {
	return &Error{
		Kind:      KindUnknownReference,
		Message:   fmt.Sprintf("reference to undefined name %q", name),
		Range:     rng,
		Available: available,
	}
}

// TypeMismatch reports a value that could not be coerced to its required type.
func TypeMismatch(expected, got, path string, rng *hcl.Range) *Error {
	return &Error{
		Kind:     KindTypeMismatch,
		Message:  fmt.Sprintf("expected %s, got %s at %s", expected, got, path),
		Range:    rng,
		Expected: expected,
		Got:      got,
		Path:     path,
	}
}

// ArityMismatch reports a function call with the wrong number of arguments.
func ArityMismatch(function string, expected, got int, rng *hcl.Range) *Error {
	return &Error{
		Kind:          KindArityMismatch,
		Message:       fmt.Sprintf("%s: expected %d argument(s), got %d", function, expected, got),
		Range:         rng,
		Function:      function,
		ExpectedArity: expected,
		GotArity:      got,
	}
}

// MissingRequiredAttribute reports a block missing an attribute its kind requires.
func MissingRequiredAttribute(blockKind, blockLabel, attr string, rng *hcl.Range) *Error {
	return &Error{
		Kind:       KindMissingRequiredAttribute,
		Message:    fmt.Sprintf("%s %q is missing required attribute %q", blockKind, blockLabel, attr),
		Range:      rng,
		BlockKind:  blockKind,
		BlockLabel: blockLabel,
		Attribute:  attr,
	}
}

// UnknownAttribute reports an attribute a block's kind does not define.
func UnknownAttribute(blockKind, attr string, rng *hcl.Range) *Error {
	return &Error{
		Kind:      KindUnknownAttribute,
		Message:   fmt.Sprintf("%s has unknown attribute %q", blockKind, attr),
		Range:     rng,
		BlockKind: blockKind,
		Attribute: attr,
	}
}

// VariableValidation reports a failed validation rule on a variable's value.
func VariableValidation(variable, message string, rng *hcl.Range) *Error {
	return &Error{
		Kind:     KindVariableValidation,
		Message:  message,
		Range:    rng,
		Variable: variable,
	}
}

// ModuleCycle reports a cycle in the module import graph, chain being the
// sequence of module paths that closes the loop.
func ModuleCycle(chain []string) *Error {
	return &Error{
		Kind:      KindModuleCycle,
		Message:   fmt.Sprintf("module import cycle: %s", strings.Join(chain, " -> ")),
		PathChain: chain,
	}
}

// ModuleSourceMissing reports a module block whose source path does not resolve.
func ModuleSourceMissing(path string, rng *hcl.Range) *Error {
	return &Error{
		Kind:       KindModuleSourceMissing,
		Message:    fmt.Sprintf("module source not found: %s", path),
		Range:      rng,
		SourcePath: path,
	}
}

// DataSourceUnsupported reports a data block whose type has no registered loader.
func DataSourceUnsupported(dsType string, rng *hcl.Range) *Error {
	return &Error{
		Kind:           KindDataSourceUnsupported,
		Message:        fmt.Sprintf("unsupported data source type %q", dsType),
		Range:          rng,
		DataSourceType: dsType,
	}
}

// EmitConflict reports two records of the same kind claiming the same name
// during emission.
func EmitConflict(kind, name string) *Error {
	return &Error{
		Kind:         KindEmitConflict,
		Message:      fmt.Sprintf("duplicate %s %q", kind, name),
		ConflictName: name,
		BlockKind:    kind,
	}
}

// IOError wraps a filesystem failure reading or writing path.
func IOError(path string, cause error) *Error {
	return &Error{
		Kind:       KindIOError,
		Message:    fmt.Sprintf("%s: %v", path, cause),
		SourcePath: path,
	}
}

// FromDiagnostics converts HCL diagnostics from the parse/evaluate stages
// into a single *Error, preserving the first error's message and range.
func FromDiagnostics(diags hcl.Diagnostics) *Error {
	if !diags.HasErrors() {
		return nil
	}
	first := diags[0]
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			first = d
			break
		}
	}
	return &Error{
		Kind:    KindParseError,
		Message: first.Summary + ": " + first.Detail,
		Range:   first.Subject,
	}
}
