package cli

import "github.com/dbschema/dbschema/internal/diag"

// ExitError is an error carrying the process exit code it should produce,
// so main can translate a returned error into os.Exit without re-deriving
// the code from its type.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// exitCodeFor maps a diag.Error's Kind to spec.md §7's exit code: I/O
// failures are 2, every other diagnostic kind is a user error and is 1.
func exitCodeFor(err *diag.Error) int {
	if err.Kind == diag.KindIOError {
		return 2
	}
	return 1
}

// asExitError wraps a diag.Error (if non-nil) into an *ExitError carrying
// the right exit code and the bullet-list-formatted chain spec.md §7
// describes.
func asExitError(err *diag.Error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: exitCodeFor(err), Message: err.Error()}
}
