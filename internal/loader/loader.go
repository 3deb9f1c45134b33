// Package loader defines the injectable file-reading contract the compiler
// is built against. Nothing above this package ever calls os.Open directly,
// so the same resolver runs unmodified against disk, an in-memory fixture
// map (used by fmt and by tests), or a sandboxed host.
package loader

import "fmt"

// NotFoundError reports that a loader has no content for the requested path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// Loader reads the contents of path and returns it as a string. path is
// always a module-relative string; callers canonicalize before calling.
// Implementations return *NotFoundError when path does not exist so callers
// can distinguish "missing" from other I/O failures.
type Loader interface {
	Load(path string) (string, error)
}

// Func adapts a plain function to the Loader interface.
type Func func(path string) (string, error)

func (f Func) Load(path string) (string, error) { return f(path) }

// DirLister is implemented by loaders that can enumerate the files in a
// module directory, so the resolver can pick up sibling .hcl files beyond
// main.hcl (spec.md 4.E step 1). A Loader that does not implement it is
// still usable — the resolver falls back to reading main.hcl alone.
type DirLister interface {
	ListDir(dir, extension string) ([]string, error)
}
