package loader

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/dbschema/dbschema/internal/fsutil"
)

// Disk reads files directly from the local filesystem. It is the loader the
// CLI wires in by default; every other environment (fmt's in-memory fixture
// set, tests) supplies its own Loader instead.
type Disk struct{}

// NewDisk returns a Loader backed by os.ReadFile.
func NewDisk() Disk { return Disk{} }

func (Disk) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &NotFoundError{Path: path}
		}
		return "", err
	}
	return string(data), nil
}

// ListDir implements DirLister over the real filesystem.
func (Disk) ListDir(dir, extension string) ([]string, error) {
	return fsutil.ListFilesByExtension(dir, extension)
}

// Write implements the fmt subcommand's in-place rewrite over the real
// filesystem.
func (Disk) Write(path string, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

// Memory is an in-memory Loader keyed by exact path string, used by the fmt
// subcommand's round-trip tests and by unit tests that don't want real
// filesystem fixtures.
type Memory map[string]string

func (m Memory) Load(path string) (string, error) {
	contents, ok := m[path]
	if !ok {
		return "", &NotFoundError{Path: path}
	}
	return contents, nil
}

// ListDir implements DirLister by filtering keys that sit directly inside
// dir and end with extension, sorted lexicographically.
func (m Memory) ListDir(dir, extension string) ([]string, error) {
	prefix := dir
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	var out []string
	for path := range m {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := path[len(prefix):]
		if strings.Contains(rest, "/") {
			continue
		}
		if strings.HasSuffix(path, extension) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Write implements the fmt subcommand's in-place rewrite for fixtures.
func (m Memory) Write(path string, contents string) error {
	m[path] = contents
	return nil
}
