// Package fsutil provides filesystem helpers for the default, disk-backed
// loader implementation. Apart from that implementation, only compilerapp's
// migration writer (--out-dir) touches the filesystem directly.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListFilesByExtension returns the files directly inside dir (not recursive —
// a module's files live flat in its directory) whose name ends with
// extension, sorted lexicographically so file processing order is
// reproducible across runs.
func ListFilesByExtension(dir, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), extension) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}
	return files, nil
}

// FindFilesByExtension recursively searches rootPath for files ending with
// extension, sorted lexicographically. Nothing in this module calls it; the
// CLI's --input names a single root file.
func FindFilesByExtension(rootPath, extension string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
