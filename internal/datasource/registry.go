package datasource

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// FileLoader reads the contents of path, resolved relative to a module's
// directory. The module resolver supplies the concrete implementation so
// loaders never touch the filesystem directly.
type FileLoader func(path string) (string, error)

// Loader produces the cty.Value a data block of its type exposes at
// data.<type>.<name> once evaluated.
type Loader func(attrs map[string]cty.Value, load FileLoader) (cty.Value, hcl.Diagnostics)

// Registry is the fixed table of loaders keyed by data-source type.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register adds a loader for dsType, panicking if one is already registered
// — a programmer error, never a runtime condition.
func (r *Registry) Register(dsType string, loader Loader) {
	if _, exists := r.loaders[dsType]; exists {
		panic(fmt.Sprintf("data source loader %q already registered", dsType))
	}
	r.loaders[dsType] = loader
}

// Lookup returns the loader registered for dsType, if any.
func (r *Registry) Lookup(dsType string) (Loader, bool) {
	l, ok := r.loaders[dsType]
	return l, ok
}

// Default returns a registry pre-populated with every loader this module
// ships: currently just prisma_schema. New types are added here.
func Default() *Registry {
	r := NewRegistry()
	r.Register("prisma_schema", loadPrismaSchema)
	return r
}
