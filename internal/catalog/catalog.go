// internal/catalog/catalog.go
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"stack-advisor/internal/decisiontree"
)

//go:embed tree.yaml
var treeYAML []byte

// Catalog is the static content of the decision tree: the edge table and the
// payload used when traversal reaches no terminal node.
type Catalog struct {
	Version string               `yaml:"version"`
	Default decisiontree.Payload `yaml:"default"`
	Edges   []decisiontree.Edge  `yaml:"edges"`
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Edges) == 0 {
		return nil, fmt.Errorf("parse catalog: no edges")
	}
	if c.Default.IsEmpty() {
		return nil, fmt.Errorf("parse catalog: default payload is empty")
	}
	return &c, nil
}

// Store builds the tree described by the catalog.
func (c *Catalog) Store() (*decisiontree.Store, error) {
	store, err := decisiontree.NewStore(c.Edges)
	if err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}
	return store, nil
}

// Resolver builds the tree and returns a resolver falling back to c.Default.
func (c *Catalog) Resolver(opts ...decisiontree.ResolverOption) (*decisiontree.Resolver, error) {
	store, err := c.Store()
	if err != nil {
		return nil, err
	}
	return decisiontree.NewResolver(store, c.Default, opts...), nil
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
	builtinErr  error
)

// Builtin returns the embedded catalog. It is parsed once per process.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse(treeYAML)
	})
	return builtin, builtinErr
}

// DefaultResolver returns a resolver over the embedded catalog.
func DefaultResolver() (*decisiontree.Resolver, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	return c.Resolver()
}
