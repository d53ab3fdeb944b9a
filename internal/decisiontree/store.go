// internal/decisiontree/store.go
package decisiontree

import (
	"errors"
	"fmt"
	"strings"
)

// PathSeparator joins edge labels in Edge.Parent.
const PathSeparator = "/"

var (
	ErrUnknownParent  = errors.New("unknown parent")
	ErrDuplicateLabel = errors.New("duplicate edge label")
	ErrEmptyLabel     = errors.New("empty edge label")
)

// Edge is one row of the declarative tree table. Parent is the label path
// from the root ("" for the root itself, "web/fast" for a grandchild), since
// node names are only unique among siblings. Rows must list a parent before
// its children.
type Edge struct {
	Parent      string   `yaml:"parent"`
	Label       string   `yaml:"label"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Payload     *Payload `yaml:"payload,omitempty"`
}

// Store owns every node of one tree. It is immutable after NewStore returns
// and safe to share between goroutines.
type Store struct {
	root  *Node
	nodes map[string]*Node
}

// NewStore builds the tree from rows.
func NewStore(rows []Edge) (*Store, error) {
	root := newNode("root", "decision tree root")
	s := &Store{
		root:  root,
		nodes: map[string]*Node{"": root},
	}

	for i, row := range rows {
		label := strings.TrimSpace(row.Label)
		if label == "" {
			return nil, fmt.Errorf("row %d: %w", i, ErrEmptyLabel)
		}
		parentPath := strings.Trim(row.Parent, PathSeparator)
		parent, ok := s.nodes[parentPath]
		if !ok {
			return nil, fmt.Errorf("row %d (%s): %w %q", i, label, ErrUnknownParent, row.Parent)
		}
		if _, exists := parent.children[label]; exists {
			return nil, fmt.Errorf("row %d: %w %q under %q", i, ErrDuplicateLabel, label, parentPath)
		}

		name := row.Name
		if name == "" {
			name = label
		}
		child := newNode(name, row.Description)
		if row.Payload != nil {
			p := row.Payload.clone()
			child.payload = &p
		}

		parent.children[label] = child
		parent.labels = append(parent.labels, label)
		s.nodes[joinPath(parentPath, label)] = child
	}

	return s, nil
}

// Root returns the entry node.
func (s *Store) Root() *Node {
	return s.root
}

// Lookup returns the node at a label path such as "web/fast/simple".
func (s *Store) Lookup(path string) (*Node, bool) {
	n, ok := s.nodes[strings.Trim(path, PathSeparator)]
	return n, ok
}

// Len returns the number of nodes, root included.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Walk visits every node depth-first in declaration order. depth is 0 for
// the root; label is the edge that led to the node ("" for the root).
func (s *Store) Walk(fn func(path, label string, depth int, n *Node)) {
	var visit func(path, label string, depth int, n *Node)
	visit = func(path, label string, depth int, n *Node) {
		fn(path, label, depth, n)
		for _, l := range n.labels {
			visit(joinPath(path, l), l, depth+1, n.children[l])
		}
	}
	visit("", "", 0, s.root)
}

func joinPath(parent, label string) string {
	if parent == "" {
		return label
	}
	return parent + PathSeparator + label
}
