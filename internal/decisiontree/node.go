// internal/decisiontree/node.go
package decisiontree

// Node is a point in the decision tree. Children are keyed by the answer
// value that leads to them. A node carrying a payload is terminal.
type Node struct {
	name        string
	description string
	labels      []string
	children    map[string]*Node
	payload     *Payload
}

func newNode(name, description string) *Node {
	return &Node{
		name:        name,
		description: description,
		children:    make(map[string]*Node),
	}
}

func (n *Node) Name() string        { return n.name }
func (n *Node) Description() string { return n.description }

// Child returns the child reached through the edge labelled value.
func (n *Node) Child(value string) (*Node, bool) {
	c, ok := n.children[value]
	return c, ok
}

// Labels returns the edge labels in the order they were declared.
func (n *Node) Labels() []string {
	return append([]string(nil), n.labels...)
}

// Payload returns a copy of the node's recommendation, if any.
func (n *Node) Payload() (Payload, bool) {
	if n.payload == nil {
		return Payload{}, false
	}
	return n.payload.clone(), true
}

// Terminal reports whether traversal stops at this node.
func (n *Node) Terminal() bool {
	return n.payload != nil
}
