// internal/decisiontree/payload.go
package decisiontree

// Category is one of the fixed technology groups a payload can fill.
type Category string

const (
	CategoryFrontend       Category = "frontend"
	CategoryBackend        Category = "backend"
	CategoryInfrastructure Category = "infrastructure"
	CategoryTools          Category = "tools"
)

// AllCategories lists every category in presentation order.
var AllCategories = []Category{
	CategoryFrontend,
	CategoryBackend,
	CategoryInfrastructure,
	CategoryTools,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryFrontend, CategoryBackend, CategoryInfrastructure, CategoryTools:
		return true
	}
	return false
}

// TechChoice is the suggestion for a single category.
type TechChoice struct {
	Primary      []string `json:"primary" yaml:"primary"`
	Reasoning    string   `json:"reasoning" yaml:"reasoning"`
	Alternatives []string `json:"alternatives" yaml:"alternatives"`
}

// Payload is the recommendation carried by a terminal node. Categories that do
// not apply to a branch are left nil and omitted from the JSON document.
type Payload struct {
	Frontend       *TechChoice `json:"frontend,omitempty" yaml:"frontend,omitempty"`
	Backend        *TechChoice `json:"backend,omitempty" yaml:"backend,omitempty"`
	Infrastructure *TechChoice `json:"infrastructure,omitempty" yaml:"infrastructure,omitempty"`
	Tools          *TechChoice `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// For returns the choice for c, or nil when the payload omits it.
func (p Payload) For(c Category) *TechChoice {
	switch c {
	case CategoryFrontend:
		return p.Frontend
	case CategoryBackend:
		return p.Backend
	case CategoryInfrastructure:
		return p.Infrastructure
	case CategoryTools:
		return p.Tools
	}
	return nil
}

// Categories returns the categories present in p, in AllCategories order.
func (p Payload) Categories() []Category {
	out := make([]Category, 0, len(AllCategories))
	for _, c := range AllCategories {
		if p.For(c) != nil {
			out = append(out, c)
		}
	}
	return out
}

// IsEmpty reports whether no category is set.
func (p Payload) IsEmpty() bool {
	return len(p.Categories()) == 0
}

// clone returns a deep copy so callers can never reach back into the tree.
func (p Payload) clone() Payload {
	return Payload{
		Frontend:       p.Frontend.clone(),
		Backend:        p.Backend.clone(),
		Infrastructure: p.Infrastructure.clone(),
		Tools:          p.Tools.clone(),
	}
}

func (t *TechChoice) clone() *TechChoice {
	if t == nil {
		return nil
	}
	return &TechChoice{
		Primary:      append([]string(nil), t.Primary...),
		Reasoning:    t.Reasoning,
		Alternatives: append([]string(nil), t.Alternatives...),
	}
}
