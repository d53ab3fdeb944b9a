// internal/decisiontree/resolver.go
package decisiontree

import "strings"

const (
	// DefaultPath is reported when no terminal node was reached.
	DefaultPath = "default"
	// StepSeparator joins the "key=value" steps of a decision path.
	StepSeparator = " → "
)

// PriorityOrder is the order in which answers are consulted, regardless of
// which of them are present.
var PriorityOrder = []string{
	KeyAppType,
	KeyTimeline,
	KeyComplexity,
	KeyScale,
	KeyBudget,
	KeyTeamSize,
}

// Record is the recommendation returned for one AnswerSet.
type Record struct {
	Summary        string   `json:"summary"`
	Technologies   Payload  `json:"technologies"`
	Considerations []string `json:"considerations"`
	DecisionPath   string   `json:"decision_path"`
}

// Matched reports whether the record came from a terminal node.
func (r Record) Matched() bool {
	return r.DecisionPath != DefaultPath
}

// Walk is the raw outcome of a traversal.
type Walk struct {
	Node     *Node
	Steps    []string
	Visited  []*Node
	Terminal bool
}

// Resolver walks a Store. It holds no per-call state.
type Resolver struct {
	store    *Store
	fallback Payload
	priority []string
}

type ResolverOption func(*Resolver)

// WithPriority overrides PriorityOrder. Intended for tests and alternative trees.
func WithPriority(keys ...string) ResolverOption {
	return func(r *Resolver) {
		r.priority = append([]string(nil), keys...)
	}
}

// NewResolver returns a resolver over store that answers with fallback
// whenever no terminal node is reached.
func NewResolver(store *Store, fallback Payload, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:    store,
		fallback: fallback.clone(),
		priority: PriorityOrder,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Trace walks the tree without formatting. Keys are consumed in priority
// order; a value with no matching edge leaves the walk where it is, and the
// walk never backtracks. It stops at the first terminal node.
func (r *Resolver) Trace(answers AnswerSet) Walk {
	current := r.store.Root()
	w := Walk{Node: current, Visited: []*Node{current}}

	for _, key := range r.priority {
		value, ok := answers.Get(key)
		if !ok {
			continue
		}
		if next, ok := current.Child(value); ok {
			current = next
			w.Steps = append(w.Steps, key+"="+value)
			w.Visited = append(w.Visited, current)
		}
		if current.Terminal() {
			w.Node = current
			w.Terminal = true
			return w
		}
	}

	w.Node = current
	return w
}

// Resolve maps answers to a recommendation record.
func (r *Resolver) Resolve(answers AnswerSet) Record {
	w := r.Trace(answers)

	rec := Record{
		Summary:        Summary(answers),
		Considerations: Considerations(answers),
	}
	if w.Terminal {
		rec.Technologies = w.Node.payload.clone()
		rec.DecisionPath = strings.Join(w.Steps, StepSeparator)
		return rec
	}

	rec.Technologies = r.fallback.clone()
	rec.DecisionPath = DefaultPath
	return rec
}

// Fallback returns a copy of the default payload.
func (r *Resolver) Fallback() Payload {
	return r.fallback.clone()
}
