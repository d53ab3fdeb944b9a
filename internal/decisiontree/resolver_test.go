// internal/decisiontree/resolver_test.go
package decisiontree

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func choice(primary ...string) *TechChoice {
	return &TechChoice{Primary: primary, Reasoning: "because", Alternatives: []string{"alt"}}
}

func fixtureRows() []Edge {
	return []Edge{
		{Parent: "", Label: "web"},
		{Parent: "", Label: "api"},
		{Parent: "web", Label: "fast"},
		{Parent: "web", Label: "extended"},
		{Parent: "web/fast", Label: "simple", Payload: &Payload{Frontend: choice("Next.js")}},
		{Parent: "api", Label: "small", Payload: &Payload{Backend: choice("Express")}},
		// a terminal node that also has a deeper child; traversal must stop here
		{Parent: "api", Label: "xlarge", Payload: &Payload{Backend: choice("Go")}},
		{Parent: "api/xlarge", Label: "large", Payload: &Payload{Backend: choice("never reached")}},
	}
}

func fixtureFallback() Payload {
	return Payload{Tools: choice("GitHub")}
}

func newFixtureResolver(t *testing.T, opts ...ResolverOption) *Resolver {
	t.Helper()
	store, err := NewStore(fixtureRows())
	require.NoError(t, err)
	return NewResolver(store, fixtureFallback(), opts...)
}

// ==========================
// Traversal Tests
// ==========================

func TestResolver_Resolve_Paths(t *testing.T) {
	tests := []struct {
		name         string
		answers      AnswerSet
		expectedPath string
		expectedTech Payload
	}{
		{
			name:         "full match",
			answers:      AnswerSet{"app-type": "web", "timeline": "fast", "complexity": "simple"},
			expectedPath: "app-type=web → timeline=fast → complexity=simple",
			expectedTech: Payload{Frontend: choice("Next.js")},
		},
		{
			name:         "absent keys are skipped",
			answers:      AnswerSet{"app-type": "api", "scale": "small"},
			expectedPath: "app-type=api → scale=small",
			expectedTech: Payload{Backend: choice("Express")},
		},
		{
			name:         "unmatched value stays at the current node",
			answers:      AnswerSet{"app-type": "api", "timeline": "fast", "complexity": "nope", "scale": "small"},
			expectedPath: "app-type=api → scale=small",
			expectedTech: Payload{Backend: choice("Express")},
		},
		{
			name:         "first terminal wins over a deeper match",
			answers:      AnswerSet{"app-type": "api", "scale": "xlarge", "budget": "large"},
			expectedPath: "app-type=api → scale=xlarge",
			expectedTech: Payload{Backend: choice("Go")},
		},
		{
			name:         "dead end without payload falls back",
			answers:      AnswerSet{"app-type": "web", "timeline": "extended", "complexity": "simple"},
			expectedPath: DefaultPath,
			expectedTech: fixtureFallback(),
		},
		{
			name:         "no backtracking after a move",
			answers:      AnswerSet{"app-type": "web", "timeline": "fast", "scale": "small"},
			expectedPath: DefaultPath,
			expectedTech: fixtureFallback(),
		},
		{
			name:         "empty answers",
			answers:      AnswerSet{},
			expectedPath: DefaultPath,
			expectedTech: fixtureFallback(),
		},
		{
			name:         "nil answers",
			answers:      nil,
			expectedPath: DefaultPath,
			expectedTech: fixtureFallback(),
		},
	}

	r := newFixtureResolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := r.Resolve(tt.answers)
			assert.Equal(t, tt.expectedPath, rec.DecisionPath)
			if diff := cmp.Diff(tt.expectedTech, rec.Technologies); diff != "" {
				t.Errorf("technologies mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.expectedPath != DefaultPath, rec.Matched())
		})
	}
}

func TestResolver_Trace_DoesNotBacktrack(t *testing.T) {
	r := newFixtureResolver(t)

	w := r.Trace(AnswerSet{"app-type": "web", "timeline": "fast", "scale": "small"})

	assert.False(t, w.Terminal)
	assert.Equal(t, "fast", w.Node.Name())
	assert.Equal(t, []string{"app-type=web", "timeline=fast"}, w.Steps)
	require.Len(t, w.Visited, 3)
	assert.Equal(t, "root", w.Visited[0].Name())
}

func TestResolver_UnknownKeysIgnored(t *testing.T) {
	r := newFixtureResolver(t)

	base := AnswerSet{"app-type": "api", "scale": "small"}
	noisy := AnswerSet{"app-type": "api", "scale": "small", "favourite-color": "web", "": "api"}

	assert.Equal(t, r.Resolve(base).DecisionPath, r.Resolve(noisy).DecisionPath)
}

func TestResolver_WithPriority(t *testing.T) {
	r := newFixtureResolver(t, WithPriority("scale", "app-type"))

	// scale is consulted at the root first, matches nothing, then app-type moves.
	rec := r.Resolve(AnswerSet{"app-type": "api", "scale": "small"})
	assert.Equal(t, DefaultPath, rec.DecisionPath)
}

func TestResolver_Idempotent(t *testing.T) {
	r := newFixtureResolver(t)
	answers := AnswerSet{"app-type": "web", "timeline": "fast", "complexity": "simple", "audience": "public"}

	first, err := json.Marshal(r.Resolve(answers))
	require.NoError(t, err)
	second, err := json.Marshal(r.Resolve(answers))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestResolver_RecordIsDetachedFromTree(t *testing.T) {
	r := newFixtureResolver(t)
	answers := AnswerSet{"app-type": "api", "scale": "small"}

	rec := r.Resolve(answers)
	rec.Technologies.Backend.Primary[0] = "mutated"

	again := r.Resolve(answers)
	assert.Equal(t, "Express", again.Technologies.Backend.Primary[0])

	fallback := r.Resolve(nil)
	fallback.Technologies.Tools.Primary[0] = "mutated"
	assert.Equal(t, "GitHub", r.Fallback().Tools.Primary[0])
}

func TestRecord_JSONShape(t *testing.T) {
	r := newFixtureResolver(t)

	data, err := json.Marshal(r.Resolve(AnswerSet{"app-type": "api", "scale": "small"}))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Contains(t, doc, "summary")
	assert.Contains(t, doc, "decision_path")
	assert.Equal(t, []interface{}{}, doc["considerations"])

	tech, ok := doc["technologies"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, tech, "backend")
	assert.NotContains(t, tech, "frontend")
}
