// internal/decisiontree/answers.go
package decisiontree

// Questionnaire keys the engine reads.
const (
	KeyAppType    = "app-type"
	KeyTimeline   = "timeline"
	KeyComplexity = "complexity"
	KeyScale      = "scale"
	KeyBudget     = "budget"
	KeyTeamSize   = "team-size"
	KeyAudience   = "audience"
)

// AnswerSet maps a question id to the single chosen value. A missing key and
// a present key are different things: traversal skips missing keys entirely.
type AnswerSet map[string]string

// Get returns the answer for key and whether it was given.
func (a AnswerSet) Get(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// value returns the answer or "" when absent.
func (a AnswerSet) value(key string) string {
	return a[key]
}

func (a AnswerSet) oneOf(key string, values ...string) bool {
	v, ok := a[key]
	if !ok {
		return false
	}
	for _, want := range values {
		if v == want {
			return true
		}
	}
	return false
}
