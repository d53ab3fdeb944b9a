// pkg/registry/schema.go
package registry

// QuestionRegistry is the questionnaire presented to users. Answers are
// submitted as {questionId, value} pairs keyed by Question.ID and Option.Value.
type QuestionRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Options     []Option `json:"options"`
}

type Option struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}
