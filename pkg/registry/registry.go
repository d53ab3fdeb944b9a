// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed questions.json
var defaultQuestions []byte

// Default returns the built-in questionnaire.
func Default() (*QuestionRegistry, error) {
	return Parse(defaultQuestions)
}

// LoadRegistry reads a questionnaire from a JSON file.
func LoadRegistry(path string) (*QuestionRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*QuestionRegistry, error) {
	var reg QuestionRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Question looks up a question by id.
func (r *QuestionRegistry) Question(id string) (Question, bool) {
	for _, q := range r.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Option looks up an option of question id by value.
func (r *QuestionRegistry) Option(id, value string) (Option, bool) {
	q, ok := r.Question(id)
	if !ok {
		return Option{}, false
	}
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// IDs returns the question ids in questionnaire order.
func (r *QuestionRegistry) IDs() []string {
	ids := make([]string, 0, len(r.Questions))
	for _, q := range r.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func (r *QuestionRegistry) validate() error {
	if len(r.Questions) == 0 {
		return fmt.Errorf("registry has no questions")
	}
	seen := make(map[string]bool, len(r.Questions))
	for i, q := range r.Questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: missing id", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %q: duplicate id", q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q: no options", q.ID)
		}
		values := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if values[o.Value] {
				return fmt.Errorf("question %q: duplicate option %q", q.ID, o.Value)
			}
			values[o.Value] = true
		}
	}
	return nil
}
