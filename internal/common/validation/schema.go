// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// AnswersSchema describes a recommendation request: an ordered list of
// {questionId, value} pairs. Extra properties on each pair are tolerated.
var AnswersSchema = map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "array",
	"items": map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"questionId", "value"},
		"properties": map[string]interface{}{
			"questionId": map[string]interface{}{"type": "string"},
			"value":      map[string]interface{}{"type": "string"},
		},
	},
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins the individual errors into a single line.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

func Compile(doc map[string]interface{}) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// MustCompile is like Compile but panics on an invalid schema document.
func MustCompile(doc map[string]interface{}) *Schema {
	s, err := Compile(doc)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateBytes checks a raw JSON document. A document that is not valid JSON
// is returned as an error rather than a failed result.
func (s *Schema) ValidateBytes(data []byte) (*ValidationResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return toResult(result), nil
}

// ValidateValue checks an already decoded value.
func (s *Schema) ValidateValue(v interface{}) (*ValidationResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(v))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return toResult(result), nil
}

func toResult(result *gojsonschema.Result) *ValidationResult {
	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}
}
