// internal/workers/recommendation/recommend-tech-stack/models.go
package recommendtechstack

import (
	"encoding/json"

	"stack-advisor/internal/decisiontree"
)

// Input is read from the job variables. Answers keeps the raw list so it can
// be schema checked before decoding.
type Input struct {
	RequestID string          `json:"requestId,omitempty"`
	Answers   json.RawMessage `json:"answers"`
}

// Output is merged into the process variables.
type Output struct {
	RequestID      string              `json:"requestId"`
	Recommendation decisiontree.Record `json:"recommendation"`
}
