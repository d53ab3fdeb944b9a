package advisor

import (
	"encoding/json"
	"io"
)

const errorSummary = "Failed to process the recommendations"

// ErrorRecord is written in place of a recommendation when a request cannot
// be served. It keeps the field layout of decisiontree.Record.
type ErrorRecord struct {
	Error          string                 `json:"error"`
	Summary        string                 `json:"summary"`
	Technologies   map[string]interface{} `json:"technologies"`
	Considerations []string               `json:"considerations"`
}

func NewErrorRecord(err error) ErrorRecord {
	return ErrorRecord{
		Error:          err.Error(),
		Summary:        errorSummary,
		Technologies:   map[string]interface{}{},
		Considerations: []string{},
	}
}

// WriteJSON writes v as indented JSON with non-ASCII text left unescaped.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
