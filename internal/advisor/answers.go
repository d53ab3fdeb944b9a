package advisor

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"sort"

	"stack-advisor/internal/common/errors"
	"stack-advisor/internal/common/validation"
	"stack-advisor/internal/decisiontree"
)

// Answer is one questionnaire response as submitted by clients.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

var requestSchema = validation.MustCompile(validation.AnswersSchema)

// ParseAnswers decodes a request body. Anything other than a JSON list of
// {questionId, value} string pairs is a MALFORMED_REQUEST error.
func ParseAnswers(raw []byte) ([]Answer, error) {
	result, err := requestSchema.ValidateBytes(raw)
	if err != nil {
		return nil, errors.NewMalformedRequestError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewMalformedRequestError(result.Summary())
	}

	var answers []Answer
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, errors.NewMalformedRequestError(err.Error())
	}
	return answers, nil
}

// Collapse folds answers into an AnswerSet. A repeated questionId keeps its
// last value.
func Collapse(answers []Answer) decisiontree.AnswerSet {
	set := make(decisiontree.AnswerSet, len(answers))
	for _, a := range answers {
		set[a.QuestionID] = a.Value
	}
	return set
}

// Fingerprint is a stable digest of an AnswerSet, independent of key order.
func Fingerprint(set decisiontree.AnswerSet) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		// length prefixed so that no two sets share an encoding
		writeField(h, k)
		writeField(h, set[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(w io.Writer, s string) {
	_ = binary.Write(w, binary.BigEndian, uint32(len(s)))
	_, _ = io.WriteString(w, s)
}
