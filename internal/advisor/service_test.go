package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"stack-advisor/internal/catalog"
	"stack-advisor/internal/common/errors"
	"stack-advisor/internal/common/logger"
	"stack-advisor/internal/common/metrics"
	"stack-advisor/internal/decisiontree"
	"stack-advisor/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeRecorder struct {
	calls []string
}

func (f *fakeRecorder) RecordRecommendation(_ context.Context, appType, outcome string) {
	f.calls = append(f.calls, appType+"/"+outcome)
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	r, err := catalog.DefaultResolver()
	require.NoError(t, err)
	return NewService(r, append([]Option{WithLogger(logger.NewTestLogger(t))}, opts...)...)
}

// ==========================
// Parsing
// ==========================

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      []Answer
		expectedError bool
	}{
		{name: "empty list", input: `[]`, expected: []Answer{}},
		{
			name:     "pairs keep order",
			input:    `[{"questionId":"app-type","value":"web"},{"questionId":"app-type","value":"api"}]`,
			expected: []Answer{{QuestionID: "app-type", Value: "web"}, {QuestionID: "app-type", Value: "api"}},
		},
		{name: "not json", input: `app-type=web`, expectedError: true},
		{name: "object", input: `{"questionId":"app-type","value":"web"}`, expectedError: true},
		{name: "missing questionId", input: `[{"value":"web"}]`, expectedError: true},
		{name: "number value", input: `[{"questionId":"scale","value":10}]`, expectedError: true},
		{name: "null", input: `null`, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswers([]byte(tt.input))
			if tt.expectedError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedRequest), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCollapse_LastWins(t *testing.T) {
	set := Collapse([]Answer{
		{QuestionID: "app-type", Value: "web"},
		{QuestionID: "scale", Value: "small"},
		{QuestionID: "app-type", Value: "mobile"},
	})

	assert.Equal(t, decisiontree.AnswerSet{"app-type": "mobile", "scale": "small"}, set)
	assert.Empty(t, Collapse(nil))
}

func TestFingerprint(t *testing.T) {
	a := decisiontree.AnswerSet{"app-type": "web", "scale": "small"}
	b := decisiontree.AnswerSet{"scale": "small", "app-type": "web"}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Len(t, Fingerprint(a), 64)
	assert.NotEqual(t, Fingerprint(a), Fingerprint(decisiontree.AnswerSet{"app-type": "web"}))
	assert.NotEqual(t,
		Fingerprint(decisiontree.AnswerSet{"ab": "c"}),
		Fingerprint(decisiontree.AnswerSet{"a": "bc"}))
	assert.Equal(t, Fingerprint(nil), Fingerprint(decisiontree.AnswerSet{}))
}

// ==========================
// Service
// ==========================

func TestService_RecommendRaw(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.RecommendRaw(context.Background(), []byte(`[
		{"questionId": "app-type", "value": "web"},
		{"questionId": "timeline", "value": "fast"},
		{"questionId": "complexity", "value": "simple"},
		{"questionId": "audience", "value": "public"}
	]`))
	require.NoError(t, err)

	assert.Equal(t, "app-type=web → timeline=fast → complexity=simple", rec.DecisionPath)
	assert.Contains(t, rec.Technologies.Frontend.Primary, "Next.js")
	assert.Len(t, rec.Considerations, 2)
}

func TestService_RecommendRaw_Malformed(t *testing.T) {
	svc := newTestService(t)
	before := testutil.ToFloat64(metrics.RecommendationsRejected)

	_, err := svc.RecommendRaw(context.Background(), []byte(`{"app-type": "web"}`))

	assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedRequest))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RecommendationsRejected))
}

func TestService_Recommend_DuplicateKeys(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.Recommend(context.Background(), []Answer{
		{QuestionID: "app-type", Value: "web"},
		{QuestionID: "budget", Value: "minimal"},
		{QuestionID: "app-type", Value: "mobile"},
	})
	require.NoError(t, err)
	assert.Equal(t, "app-type=mobile → budget=minimal", rec.DecisionPath)
}

func TestService_Resolve_Instrumentation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	fake := &fakeRecorder{}
	questions, err := registry.Default()
	require.NoError(t, err)

	svc := newTestService(t, WithTracer(tp.Tracer("test")), WithRecorder(fake), WithQuestions(questions))

	matched := metrics.RecommendationsResolved.WithLabelValues("api", metrics.OutcomeMatched)
	other := metrics.RecommendationsResolved.WithLabelValues("other", metrics.OutcomeDefault)
	beforeMatched, beforeOther := testutil.ToFloat64(matched), testutil.ToFloat64(other)

	ctx := context.Background()
	_, err = svc.Resolve(ctx, decisiontree.AnswerSet{"app-type": "api", "scale": "small"})
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, decisiontree.AnswerSet{"app-type": "game"})
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, decisiontree.AnswerSet{})
	require.NoError(t, err)

	assert.Equal(t, beforeMatched+1, testutil.ToFloat64(matched))
	assert.Equal(t, beforeOther+1, testutil.ToFloat64(other))
	assert.Equal(t, []string{"api/matched", "other/default", "none/default"}, fake.calls)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "advisor.Recommend", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "app-type=api → scale=small", attrs["recommendation.decision_path"])
	assert.Equal(t, "matched", attrs["recommendation.outcome"])
}

func TestService_Resolve_Panic(t *testing.T) {
	svc := NewService(nil, WithLogger(logger.NewTestLogger(t)))

	_, err := svc.Resolve(context.Background(), decisiontree.AnswerSet{"app-type": "web"})

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRecommendationFailed))
}

func TestService_Idempotent(t *testing.T) {
	svc := newTestService(t)
	raw := []byte(`[{"questionId":"app-type","value":"fullstack"},{"questionId":"team-size","value":"large"}]`)

	a, err := svc.RecommendRaw(context.Background(), raw)
	require.NoError(t, err)
	b, err := svc.RecommendRaw(context.Background(), raw)
	require.NoError(t, err)

	var bufA, bufB bytes.Buffer
	require.NoError(t, WriteJSON(&bufA, a))
	require.NoError(t, WriteJSON(&bufB, b))
	assert.Equal(t, bufA.String(), bufB.String())
}

// ==========================
// Output
// ==========================

func TestErrorRecord_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewErrorRecord(errors.NewMalformedRequestError("expected array"))))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Contains(t, doc["error"], "MALFORMED_REQUEST")
	assert.Equal(t, "Failed to process the recommendations", doc["summary"])
	assert.Equal(t, map[string]interface{}{}, doc["technologies"])
	assert.Equal(t, []interface{}{}, doc["considerations"])
}

func TestWriteJSON_KeepsArrowUnescaped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]string{"decision_path": "app-type=web → timeline=fast", "note": "<b>"}))

	assert.Contains(t, buf.String(), "→")
	assert.Contains(t, buf.String(), "<b>")
	assert.Contains(t, buf.String(), "\n  \"")
}
