// Package advisor turns questionnaire answers into recommendation records.
// It is the boundary shared by the CLI and the workflow worker: request
// validation, answer collapsing, error records and instrumentation live here
// so the resolver stays pure.
package advisor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"stack-advisor/internal/common/errors"
	"stack-advisor/internal/common/logger"
	"stack-advisor/internal/common/metrics"
	"stack-advisor/internal/common/observability"
	"stack-advisor/internal/decisiontree"
	"stack-advisor/pkg/registry"
)

// Recorder receives per-resolution measurements. *observability.Observability
// satisfies it.
type Recorder interface {
	RecordRecommendation(ctx context.Context, appType, outcome string)
}

var _ Recorder = (*observability.Observability)(nil)

type Service struct {
	resolver  *decisiontree.Resolver
	questions *registry.QuestionRegistry
	logger    logger.Logger
	tracer    trace.Tracer
	recorder  Recorder
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithQuestions bounds the app_type metric label to the questionnaire's options.
func WithQuestions(q *registry.QuestionRegistry) Option {
	return func(s *Service) { s.questions = q }
}

func NewService(resolver *decisiontree.Resolver, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		logger:   logger.NewNoOpLogger(),
		tracer:   noop.NewTracerProvider().Tracer("advisor"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecommendRaw parses a raw request body and resolves it.
func (s *Service) RecommendRaw(ctx context.Context, raw []byte) (decisiontree.Record, error) {
	answers, err := ParseAnswers(raw)
	if err != nil {
		metrics.RecommendationsRejected.Inc()
		s.logger.Warn("rejected malformed request", map[string]interface{}{
			"error": err.Error(),
			"bytes": len(raw),
		})
		return decisiontree.Record{}, err
	}
	return s.Recommend(ctx, answers)
}

// Recommend collapses answers and resolves them.
func (s *Service) Recommend(ctx context.Context, answers []Answer) (decisiontree.Record, error) {
	return s.Resolve(ctx, Collapse(answers))
}

// Resolve runs the resolver on set. The resolver does not fail on any
// AnswerSet; a panic inside it is reported as RECOMMENDATION_FAILED.
func (s *Service) Resolve(ctx context.Context, set decisiontree.AnswerSet) (rec decisiontree.Record, err error) {
	ctx, span := s.tracer.Start(ctx, "advisor.Recommend", trace.WithAttributes(
		attribute.Int("answers.count", len(set)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = errors.NewRecommendationFailedError(fmt.Sprint(r))
			span.RecordError(err)
			span.SetStatus(codes.Error, "resolver panic")
			s.logger.Error("resolver panic", map[string]interface{}{"panic": fmt.Sprint(r)})
		}
	}()

	rec = s.resolver.Resolve(set)

	appType := s.appTypeLabel(set)
	outcome := metrics.Outcome(rec.Matched())
	metrics.RecommendationsResolved.WithLabelValues(appType, outcome).Inc()
	if s.recorder != nil {
		s.recorder.RecordRecommendation(ctx, appType, outcome)
	}

	span.SetAttributes(
		attribute.String("recommendation.decision_path", rec.DecisionPath),
		attribute.String("recommendation.outcome", outcome),
	)
	s.logger.Debug("recommendation resolved", map[string]interface{}{
		"decisionPath":   rec.DecisionPath,
		"considerations": len(rec.Considerations),
	})
	return rec, nil
}

func (s *Service) appTypeLabel(set decisiontree.AnswerSet) string {
	v, ok := set.Get(decisiontree.KeyAppType)
	if !ok {
		return "none"
	}
	if s.questions == nil {
		return v
	}
	if _, known := s.questions.Option(decisiontree.KeyAppType, v); !known {
		return "other"
	}
	return v
}
