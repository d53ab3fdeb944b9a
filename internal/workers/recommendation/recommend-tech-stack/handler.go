// internal/workers/recommendation/recommend-tech-stack/handler.go
package recommendtechstack

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"stack-advisor/internal/advisor"
	"stack-advisor/internal/common/database"
	"stack-advisor/internal/common/errors"
	"stack-advisor/internal/common/logger"
	"stack-advisor/internal/common/metrics"
	"stack-advisor/internal/common/observability"
	"stack-advisor/internal/decisiontree"
)

const (
	TaskType = "recommend-tech-stack"
)

type Handler struct {
	config       *Config
	service      *advisor.Service
	cache        *database.JSONCache
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the worker handler. cache and obs may be nil.
func NewHandler(cfg *Config, service *advisor.Service, cache *database.JSONCache, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	if !cfg.CacheEnabled {
		cache = nil
	}
	return &Handler{
		config:       cfg,
		service:      service,
		cache:        cache,
		obs:          obs,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.handle(ctx, job)
	duration := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(duration.Seconds())

	if err != nil {
		stdErr := errors.Normalize(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		h.obs.RecordJobProcessed(ctx, "failed")
		h.obs.RecordJobDuration(ctx, duration, "failed")
		h.errorHandler.HandleJobError(ctx, client, job, stdErr)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewRecommendationFailedError(err.Error()))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(ctx, "success")
	h.obs.RecordJobDuration(ctx, duration, "success")
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":       job.Key,
		"requestId":    output.RequestID,
		"decisionPath": output.Recommendation.DecisionPath,
		"durationMs":   duration.Milliseconds(),
	})
}

func (h *Handler) handle(ctx context.Context, job entities.Job) (*Output, error) {
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewMalformedRequestError("parse job variables: " + err.Error())
	}

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
		"requestId":   input.RequestID,
	})
	return h.Execute(ctx, &input)
}

// Execute resolves one request, consulting the cache first when enabled.
// Cache failures are logged and never fail the request.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := h.logger.WithFields(map[string]interface{}{"requestId": requestID})

	if len(input.Answers) == 0 {
		return nil, errors.NewMalformedRequestError("answers is required").WithMetadata("requestId", requestID)
	}
	answers, err := advisor.ParseAnswers(input.Answers)
	if err != nil {
		if stdErr, ok := errors.AsStandardError(err); ok {
			stdErr.WithMetadata("requestId", requestID)
		}
		metrics.RecommendationsRejected.Inc()
		return nil, err
	}

	set := advisor.Collapse(answers)
	fingerprint := advisor.Fingerprint(set)

	if rec, ok := h.lookup(ctx, log, fingerprint); ok {
		return &Output{RequestID: requestID, Recommendation: rec}, nil
	}

	rec, err := h.service.Resolve(ctx, set)
	if err != nil {
		return nil, err
	}

	h.store(ctx, log, fingerprint, rec)
	return &Output{RequestID: requestID, Recommendation: rec}, nil
}

func (h *Handler) lookup(ctx context.Context, log logger.Logger, fingerprint string) (decisiontree.Record, bool) {
	if h.cache == nil {
		return decisiontree.Record{}, false
	}

	var rec decisiontree.Record
	found, err := h.cache.Get(ctx, fingerprint, &rec)
	if err != nil {
		metrics.CacheErrors.WithLabelValues("get").Inc()
		log.Warn("recommendation cache read failed", map[string]interface{}{
			"error": errors.NewCacheUnavailableError(err).Error(),
		})
		return decisiontree.Record{}, false
	}
	if !found {
		metrics.CacheMisses.Inc()
		return decisiontree.Record{}, false
	}

	metrics.CacheHits.Inc()
	log.Debug("recommendation served from cache", map[string]interface{}{"key": h.cache.Key(fingerprint)})
	return rec, true
}

func (h *Handler) store(ctx context.Context, log logger.Logger, fingerprint string, rec decisiontree.Record) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, fingerprint, rec); err != nil {
		metrics.CacheErrors.WithLabelValues("set").Inc()
		log.Warn("recommendation cache write failed", map[string]interface{}{
			"error": errors.NewCacheUnavailableError(err).Error(),
		})
	}
}
