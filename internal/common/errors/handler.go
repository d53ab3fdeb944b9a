// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler decides between failing a job for retry and throwing a BPMN error.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError reports err for job. Retryable codes fail the job while it
// has retries left; everything else is thrown as a BPMN error.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	h.logError(job, stdErr, bpmnErr)

	if ShouldRetry(stdErr, job.Retries) {
		h.failJobWithRetries(ctx, client, job, bpmnErr, GetRetryCount(stdErr.Code))
		return
	}
	h.throwBPMNError(ctx, client, job, bpmnErr)
}

// Normalize returns the StandardError in err's chain, or wraps err as an
// internal error.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ShouldRetry reports whether a job with jobRetries remaining should be failed
// rather than escalated.
func ShouldRetry(stdErr *StandardError, jobRetries int32) bool {
	return stdErr.Retryable && GetRetryCount(stdErr.Code) > 0 && jobRetries > 0
}

// remainingRetries never raises the engine's own count.
func remainingRetries(jobRetries int32, maxRetries int) int32 {
	if jobRetries > 0 && int(jobRetries) < maxRetries {
		return jobRetries - 1
	}
	return int32(maxRetries) - 1
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, maxRetries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(remainingRetries(job.Retries, maxRetries)).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			h.send(ctx, job, "fail", func(ctx context.Context) error {
				_, err := withVars.Send(ctx)
				return err
			})
			return
		}
	}
	h.send(ctx, job, "fail", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			h.send(ctx, job, "throw", func(ctx context.Context) error {
				_, err := withVars.Send(ctx)
				return err
			})
			return
		}
	}
	h.send(ctx, job, "throw", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}

func (h *ErrorHandler) send(ctx context.Context, job entities.Job, command string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		h.logger.Error("failed to send job command", map[string]interface{}{
			"jobKey":  job.Key,
			"command": command,
			"error":   err.Error(),
		})
	}
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          GetRetryCount(stdErr.Code),
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
