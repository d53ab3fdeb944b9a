package camunda

import (
	"time"

	"stack-advisor/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

type CamundaWorker struct {
	worker worker.JobWorker
	logger logger.Logger
	opts   WorkerOptions
}

// NewWorker opens a job worker for opts.TaskType on client. The client stays
// owned by the caller.
func NewWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, log logger.Logger) *CamundaWorker {
	builder := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(handler.Handle).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		builder = builder.Timeout(opts.Timeout)
	}

	w := &CamundaWorker{
		worker: builder.Open(),
		logger: log.WithFields(map[string]interface{}{"taskType": opts.TaskType}),
		opts:   opts,
	}
	w.logger.Info("worker started", map[string]interface{}{
		"maxJobsActive": opts.MaxJobsActive,
		"timeout":       opts.Timeout.String(),
	})
	return w
}

func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
