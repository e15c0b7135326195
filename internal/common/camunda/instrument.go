// internal/common/camunda/instrument.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Job outcomes as reported to the job metrics.
const (
	OutcomeCompleted  = "completed"
	OutcomeFailed     = "failed"
	OutcomeThrown     = "error_thrown"
	OutcomeUnreported = "unreported"
)

// JobRecorder receives one call per handled job.
type JobRecorder interface {
	RecordJobProcessed(ctx context.Context, taskType, status string)
	RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string)
}

// outcomeClient notes which command a handler issued for its job.
type outcomeClient struct {
	worker.JobClient
	outcome string
}

func (c *outcomeClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.outcome = OutcomeCompleted
	return c.JobClient.NewCompleteJobCommand()
}

func (c *outcomeClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.outcome = OutcomeFailed
	return c.JobClient.NewFailJobCommand()
}

func (c *outcomeClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.outcome = OutcomeThrown
	return c.JobClient.NewThrowErrorCommand()
}

// Instrument wraps handle so every job reports its outcome and duration to rec.
// A nil rec returns handle unchanged.
func Instrument(taskType string, rec JobRecorder, handle worker.JobHandler) worker.JobHandler {
	if rec == nil {
		return handle
	}
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		oc := &outcomeClient{JobClient: client, outcome: OutcomeUnreported}

		handle(oc, job)

		ctx := context.Background()
		rec.RecordJobProcessed(ctx, taskType, oc.outcome)
		rec.RecordJobDuration(ctx, taskType, time.Since(start), oc.outcome)
	}
}
