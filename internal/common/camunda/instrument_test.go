// internal/common/camunda/instrument_test.go
package camunda

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type nopJobClient struct{}

func (nopJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 { return nil }
func (nopJobClient) NewFailJobCommand() commands.FailJobCommandStep1         { return nil }
func (nopJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1   { return nil }

type recordedJob struct {
	taskType string
	status   string
}

type fakeRecorder struct {
	mu        sync.Mutex
	processed []recordedJob
	durations []time.Duration
}

func (r *fakeRecorder) RecordJobProcessed(_ context.Context, taskType, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, recordedJob{taskType, status})
}

func (r *fakeRecorder) RecordJobDuration(_ context.Context, _ string, d time.Duration, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations = append(r.durations, d)
}

func testJob() entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42, Type: "rank-animals", Retries: 3}}
}

// ==========================
// Instrumentation
// ==========================

func TestInstrument_ReportsOutcome(t *testing.T) {
	tests := []struct {
		name   string
		handle worker.JobHandler
		want   string
	}{
		{
			name:   "completed",
			handle: func(c worker.JobClient, _ entities.Job) { c.NewCompleteJobCommand() },
			want:   OutcomeCompleted,
		},
		{
			name:   "failed with retries",
			handle: func(c worker.JobClient, _ entities.Job) { c.NewFailJobCommand() },
			want:   OutcomeFailed,
		},
		{
			name:   "bpmn error",
			handle: func(c worker.JobClient, _ entities.Job) { c.NewThrowErrorCommand() },
			want:   OutcomeThrown,
		},
		{
			name:   "handler returned without a command",
			handle: func(worker.JobClient, entities.Job) {},
			want:   OutcomeUnreported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			Instrument("rank-animals", rec, tt.handle)(nopJobClient{}, testJob())

			require.Len(t, rec.processed, 1)
			assert.Equal(t, recordedJob{"rank-animals", tt.want}, rec.processed[0])
			require.Len(t, rec.durations, 1)
			assert.GreaterOrEqual(t, rec.durations[0], time.Duration(0))
		})
	}
}

func TestInstrument_NilRecorder(t *testing.T) {
	called := false
	handle := Instrument("rank-animals", nil, func(worker.JobClient, entities.Job) { called = true })

	handle(nopJobClient{}, testJob())
	assert.True(t, called)
}
