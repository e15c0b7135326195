// internal/common/camunda/worker.go
package camunda

import (
	"sync"

	"pawmatch-workers/internal/common/config"
	"pawmatch-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// WorkerSet owns the open job workers so shutdown can close them together.
type WorkerSet struct {
	mu       sync.Mutex
	client   zbc.Client
	recorder JobRecorder
	logger   logger.Logger
	workers  map[string]worker.JobWorker
}

// NewWorkerSet opens workers on client. rec may be nil.
func NewWorkerSet(client zbc.Client, rec JobRecorder, log logger.Logger) *WorkerSet {
	return &WorkerSet{
		client:   client,
		recorder: rec,
		logger:   log,
		workers:  make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType unless the config disables it.
// It reports whether a worker was opened.
func (s *WorkerSet) Start(taskType string, wcfg config.WorkerConfig, handle worker.JobHandler) bool {
	if !wcfg.Enabled {
		s.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.workers[taskType]; exists {
		s.logger.Warn("worker already started", map[string]interface{}{"taskType": taskType})
		return false
	}

	jw := s.client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, s.recorder, handle)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(wcfg.TimeoutDuration()).
		Name("pawmatch-" + taskType).
		Open()
	s.workers[taskType] = jw

	s.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})
	return true
}

// TaskTypes lists the running workers.
func (s *WorkerSet) TaskTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.workers))
	for t := range s.workers {
		out = append(out, t)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (s *WorkerSet) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for taskType, jw := range s.workers {
		jw.Close()
		jw.AwaitClose()
		s.logger.Info("worker stopped", map[string]interface{}{"taskType": taskType})
	}
	s.workers = make(map[string]worker.JobWorker)
}
