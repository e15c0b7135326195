// cmd/tools/worker-generator/templates.go
package main

// templates maps each generated file name to its text/template source.
var templates = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": handlerTestTemplate,
}

const configTemplate = `// internal/workers/{{.Category}}/{{.TaskType}}/config.go
package {{.PackageName}}

import (
	"time"

	"pawmatch-workers/internal/common/config"
)

type Config struct {
	Timeout          time.Duration
	StrictValidation bool
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: mustDuration("{{.Timeout}}")}
	if cfg != nil {
		if d := config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(); d > 0 {
			c.Timeout = d
		}
		c.StrictValidation = cfg.Matching.ValidateInputs
	}
	return c
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
`

const modelsTemplate = `// internal/workers/{{.Category}}/{{.TaskType}}/models.go
package {{.PackageName}}

type Input struct {
{{.InputFields}}
}

type Output struct {
{{.OutputFields}}
}
`

const handlerTemplate = `// internal/workers/{{.Category}}/{{.TaskType}}/handler.go
package {{.PackageName}}

import (
	"context"
	"encoding/json"

	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/internal/common/logger"
	"pawmatch-workers/internal/common/metrics"
	"pawmatch-workers/internal/common/observability"
	"pawmatch-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "{{.TaskType}}"
)

// Handler runs {{.Name}}: {{.Description}}
// Error codes:{{range .ErrorCodes}} {{.}}{{end}}
type Handler struct {
	config    *Config
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		validator: validator,
		errors:    errors.NewErrorHandler(l),
		logger:    l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)
	log := h.logger.WithFields(logger.JobFields(job))
	log.Info("processing job", nil)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()
	ctx, span := observability.StartSpan(ctx, TaskType, attribute.Int64("job.key", job.Key))

	output, err := h.run(ctx, job)
	observability.EndSpan(span, err)
	if err != nil {
		timer.Failed(string(errors.CodeOf(err)))
		h.errors.HandleJobError(context.Background(), client, job, err)
		return
	}

	timer.Completed()
	h.completeJob(client, job, output)
	log.Info("job completed", nil)
}

func (h *Handler) run(ctx context.Context, job entities.Job) (*Output, error) {
	if err := h.validator.ValidateVariables(TaskType, job.Variables); err != nil {
		return nil, err
	}
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return h.execute(ctx, &input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// TODO: implement {{.TaskType}}
	return &Output{}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const handlerTestTemplate = `// internal/workers/{{.Category}}/{{.TaskType}}/handler_test.go
package {{.PackageName}}

import (
	"context"
	"testing"
	"time"

	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.NotNil(t, output)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Run_MalformedVariables(t *testing.T) {
	handler := createTestHandler(t)
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Type: TaskType, Variables: "{not json"}}

	output, err := handler.run(context.Background(), job)

	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeParseError, errors.CodeOf(err))
}
`
