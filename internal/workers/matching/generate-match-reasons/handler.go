// internal/workers/matching/generate-match-reasons/handler.go
package generatematchreasons

import (
	"context"
	"encoding/json"

	"pawmatch-workers/internal/catalog"
	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/internal/common/logger"
	"pawmatch-workers/internal/common/metrics"
	"pawmatch-workers/internal/common/observability"
	"pawmatch-workers/internal/common/validation"
	"pawmatch-workers/pkg/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "generate-match-reasons"
)

type Handler struct {
	config    *Config
	lookup    catalog.Lookup
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, lookup catalog.Lookup, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		lookup:    lookup,
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
	log.Info("job completed", map[string]interface{}{
		"animalId":       output.AnimalID,
		"hasWaitingNote": output.HasWaitingNote,
	})
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
	profile, err := catalog.ResolveProfile(ctx, h.lookup, input.UserProfile, input.UserID, h.config.StrictValidation)
	if err != nil {
		return nil, err
	}
	animal, err := catalog.ResolveAnimal(ctx, h.lookup, input.Animal, input.AnimalID, h.config.StrictValidation)
	if err != nil {
		return nil, err
	}

	explanation := matching.GenerateMatchReasons(profile, animal)
	score := matching.ComputeMatchScore(profile, animal)

	return &Output{
		AnimalID:        animal.ID,
		AnimalName:      animal.Name,
		MatchReasons:    explanation.Bullets,
		WaitingNote:     explanation.WaitingNote,
		HasWaitingNote:  explanation.HasWaitingNote(),
		UserMBTILabel:   profile.MBTI.Label(),
		AnimalMBTILabel: animal.MBTIType.Label(),
		MatchScore:      score,
		MatchTier:       matching.TierForScore(score),
	}, nil
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
