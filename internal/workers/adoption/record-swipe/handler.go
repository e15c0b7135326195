// internal/workers/adoption/record-swipe/handler.go
package recordswipe

import (
	"context"
	"encoding/json"
	"time"

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
	TaskType = "record-swipe"
)

// SwipeStore resolves likes and persists every swipe. *catalog.Store
// implements it.
type SwipeStore interface {
	catalog.Lookup
	RecordSwipe(ctx context.Context, sw catalog.Swipe) error
}

type Handler struct {
	config    *Config
	store     SwipeStore
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, store SwipeStore, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		store:     store,
		validator: validator,
		errors:    errors.NewErrorHandler(l),
		logger:    l,
		now:       time.Now,
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
		"swipeId":   output.SwipeID,
		"direction": output.Direction,
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
	direction := catalog.Direction(input.Direction)
	if violations := checkInput(input, direction); len(violations) > 0 {
		return nil, errors.NewInputSchemaInvalidError(TaskType, violations)
	}

	output := &Output{
		UserID:    input.UserID,
		AnimalID:  input.AnimalID,
		Direction: string(direction),
		Liked:     direction == catalog.DirectionLike,
	}

	if output.Liked {
		profile, err := catalog.ResolveProfile(ctx, h.store, input.UserProfile, input.UserID, h.config.StrictValidation)
		if err != nil {
			return nil, err
		}
		animal, err := catalog.ResolveAnimal(ctx, h.store, input.Animal, input.AnimalID, h.config.StrictValidation)
		if err != nil {
			return nil, err
		}
		score := matching.ComputeMatchScore(profile, animal)
		output.MatchScore = &score
		output.MatchTier = matching.TierForScore(score)
		output.ShelterID = animal.ShelterID
		output.NotifyShelter = animal.ShelterID != ""
		metrics.MatchScore.Observe(float64(score))
	}

	sw := catalog.NewSwipe(input.UserID, input.AnimalID, direction, output.MatchScore, h.now())
	if err := h.store.RecordSwipe(ctx, sw); err != nil {
		return nil, err
	}
	metrics.Swipes.WithLabelValues(string(direction)).Inc()

	output.SwipeID = sw.ID.String()
	output.SwipedAt = sw.CreatedAt
	return output, nil
}

func checkInput(input *Input, direction catalog.Direction) []string {
	var violations []string
	if input.UserID == "" {
		violations = append(violations, "userId is required")
	}
	if input.AnimalID == "" {
		violations = append(violations, "animalId is required")
	}
	if !direction.Valid() {
		violations = append(violations, "direction must be one of: like, pass")
	}
	return violations
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
