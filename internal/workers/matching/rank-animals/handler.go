// internal/workers/matching/rank-animals/handler.go
package rankanimals

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
	TaskType = "rank-animals"
)

// Catalog is what ranking reads. *catalog.Store implements it.
type Catalog interface {
	catalog.Lookup
	ListAvailable(ctx context.Context, hdbOnly bool, limit int) ([]matching.Animal, error)
	SwipedIDs(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	config    *Config
	catalog   Catalog
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, cat Catalog, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		catalog:   cat,
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
		"ranked":        len(output.RankedAnimals),
		"totalEligible": output.TotalEligible,
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
	var lookup catalog.Lookup
	if h.catalog != nil {
		lookup = h.catalog
	}
	profile, err := catalog.ResolveProfile(ctx, lookup, input.UserProfile, input.UserID, h.config.StrictValidation)
	if err != nil {
		return nil, err
	}

	animals, err := h.candidates(ctx, input, profile)
	if err != nil {
		return nil, err
	}

	skipped := 0
	if h.config.StrictValidation {
		animals, skipped = h.dropInvalid(animals)
	}

	swiped, err := h.swipedIDs(ctx, input)
	if err != nil {
		return nil, err
	}

	ranked := matching.Deck{Passed: swiped}.Available(animals, profile)
	total := len(ranked)
	if limit := h.limit(input.Limit); len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}

	return &Output{
		RankedAnimals: ranked,
		AnimalIDs:     ids,
		TotalEligible: total,
		Skipped:       skipped,
	}, nil
}

func (h *Handler) candidates(ctx context.Context, input *Input, profile *matching.UserProfile) ([]matching.Animal, error) {
	if len(input.Animals) > 0 || h.catalog == nil {
		return input.Animals, nil
	}
	return h.catalog.ListAvailable(ctx, profile.LivingSpace == matching.LivingHDB, 0)
}

func (h *Handler) swipedIDs(ctx context.Context, input *Input) ([]string, error) {
	swiped := append([]string(nil), input.SwipedIDs...)
	if input.UserID == "" || h.catalog == nil {
		return swiped, nil
	}
	stored, err := h.catalog.SwipedIDs(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return append(swiped, stored...), nil
}

func (h *Handler) dropInvalid(animals []matching.Animal) ([]matching.Animal, int) {
	valid := make([]matching.Animal, 0, len(animals))
	for _, a := range animals {
		if err := a.Validate(); err != nil {
			h.logger.Warn("skipping invalid animal", map[string]interface{}{"animalId": a.ID, "error": err})
			continue
		}
		valid = append(valid, a)
	}
	return valid, len(animals) - len(valid)
}

func (h *Handler) limit(requested int) int {
	if requested > 0 && requested < h.config.MaxRankedItems {
		return requested
	}
	return h.config.MaxRankedItems
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
