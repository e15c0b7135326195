// internal/workers/catalog/search-animals/handler.go
package searchanimals

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
	TaskType = "search-animals"
)

type Searcher interface {
	Search(ctx context.Context, q catalog.SearchQuery) (*catalog.SearchResult, error)
}

type Handler struct {
	config    *Config
	search    Searcher
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, search Searcher, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		search:    search,
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
	log.Info("job completed", map[string]interface{}{"totalHits": output.TotalHits})
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
	q := catalog.SearchQuery{
		Text:    input.Query,
		Species: input.Species,
		Breed:   input.Breed,
		HDBOnly: input.HDBOnly,
		From:    input.From,
		Size:    input.Size,
	}
	if input.UserProfile != nil && input.UserProfile.LivingSpace == matching.LivingHDB {
		q.HDBOnly = true
	}

	res, err := h.search.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	output := &Output{
		TotalHits: res.Total,
		AnimalIDs: make([]string, 0, len(res.Hits)),
		Results:   make([]Result, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		r := Result{AnimalID: hit.ID, Relevance: hit.Score, Animal: hit.Animal}
		if input.UserProfile != nil {
			score := matching.ComputeMatchScore(input.UserProfile, &hit.Animal)
			r.MatchScore = &score
		}
		output.AnimalIDs = append(output.AnimalIDs, hit.ID)
		output.Results = append(output.Results, r)
	}

	h.logger.Debug("catalog searched", map[string]interface{}{
		"query":    input.Query,
		"species":  input.Species,
		"hdbOnly":  q.HDBOnly,
		"returned": len(output.Results),
	})
	return output, nil
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
