// internal/workers/matching/derive-user-profile/handler.go
package deriveuserprofile

import (
	"context"
	"encoding/json"

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
	TaskType = "derive-user-profile"
)

// ProfileStore persists derived profiles.
type ProfileStore interface {
	SaveProfile(ctx context.Context, userID string, p matching.UserProfile) error
}

type Handler struct {
	config    *Config
	store     ProfileStore
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

// NewHandler builds the handler. A nil store skips persistence.
func NewHandler(config *Config, store ProfileStore, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		store:     store,
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
	log.Info("job completed", map[string]interface{}{"mbti": output.UserProfile.MBTI})
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
	profile, err := matching.DeriveProfile(input.Answers)
	if err != nil {
		return nil, errors.NewQuizIncompleteError(err)
	}

	output := &Output{
		UserProfile: profile,
		MBTILabel:   profile.MBTI.Label(),
	}

	if h.store != nil && input.UserID != "" {
		if err := h.store.SaveProfile(ctx, input.UserID, profile); err != nil {
			return nil, err
		}
		output.ProfileSaved = true
	}

	h.logger.Debug("profile derived", map[string]interface{}{
		"userId": input.UserID,
		"mbti":   profile.MBTI,
		"label":  output.MBTILabel,
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

// Execute runs the derivation without a Zeebe job.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
