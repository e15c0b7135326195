// internal/workers/notification/notify-shelter/handler.go
package notifyshelter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pawmatch-workers/internal/catalog"
	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/internal/common/logger"
	"pawmatch-workers/internal/common/metrics"
	"pawmatch-workers/internal/common/observability"
	"pawmatch-workers/internal/common/validation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "notify-shelter"
)

// SESService and SNSService are the slices of the AWS clients this worker
// calls.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Directory finds the liked animal and its shelter. *catalog.Store
// implements it.
type Directory interface {
	catalog.Lookup
	Shelter(ctx context.Context, id string) (*catalog.Shelter, error)
}

type Handler struct {
	config    *Config
	directory Directory
	sesClient SESService
	snsClient SNSService
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, directory Directory, sesClient SESService, snsClient SNSService, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		directory: directory,
		sesClient: sesClient,
		snsClient: snsClient,
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
		"notificationId": output.NotificationID,
		"emailSent":      output.EmailSent,
		"smsSent":        output.SMSSent,
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
	animal, err := catalog.ResolveAnimal(ctx, h.directory, input.Animal, input.AnimalID, h.config.StrictValidation)
	if err != nil {
		return nil, err
	}

	shelterID := input.ShelterID
	if shelterID == "" {
		shelterID = animal.ShelterID
	}
	if shelterID == "" || h.directory == nil {
		return nil, errors.NewShelterNotFoundError(shelterID)
	}
	shelter, err := h.directory.Shelter(ctx, shelterID)
	if err != nil {
		return nil, err
	}

	msg := render(shelter, animal, input)
	output := &Output{
		NotificationID: uuid.New().String(),
		ShelterID:      shelter.ID,
		SentAt:         h.now().UTC(),
	}

	if h.config.EmailEnabled {
		if !validation.ValidateEmail(shelter.ContactEmail) {
			h.logger.Warn("shelter email invalid, skipping", map[string]interface{}{"shelterId": shelter.ID})
			output.Skipped = append(output.Skipped, "email")
		} else {
			if err := h.sendEmail(ctx, shelter.ContactEmail, msg.Subject, msg.Body); err != nil {
				return nil, errors.NewNotificationSendFailedError("email", err)
			}
			output.EmailSent = true
		}
	}

	if h.config.SMSEnabled && msg.SMS != "" {
		if !validation.ValidatePhone(shelter.ContactPhone) {
			output.Skipped = append(output.Skipped, "sms")
		} else {
			// the email already went out, so an SMS failure is reported but not retried
			if err := h.sendSMS(ctx, shelter.ContactPhone, msg.SMS); err != nil {
				h.logger.Error("SMS send failed", map[string]interface{}{
					"shelterId": shelter.ID,
					"error":     err,
				})
				output.Skipped = append(output.Skipped, "sms")
			} else {
				output.SMSSent = true
			}
		}
	}

	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	if h.sesClient == nil {
		return fmt.Errorf("ses client not configured")
	}
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	if h.snsClient == nil {
		return fmt.Errorf("sns client not configured")
	}
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
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
