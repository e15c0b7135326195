// Package errors carries the job error taxonomy shared by the PawMatch
// workers and its mapping onto BPMN error events.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode is the stable identifier a workflow model catches on.
type ErrorCode string

const (
	// Input
	ErrCodeParseError         ErrorCode = "PARSE_ERROR"
	ErrCodeInputSchemaInvalid ErrorCode = "INPUT_SCHEMA_INVALID"
	ErrCodeProfileInvalid     ErrorCode = "PROFILE_INVALID"
	ErrCodeAnimalInvalid      ErrorCode = "ANIMAL_INVALID"
	ErrCodeQuizIncomplete     ErrorCode = "QUIZ_INCOMPLETE"

	// Catalog
	ErrCodeAnimalNotFound      ErrorCode = "ANIMAL_NOT_FOUND"
	ErrCodeProfileNotFound     ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeShelterNotFound     ErrorCode = "SHELTER_NOT_FOUND"
	ErrCodeCatalogQueryFailed  ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeCatalogQueryTimeout ErrorCode = "CATALOG_QUERY_TIMEOUT"
	ErrCodeCatalogSearchFailed ErrorCode = "CATALOG_SEARCH_FAILED"
	ErrCodeSearchTimeout       ErrorCode = "SEARCH_TIMEOUT"

	// Swipes
	ErrCodeSwipeRecordFailed ErrorCode = "SWIPE_RECORD_FAILED"
	ErrCodeDuplicateSwipe    ErrorCode = "DUPLICATE_SWIPE"

	// Notifications
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	// Transport
	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerTimeout     ErrorCode = "BROKER_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the structured error every worker returns from execute.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// As finds the first StandardError in err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the code of the StandardError in err's chain, or
// INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := As(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is what gets thrown to, or failed back on, the Zeebe broker.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the process variables set alongside the error.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be decoded", err.Error(), false, err)
}

// NewInputSchemaInvalidError lists every schema violation in Details.
func NewInputSchemaInvalidError(taskType string, violations []string) *StandardError {
	return newError(ErrCodeInputSchemaInvalid, "Job variables do not match the activity schema",
		fmt.Sprintf("taskType: %s, violations: %s", taskType, strings.Join(violations, "; ")), false, nil)
}

func NewProfileInvalidError(err error) *StandardError {
	return newError(ErrCodeProfileInvalid, "Adopter profile is invalid", err.Error(), false, err)
}

func NewAnimalInvalidError(animalID string, err error) *StandardError {
	return newError(ErrCodeAnimalInvalid, "Animal record is invalid",
		fmt.Sprintf("animalId: %s, error: %s", animalID, err.Error()), false, err)
}

func NewQuizIncompleteError(err error) *StandardError {
	return newError(ErrCodeQuizIncomplete, "Onboarding quiz is incomplete", err.Error(), false, err)
}

func NewAnimalNotFoundError(animalID string) *StandardError {
	return newError(ErrCodeAnimalNotFound, "Animal not found in catalog",
		fmt.Sprintf("animalId: %s", animalID), false, nil)
}

func NewProfileNotFoundError(userID string) *StandardError {
	return newError(ErrCodeProfileNotFound, "No stored profile for user",
		fmt.Sprintf("userId: %s", userID), false, nil)
}

func NewShelterNotFoundError(shelterID string) *StandardError {
	return newError(ErrCodeShelterNotFound, "Shelter not found in catalog",
		fmt.Sprintf("shelterId: %s", shelterID), false, nil)
}

// NewCatalogQueryFailedError is retryable. A deadline overrun is reported
// as CATALOG_QUERY_TIMEOUT instead.
func NewCatalogQueryFailedError(operation string, err error) *StandardError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return newError(ErrCodeCatalogQueryTimeout, "Catalog query timeout",
			fmt.Sprintf("operation: %s", operation), true, err)
	}
	return newError(ErrCodeCatalogQueryFailed, "Catalog query failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true, err)
}

func NewCatalogSearchFailedError(index string, err error) *StandardError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return newError(ErrCodeSearchTimeout, "Catalog search timeout",
			fmt.Sprintf("index: %s", index), true, err)
	}
	return newError(ErrCodeCatalogSearchFailed, "Catalog search failed",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true, err)
}

func NewSwipeRecordFailedError(err error) *StandardError {
	return newError(ErrCodeSwipeRecordFailed, "Swipe could not be stored", err.Error(), true, err)
}

func NewDuplicateSwipeError(userID, animalID string) *StandardError {
	return newError(ErrCodeDuplicateSwipe, "Animal already swiped by this user",
		fmt.Sprintf("userId: %s, animalId: %s", userID, animalID), false, nil)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true, err)
}

func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, "Zeebe gateway unavailable",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true, err)
}

func NewBrokerTimeoutError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerTimeout, "Zeebe gateway timeout",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// ==========================
// 4. BPMN Mapping and Retries
// ==========================

// BPMNErrorMapping lists the codes modelled as boundary events. Codes not
// listed are thrown under their own name.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:             "PARSE_ERROR",
	ErrCodeInputSchemaInvalid:     "INPUT_SCHEMA_INVALID",
	ErrCodeProfileInvalid:         "PROFILE_INVALID",
	ErrCodeAnimalInvalid:          "ANIMAL_INVALID",
	ErrCodeQuizIncomplete:         "QUIZ_INCOMPLETE",
	ErrCodeAnimalNotFound:         "ANIMAL_NOT_FOUND",
	ErrCodeProfileNotFound:        "PROFILE_NOT_FOUND",
	ErrCodeShelterNotFound:        "SHELTER_NOT_FOUND",
	ErrCodeCatalogQueryFailed:     "CATALOG_QUERY_FAILED",
	ErrCodeCatalogQueryTimeout:    "CATALOG_QUERY_FAILED",
	ErrCodeCatalogSearchFailed:    "CATALOG_SEARCH_FAILED",
	ErrCodeSearchTimeout:          "CATALOG_SEARCH_FAILED",
	ErrCodeSwipeRecordFailed:      "SWIPE_RECORD_FAILED",
	ErrCodeDuplicateSwipe:         "DUPLICATE_SWIPE",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns how many attempts the broker gets before the error
// is thrown as a BPMN event.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogQueryFailed,
		ErrCodeCatalogSearchFailed,
		ErrCodeSwipeRecordFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeCatalogQueryTimeout,
		ErrCodeSearchTimeout:
		return 2

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "INVALID") ||
		strings.Contains(codeStr, "INCOMPLETE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "NOT_FOUND"):
		return "CATALOG"
	case strings.Contains(codeStr, "SWIPE"):
		return "SWIPE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
