// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"
	"sort"

	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks raw job variables against the input schema that the
// activity registry declares for each task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every non-empty input schema in reg.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema)}
	for _, a := range reg.Activities {
		if len(a.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", a.TaskType, err)
		}
		v.schemas[a.TaskType] = schema
	}
	return v, nil
}

// LoadValidator reads the registry at path and compiles it.
func LoadValidator(path string) (*Validator, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load activity registry: %w", err)
	}
	return NewValidator(reg)
}

// HasSchema reports whether taskType has a compiled schema.
func (v *Validator) HasSchema(taskType string) bool {
	if v == nil {
		return false
	}
	_, ok := v.schemas[taskType]
	return ok
}

// ValidateVariables validates the job variables JSON for taskType. A nil
// Validator and task types without a schema accept everything. Violations
// come back as an INPUT_SCHEMA_INVALID StandardError; malformed JSON as
// PARSE_ERROR.
func (v *Validator) ValidateVariables(taskType, variables string) error {
	if v == nil {
		return nil
	}
	schema, ok := v.schemas[taskType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(variables))
	if err != nil {
		return errors.NewParseError(err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	sort.Strings(violations)
	return errors.NewInputSchemaInvalidError(taskType, violations)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail is the format check applied to shelter contact addresses.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

var phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// ValidatePhone accepts E.164 numbers, the format SNS requires for SMS.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
