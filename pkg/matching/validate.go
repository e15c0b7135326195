// pkg/matching/validate.go
package matching

import (
	"fmt"
	"strings"
)

// ValidationError collects field problems found by Validate.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// Validate checks that every enum field holds a known value and the MBTI
// code is well-formed. Scoring never requires this; it is for callers that
// want to reject bad input instead of scoring it with neutral defaults.
func (p UserProfile) Validate() error {
	var fields []string
	if !p.MBTI.Valid() {
		fields = append(fields, fmt.Sprintf("mbti=%q", p.MBTI))
	}
	if !p.ActivityLevel.Valid() {
		fields = append(fields, fmt.Sprintf("activityLevel=%q", p.ActivityLevel))
	}
	if !p.LivingSpace.Valid() {
		fields = append(fields, fmt.Sprintf("livingSpace=%q", p.LivingSpace))
	}
	if p.TimeAvailable != "" && !p.TimeAvailable.Valid() {
		fields = append(fields, fmt.Sprintf("timeAvailable=%q", p.TimeAvailable))
	}
	if !p.Experience.Valid() {
		fields = append(fields, fmt.Sprintf("experience=%q", p.Experience))
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (a Animal) Validate() error {
	var fields []string
	if strings.TrimSpace(a.ID) == "" {
		fields = append(fields, "id is empty")
	}
	if strings.TrimSpace(a.Name) == "" {
		fields = append(fields, "name is empty")
	}
	if !a.MBTIType.Valid() {
		fields = append(fields, fmt.Sprintf("mbtiType=%q", a.MBTIType))
	}
	if a.EnergyLevel < minEnergy || a.EnergyLevel > maxEnergy {
		fields = append(fields, fmt.Sprintf("energyLevel=%d", a.EnergyLevel))
	}
	if !a.ExperienceLevelNeeded.Valid() {
		fields = append(fields, fmt.Sprintf("experienceLevelNeeded=%q", a.ExperienceLevelNeeded))
	}
	if a.Age < 0 {
		fields = append(fields, fmt.Sprintf("age=%d", a.Age))
	}
	if a.DaysInShelter < 0 {
		fields = append(fields, fmt.Sprintf("daysInShelter=%d", a.DaysInShelter))
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
