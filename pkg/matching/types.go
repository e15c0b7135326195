// pkg/matching/types.go
package matching

import (
	"fmt"
	"strings"
)

// MBTI is a four-letter personality code such as "ENFP". The empty value
// means the code is absent.
type MBTI string

// mbtiAlphabet lists the two letters allowed at each position.
var mbtiAlphabet = [4][2]byte{
	{'E', 'I'},
	{'S', 'N'},
	{'T', 'F'},
	{'J', 'P'},
}

// ParseMBTI normalises s to upper case and checks it against the fixed alphabet.
func ParseMBTI(s string) (MBTI, error) {
	code := MBTI(strings.ToUpper(strings.TrimSpace(s)))
	if !code.Valid() {
		return "", fmt.Errorf("invalid MBTI code %q", s)
	}
	return code, nil
}

// Canonical returns m trimmed and upper-cased. Scoring and reasons compare
// canonical codes, so "enfp" and "ENFP" agree at every position.
func (m MBTI) Canonical() MBTI {
	return MBTI(strings.ToUpper(strings.TrimSpace(string(m))))
}

// Valid reports whether m is a complete code drawn from the fixed alphabet,
// ignoring case.
func (m MBTI) Valid() bool {
	m = m.Canonical()
	if len(m) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if m[i] != mbtiAlphabet[i][0] && m[i] != mbtiAlphabet[i][1] {
			return false
		}
	}
	return true
}

// ActivityLevel is the quiz answer describing how active the adopter is.
type ActivityLevel string

const (
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityHomebody         ActivityLevel = "homebody"
)

// Energy maps the activity level onto the 1–5 animal energy scale.
// Unrecognised levels map to the neutral value 3.
func (a ActivityLevel) Energy() int {
	switch a {
	case ActivityVeryActive:
		return 5
	case ActivityModeratelyActive:
		return 3
	case ActivityHomebody:
		return 1
	default:
		return neutralEnergy
	}
}

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivityVeryActive, ActivityModeratelyActive, ActivityHomebody:
		return true
	}
	return false
}

// LivingSpace drives the eligibility filter only.
type LivingSpace string

const (
	LivingHDB    LivingSpace = "hdb"
	LivingCondo  LivingSpace = "condo"
	LivingLanded LivingSpace = "landed"
)

func (l LivingSpace) Valid() bool {
	switch l {
	case LivingHDB, LivingCondo, LivingLanded:
		return true
	}
	return false
}

// TimeAvailable is display-only.
type TimeAvailable string

const (
	Time1To2Hours  TimeAvailable = "1_2_hrs"
	Time3To4Hours  TimeAvailable = "3_4_hrs"
	Time5PlusHours TimeAvailable = "5_plus_hrs"
)

func (t TimeAvailable) Valid() bool {
	switch t {
	case Time1To2Hours, Time3To4Hours, Time5PlusHours:
		return true
	}
	return false
}

// Experience is the adopter's prior pet experience.
type Experience string

const (
	ExperienceFirstTimer      Experience = "first_timer"
	ExperienceSome            Experience = "some_experience"
	ExperienceVeryExperienced Experience = "very_experienced"
)

func (e Experience) Valid() bool {
	switch e {
	case ExperienceFirstTimer, ExperienceSome, ExperienceVeryExperienced:
		return true
	}
	return false
}

// ExperienceNeeded is the level of care an animal requires.
type ExperienceNeeded string

const (
	NeedsBeginner     ExperienceNeeded = "beginner"
	NeedsIntermediate ExperienceNeeded = "intermediate"
	NeedsExperienced  ExperienceNeeded = "experienced"
)

func (e ExperienceNeeded) Valid() bool {
	switch e {
	case NeedsBeginner, NeedsIntermediate, NeedsExperienced:
		return true
	}
	return false
}

// UserProfile is produced once by the onboarding quiz and never mutated.
type UserProfile struct {
	MBTI          MBTI          `json:"mbti"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	LivingSpace   LivingSpace   `json:"livingSpace"`
	TimeAvailable TimeAvailable `json:"timeAvailable"`
	Experience    Experience    `json:"experience"`
}

// Animal is a read-only catalog entry.
type Animal struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Species               string           `json:"species"`
	Breed                 string           `json:"breed"`
	Age                   int              `json:"age"`
	Bio                   string           `json:"bio,omitempty"`
	MBTIType              MBTI             `json:"mbtiType"`
	EnergyLevel           int              `json:"energyLevel"`
	ExperienceLevelNeeded ExperienceNeeded `json:"experienceLevelNeeded"`
	SpecialNeeds          bool             `json:"specialNeeds"`
	DaysInShelter         int              `json:"daysInShelter"`
	HDBApproved           bool             `json:"hdbApproved"`
	PersonalityTag        string           `json:"personalityTag,omitempty"`
	ShelterID             string           `json:"shelterId,omitempty"`
}

// ScoredAnimal is an Animal with the score attached when it was liked.
type ScoredAnimal struct {
	Animal
	Score int `json:"score"`
}

// Explanation is the content of the match modal. WaitingNote is empty when absent.
type Explanation struct {
	Bullets     []string `json:"bullets"`
	WaitingNote string   `json:"waitingNote,omitempty"`
}

// HasWaitingNote reports whether the waiting note should be shown.
func (e Explanation) HasWaitingNote() bool {
	return e.WaitingNote != ""
}
