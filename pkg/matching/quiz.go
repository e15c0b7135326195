// pkg/matching/quiz.go
package matching

import (
	"fmt"
	"sort"
	"strings"
)

// Question numbers of the onboarding quiz.
const (
	QuestionEnergySource  = 1 // E or I
	QuestionDecisions     = 2 // T or F
	QuestionStructure     = 3 // J or P
	QuestionPerception    = 4 // S or N
	QuestionActivity      = 5
	QuestionLivingSpace   = 6
	QuestionTimeAvailable = 7
	QuestionExperience    = 8
)

// QuizAnswers maps a question number to the chosen option value.
type QuizAnswers map[int]string

// QuizError lists every question whose answer was missing or invalid.
type QuizError struct {
	Problems map[int]string
}

func (e *QuizError) Error() string {
	keys := make([]int, 0, len(e.Problems))
	for q := range e.Problems {
		keys = append(keys, q)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, q := range keys {
		parts = append(parts, fmt.Sprintf("q%d: %s", q, e.Problems[q]))
	}
	return "incomplete quiz: " + strings.Join(parts, "; ")
}

// Questions returns the offending question numbers in ascending order.
func (e *QuizError) Questions() []int {
	keys := make([]int, 0, len(e.Problems))
	for q := range e.Problems {
		keys = append(keys, q)
	}
	sort.Ints(keys)
	return keys
}

// DeriveProfile builds a UserProfile from a finished quiz. The MBTI code is
// assembled in the order Q1, Q4, Q2, Q3.
func DeriveProfile(answers QuizAnswers) (UserProfile, error) {
	problems := make(map[int]string)

	letter := func(q int, allowed [2]byte) byte {
		v, ok := answers[q]
		if !ok || v == "" {
			problems[q] = "missing answer"
			return 0
		}
		v = strings.ToUpper(strings.TrimSpace(v))
		if len(v) != 1 || (v[0] != allowed[0] && v[0] != allowed[1]) {
			problems[q] = fmt.Sprintf("expected %c or %c, got %q", allowed[0], allowed[1], answers[q])
			return 0
		}
		return v[0]
	}

	code := []byte{
		letter(QuestionEnergySource, mbtiAlphabet[0]),
		letter(QuestionPerception, mbtiAlphabet[1]),
		letter(QuestionDecisions, mbtiAlphabet[2]),
		letter(QuestionStructure, mbtiAlphabet[3]),
	}

	enum := func(q int, valid func(string) bool) string {
		v, ok := answers[q]
		if !ok || v == "" {
			problems[q] = "missing answer"
			return ""
		}
		if !valid(v) {
			problems[q] = fmt.Sprintf("unknown option %q", v)
			return ""
		}
		return v
	}

	profile := UserProfile{
		ActivityLevel: ActivityLevel(enum(QuestionActivity, func(s string) bool { return ActivityLevel(s).Valid() })),
		LivingSpace:   LivingSpace(enum(QuestionLivingSpace, func(s string) bool { return LivingSpace(s).Valid() })),
		TimeAvailable: TimeAvailable(enum(QuestionTimeAvailable, func(s string) bool { return TimeAvailable(s).Valid() })),
		Experience:    Experience(enum(QuestionExperience, func(s string) bool { return Experience(s).Valid() })),
	}

	if len(problems) > 0 {
		return UserProfile{}, &QuizError{Problems: problems}
	}
	profile.MBTI = MBTI(code)
	return profile, nil
}
