// pkg/matching/score_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func enfpFirstTimer() *UserProfile {
	return &UserProfile{
		MBTI:          "ENFP",
		ActivityLevel: ActivityVeryActive,
		LivingSpace:   LivingCondo,
		TimeAvailable: Time3To4Hours,
		Experience:    ExperienceFirstTimer,
	}
}

func newAnimal(id string, mbti MBTI, energy int, needs ExperienceNeeded) Animal {
	return Animal{
		ID:                    id,
		Name:                  "Pet " + id,
		Species:               "dog",
		Age:                   2,
		MBTIType:              mbti,
		EnergyLevel:           energy,
		ExperienceLevelNeeded: needs,
		DaysInShelter:         10,
	}
}

// ==========================
// ComputeMatchScore
// ==========================

func TestComputeMatchScore_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		profile *UserProfile
		animal  *Animal
		want    int
	}{
		{
			name:    "perfect young match",
			profile: enfpFirstTimer(),
			animal: &Animal{
				MBTIType: "ENFP", EnergyLevel: 5, ExperienceLevelNeeded: NeedsBeginner,
				Age: 2, DaysInShelter: 10,
			},
			want: 90,
		},
		{
			name:    "opposite senior gets no bonus under threshold",
			profile: enfpFirstTimer(),
			animal: &Animal{
				MBTIType: "ISTJ", EnergyLevel: 1, ExperienceLevelNeeded: NeedsExperienced,
				Age: 8, SpecialNeeds: true, DaysInShelter: 120,
			},
			want: 0,
		},
		{
			name: "senior bonus rounds once",
			profile: &UserProfile{
				MBTI: "ISTJ", ActivityLevel: ActivityHomebody, Experience: ExperienceVeryExperienced,
			},
			animal: &Animal{
				MBTIType: "ISTJ", EnergyLevel: 2, ExperienceLevelNeeded: NeedsExperienced,
				Age: 9, DaysInShelter: 95,
			},
			want: 94,
		},
		{
			name: "bonus clamps to 100",
			profile: &UserProfile{
				MBTI: "ISTJ", ActivityLevel: ActivityHomebody, Experience: ExperienceVeryExperienced,
			},
			animal: &Animal{
				MBTIType: "ISTJ", EnergyLevel: 1, ExperienceLevelNeeded: NeedsExperienced,
				SpecialNeeds: true,
			},
			want: 100,
		},
		{
			name:    "nil profile",
			profile: nil,
			animal:  &Animal{MBTIType: "ENFP", EnergyLevel: 5},
			want:    0,
		},
		{
			name:    "nil animal",
			profile: enfpFirstTimer(),
			animal:  nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeMatchScore(tt.profile, tt.animal))
		})
	}
}

func TestScoreBreakdown_Stages(t *testing.T) {
	profile := &UserProfile{
		MBTI: "ISTJ", ActivityLevel: ActivityHomebody, Experience: ExperienceVeryExperienced,
	}
	animal := &Animal{
		MBTIType: "ISTJ", EnergyLevel: 2, ExperienceLevelNeeded: NeedsExperienced, Age: 9,
	}

	b := ScoreBreakdown(profile, animal)
	assert.Equal(t, 50.0, b.MBTI)
	assert.Equal(t, 18.75, b.Energy)
	assert.Equal(t, 15.0, b.Experience)
	assert.Equal(t, 10.0, b.Bonus)
	assert.Equal(t, 94, b.Total)
	assert.Equal(t, b.Total, ComputeMatchScore(profile, animal))
}

func TestComputeMatchScore_MBTIAdditivity(t *testing.T) {
	profile := &UserProfile{MBTI: "ENFP", ActivityLevel: ActivityModeratelyActive, Experience: ExperienceSome}
	codes := []MBTI{"ISTJ", "ESTJ", "ENTJ", "ENFJ", "ENFP"}

	var prev Breakdown
	for k, code := range codes {
		animal := &Animal{MBTIType: code, EnergyLevel: 1, ExperienceLevelNeeded: NeedsBeginner}
		b := ScoreBreakdown(profile, animal)
		assert.Equal(t, k, MatchingDimensions(profile.MBTI, code))
		if k > 0 {
			assert.Equal(t, 12.5, b.MBTI-prev.MBTI, "k=%d", k)
		}
		prev = b
	}
}

func TestComputeMatchScore_EnergyMonotonic(t *testing.T) {
	profile := &UserProfile{MBTI: "INTJ", ActivityLevel: ActivityVeryActive, Experience: ExperienceSome}

	expected := map[int]float64{5: 25, 4: 18.75, 3: 12.5, 2: 6.25, 1: 0}
	last := 101
	for energy := 5; energy >= 1; energy-- {
		animal := &Animal{MBTIType: "ESFP", EnergyLevel: energy, ExperienceLevelNeeded: NeedsIntermediate}
		b := ScoreBreakdown(profile, animal)
		assert.Equal(t, expected[energy], b.Energy)
		assert.LessOrEqual(t, b.Total, last)
		last = b.Total
	}
}

func TestComputeMatchScore_BonusNeedsRunningAbove60(t *testing.T) {
	// 50 + 0 + 10 = 60 exactly, bonus must not apply.
	profile := &UserProfile{MBTI: "ENFP", ActivityLevel: ActivityVeryActive, Experience: ExperienceSome}
	animal := &Animal{
		MBTIType: "ENFP", EnergyLevel: 1, ExperienceLevelNeeded: NeedsBeginner,
		Age: 12, SpecialNeeds: true,
	}

	b := ScoreBreakdown(profile, animal)
	assert.Equal(t, 0.0, b.Bonus)
	assert.Equal(t, 60, b.Total)
}

func TestComputeMatchScore_DefensiveDefaults(t *testing.T) {
	t.Run("unknown activity level is neutral", func(t *testing.T) {
		profile := &UserProfile{ActivityLevel: "couch_potato"}
		animal := &Animal{EnergyLevel: 3}
		assert.Equal(t, 25.0, ScoreBreakdown(profile, animal).Energy)
	})

	t.Run("unknown experience contributes nothing", func(t *testing.T) {
		profile := &UserProfile{Experience: "professional"}
		animal := &Animal{ExperienceLevelNeeded: NeedsBeginner}
		assert.Equal(t, 0.0, ScoreBreakdown(profile, animal).Experience)
	})

	t.Run("malformed mbti scores zero", func(t *testing.T) {
		assert.Equal(t, 0, MatchingDimensions("ENF", "ENFP"))
		assert.Equal(t, 0, MatchingDimensions("XXXX", "XXXX"))
		assert.Equal(t, 0, MatchingDimensions("", ""))
	})

	t.Run("mbti case is ignored", func(t *testing.T) {
		assert.Equal(t, 4, MatchingDimensions("enfp", "ENFP"))
		assert.Equal(t, 2, MatchingDimensions(" Enfj ", "esfp"))

		profile := enfpFirstTimer()
		profile.MBTI = "enfp"
		animal := newAnimal("a", "ENFP", 5, NeedsBeginner)
		assert.Equal(t, 90, ComputeMatchScore(profile, &animal))
	})

	t.Run("out of range energy is clamped", func(t *testing.T) {
		profile := &UserProfile{ActivityLevel: ActivityVeryActive}
		assert.Equal(t, 25.0, ScoreBreakdown(profile, &Animal{EnergyLevel: 42}).Energy)
		assert.Equal(t, 0.0, ScoreBreakdown(profile, &Animal{EnergyLevel: -3}).Energy)
	})

	t.Run("score stays in range", func(t *testing.T) {
		for _, e := range []int{-10, 0, 1, 3, 5, 99} {
			score := ComputeMatchScore(enfpFirstTimer(), &Animal{
				MBTIType: "ENFP", EnergyLevel: e, ExperienceLevelNeeded: NeedsBeginner, SpecialNeeds: true,
			})
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	})
}

func TestExperienceTable(t *testing.T) {
	tests := []struct {
		user   Experience
		needed ExperienceNeeded
		want   float64
	}{
		{ExperienceFirstTimer, NeedsBeginner, 15},
		{ExperienceFirstTimer, NeedsIntermediate, 5},
		{ExperienceFirstTimer, NeedsExperienced, 0},
		{ExperienceSome, NeedsBeginner, 10},
		{ExperienceSome, NeedsIntermediate, 15},
		{ExperienceSome, NeedsExperienced, 5},
		{ExperienceVeryExperienced, NeedsBeginner, 8},
		{ExperienceVeryExperienced, NeedsIntermediate, 12},
		{ExperienceVeryExperienced, NeedsExperienced, 15},
	}

	for _, tt := range tests {
		t.Run(string(tt.user)+"/"+string(tt.needed), func(t *testing.T) {
			assert.Equal(t, tt.want, experienceFit(tt.user, tt.needed))
		})
	}
}

func TestParseMBTI(t *testing.T) {
	code, err := ParseMBTI(" enfp ")
	require.NoError(t, err)
	assert.Equal(t, MBTI("ENFP"), code)

	_, err = ParseMBTI("ENFX")
	assert.Error(t, err)
	_, err = ParseMBTI("")
	assert.Error(t, err)
}
