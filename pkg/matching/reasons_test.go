// pkg/matching/reasons_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMatchReasons_MBTIBulletsTruncate(t *testing.T) {
	animal := newAnimal("b", "ENFP", 5, NeedsBeginner)
	animal.Name = "Biscuit"

	got := GenerateMatchReasons(enfpFirstTimer(), &animal)

	require.Len(t, got.Bullets, 3)
	assert.Equal(t, []string{
		"You both recharge in similar ways — social energy and shared adventures",
		"You share the same approach to the world — curious, adaptable, and always exploring",
		"Your bonding style aligns — deep emotional attunement and loyalty",
	}, got.Bullets)
	assert.False(t, got.HasWaitingNote())
}

func TestGenerateMatchReasons_LowercaseCodes(t *testing.T) {
	profile := enfpFirstTimer()
	profile.MBTI = "enfp"
	animal := newAnimal("b", "enfp", 5, NeedsBeginner)

	got := GenerateMatchReasons(profile, &animal)

	require.Len(t, got.Bullets, 3)
	assert.Equal(t, "You both recharge in similar ways — social energy and shared adventures", got.Bullets[0])
}

func TestGenerateMatchReasons_LetterSpecificPhrasing(t *testing.T) {
	profile := &UserProfile{MBTI: "ISTJ", ActivityLevel: ActivityHomebody, Experience: ExperienceSome}
	animal := Animal{Name: "Mochi", MBTIType: "INFJ", EnergyLevel: 5, ExperienceLevelNeeded: NeedsBeginner}

	got := GenerateMatchReasons(profile, &animal)

	require.Len(t, got.Bullets, 3)
	assert.Equal(t, "You both recharge in similar ways — quiet evenings and meaningful one-on-one time", got.Bullets[0])
	assert.Equal(t, "Your lifestyle fits — you both thrive with structure and predictability", got.Bullets[1])
	assert.Equal(t, "Mochi's personality complements yours in a meaningful way", got.Bullets[2])
}

func TestGenerateMatchReasons_EnergyAndExperienceFallbacks(t *testing.T) {
	profile := &UserProfile{MBTI: "ENFP", ActivityLevel: ActivityModeratelyActive, Experience: ExperienceSome}
	animal := Animal{Name: "Tofu", MBTIType: "ISTJ", EnergyLevel: 4, ExperienceLevelNeeded: NeedsIntermediate}

	got := GenerateMatchReasons(profile, &animal)

	assert.Equal(t, []string{
		"Your balanced lifestyle is a perfect fit for Tofu's energy level",
		"Tofu's care needs align perfectly with your experience level",
		"Tofu's personality complements yours in a meaningful way",
	}, got.Bullets)
}

func TestGenerateMatchReasons_AllGeneric(t *testing.T) {
	animal := Animal{Name: "Rex", MBTIType: "ISTJ", EnergyLevel: 1, ExperienceLevelNeeded: NeedsExperienced, DaysInShelter: 120, SpecialNeeds: true, Age: 8}

	got := GenerateMatchReasons(enfpFirstTimer(), &animal)

	assert.Equal(t, []string{
		"Rex's personality complements yours in a meaningful way",
		"You have the lifestyle that Rex needs to truly thrive",
		"Rex has been waiting for someone just like you",
	}, got.Bullets)
	assert.Equal(t, "Rex has been waiting 120 days. You might be exactly who they've been hoping for.", got.WaitingNote)
}

func TestGenerateMatchReasons_WaitingNoteTrigger(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		special bool
		want    bool
	}{
		{"short stay", 10, false, false},
		{"exactly 90 days", 90, false, false},
		{"91 days", 91, false, true},
		{"special needs", 3, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			animal := Animal{Name: "Luna", DaysInShelter: tt.days, SpecialNeeds: tt.special}
			got := GenerateMatchReasons(enfpFirstTimer(), &animal)
			assert.Equal(t, tt.want, got.HasWaitingNote())
			assert.Equal(t, tt.want, NeedsWaitingNote(animal))
			assert.Len(t, got.Bullets, 3)
		})
	}
}

func TestGenerateMatchReasons_NilInputs(t *testing.T) {
	assert.NotPanics(t, func() {
		got := GenerateMatchReasons(nil, nil)
		assert.Len(t, got.Bullets, 3)
	})
}

func TestEnergyLabel(t *testing.T) {
	assert.Equal(t, "relaxed", EnergyLabel(1))
	assert.Equal(t, "gentle", EnergyLabel(2))
	assert.Equal(t, "balanced", EnergyLabel(3))
	assert.Equal(t, "active", EnergyLabel(4))
	assert.Equal(t, "high-energy", EnergyLabel(5))
	assert.Equal(t, "balanced", EnergyLabel(0))
}
