// pkg/matching/deck_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []Animal {
	approved := newAnimal("approved", "ENFP", 5, NeedsBeginner)
	approved.HDBApproved = true
	big := newAnimal("big", "ENFP", 5, NeedsBeginner)
	other := newAnimal("other", "ISTJ", 1, NeedsExperienced)
	other.HDBApproved = true
	return []Animal{other, big, approved}
}

func TestFilterEligible(t *testing.T) {
	hdb := enfpFirstTimer()
	hdb.LivingSpace = LivingHDB

	got := FilterEligible(catalogFixture(), hdb)
	require.Len(t, got, 2)
	for _, a := range got {
		assert.True(t, a.HDBApproved)
	}

	landed := enfpFirstTimer()
	landed.LivingSpace = LivingLanded
	assert.Len(t, FilterEligible(catalogFixture(), landed), 3)
	assert.Len(t, FilterEligible(catalogFixture(), nil), 3)
}

func TestDeck_AvailableExcludesSwiped(t *testing.T) {
	profile := enfpFirstTimer()
	var deck Deck

	avail := deck.Available(catalogFixture(), profile)
	require.Len(t, avail, 3)
	assert.Equal(t, "big", avail[0].ID)

	deck, liked := deck.Like(profile, avail[0].Animal)
	assert.Equal(t, 90, liked.Score)
	deck = deck.Pass("other")

	avail = deck.Available(catalogFixture(), profile)
	require.Len(t, avail, 1)
	assert.Equal(t, "approved", avail[0].ID)
	assert.True(t, deck.Swiped("big"))
	assert.True(t, deck.Swiped("other"))
	assert.False(t, deck.Swiped("approved"))
}

func TestDeck_IsImmutable(t *testing.T) {
	profile := enfpFirstTimer()
	base := Deck{}
	next, _ := base.Like(profile, newAnimal("x", "ENFP", 5, NeedsBeginner))
	next = next.Pass("y")

	assert.Empty(t, base.Liked)
	assert.Empty(t, base.Passed)
	assert.Len(t, next.Liked, 1)
	assert.Equal(t, []string{"y"}, next.Passed)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, enfpFirstTimer().Validate())

	err := UserProfile{MBTI: "ENF", ActivityLevel: "lazy"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `mbti="ENF"`)
	assert.Contains(t, err.Error(), `activityLevel="lazy"`)

	good := newAnimal("a1", "ENFP", 3, NeedsBeginner)
	assert.NoError(t, good.Validate())

	bad := newAnimal("", "XXXX", 9, "expert")
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is empty")
	assert.Contains(t, err.Error(), "energyLevel=9")
}
