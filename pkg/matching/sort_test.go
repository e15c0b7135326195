// pkg/matching/sort_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortAnimalsByScore(t *testing.T) {
	profile := enfpFirstTimer()
	animals := []Animal{
		newAnimal("a", "ISTJ", 1, NeedsExperienced),
		newAnimal("b", "ENFP", 5, NeedsBeginner),
		newAnimal("c", "ENFJ", 4, NeedsIntermediate),
		newAnimal("d", "INFP", 5, NeedsBeginner),
	}
	original := append([]Animal(nil), animals...)

	sorted := SortAnimalsByScore(animals, profile)

	require.Len(t, sorted, len(animals))
	assert.Equal(t, original, animals, "input must not be reordered")
	assert.ElementsMatch(t, animals, sorted)
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t,
			ComputeMatchScore(profile, &sorted[i-1]),
			ComputeMatchScore(profile, &sorted[i]),
		)
	}
	assert.Equal(t, "b", sorted[0].ID)
	assert.Equal(t, "a", sorted[len(sorted)-1].ID)
}

func TestSortAnimalsByScore_StableTies(t *testing.T) {
	profile := enfpFirstTimer()
	animals := []Animal{
		newAnimal("first", "ENFP", 5, NeedsBeginner),
		newAnimal("second", "ENFP", 5, NeedsBeginner),
		newAnimal("third", "ENFP", 5, NeedsBeginner),
	}

	sorted := SortAnimalsByScore(animals, profile)
	ids := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestSortAnimalsByScore_Empty(t *testing.T) {
	assert.Empty(t, SortAnimalsByScore(nil, enfpFirstTimer()))
}

func TestRankAnimals_AttachesScores(t *testing.T) {
	profile := enfpFirstTimer()
	ranked := RankAnimals([]Animal{
		newAnimal("low", "ISTJ", 1, NeedsExperienced),
		newAnimal("high", "ENFP", 5, NeedsBeginner),
	}, profile)

	require.Len(t, ranked, 2)
	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, 90, ranked[0].Score)
	assert.Equal(t, 0, ranked[1].Score)
}
