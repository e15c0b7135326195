// pkg/matching/sort.go
package matching

import "sort"

// SortAnimalsByScore returns a new slice holding the same animals ordered by
// descending score. Equal scores keep their input order. The input slice is
// not modified.
func SortAnimalsByScore(animals []Animal, profile *UserProfile) []Animal {
	ranked := RankAnimals(animals, profile)
	out := make([]Animal, len(ranked))
	for i, r := range ranked {
		out[i] = r.Animal
	}
	return out
}

// RankAnimals is SortAnimalsByScore with each animal's score attached.
// Every score is computed exactly once.
func RankAnimals(animals []Animal, profile *UserProfile) []ScoredAnimal {
	ranked := make([]ScoredAnimal, len(animals))
	for i := range animals {
		ranked[i] = ScoredAnimal{
			Animal: animals[i],
			Score:  ComputeMatchScore(profile, &animals[i]),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
