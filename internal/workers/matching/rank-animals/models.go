// internal/workers/matching/rank-animals/models.go
package rankanimals

import "pawmatch-workers/pkg/matching"

// Input ranks either the inline Animals or, when empty, the available
// catalog. SwipedIDs are merged with the user's stored swipes.
type Input struct {
	UserID      string                `json:"userId,omitempty"`
	UserProfile *matching.UserProfile `json:"userProfile,omitempty"`
	Animals     []matching.Animal     `json:"animals,omitempty"`
	SwipedIDs   []string              `json:"swipedIds,omitempty"`
	Limit       int                   `json:"limit,omitempty"`
}

type Output struct {
	RankedAnimals []matching.ScoredAnimal `json:"rankedAnimals"`
	AnimalIDs     []string                `json:"animalIds"`
	TotalEligible int                     `json:"totalEligible"`
	Skipped       int                     `json:"skippedInvalid,omitempty"`
}
