// internal/workers/matching/generate-match-reasons/models.go
package generatematchreasons

import "pawmatch-workers/pkg/matching"

type Input struct {
	UserID      string                `json:"userId,omitempty"`
	UserProfile *matching.UserProfile `json:"userProfile,omitempty"`
	AnimalID    string                `json:"animalId,omitempty"`
	Animal      *matching.Animal      `json:"animal,omitempty"`
}

// Output is everything the match modal shows.
type Output struct {
	AnimalID        string        `json:"animalId"`
	AnimalName      string        `json:"animalName"`
	MatchReasons    []string      `json:"matchReasons"`
	WaitingNote     string        `json:"waitingNote,omitempty"`
	HasWaitingNote  bool          `json:"hasWaitingNote"`
	UserMBTILabel   string        `json:"userMbtiLabel"`
	AnimalMBTILabel string        `json:"animalMbtiLabel"`
	MatchScore      int           `json:"matchScore"`
	MatchTier       matching.Tier `json:"matchTier"`
}
