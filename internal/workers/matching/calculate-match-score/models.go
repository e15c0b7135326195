// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import "pawmatch-workers/pkg/matching"

// Input carries the profile and animal inline or by id. Inline values win.
type Input struct {
	UserID      string                `json:"userId,omitempty"`
	UserProfile *matching.UserProfile `json:"userProfile,omitempty"`
	AnimalID    string                `json:"animalId,omitempty"`
	Animal      *matching.Animal      `json:"animal,omitempty"`
}

type Output struct {
	AnimalID       string             `json:"animalId"`
	MatchScore     int                `json:"matchScore"`
	MatchTier      matching.Tier      `json:"matchTier"`
	ScoreBreakdown matching.Breakdown `json:"scoreBreakdown"`
}
