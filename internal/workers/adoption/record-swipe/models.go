// internal/workers/adoption/record-swipe/models.go
package recordswipe

import (
	"time"

	"pawmatch-workers/pkg/matching"
)

type Input struct {
	UserID      string                `json:"userId"`
	AnimalID    string                `json:"animalId"`
	Direction   string                `json:"direction"`
	UserProfile *matching.UserProfile `json:"userProfile,omitempty"`
	Animal      *matching.Animal      `json:"animal,omitempty"`
}

// Output drives the adoption process. NotifyShelter is set on likes for
// animals with a known shelter.
type Output struct {
	SwipeID       string        `json:"swipeId"`
	UserID        string        `json:"userId"`
	AnimalID      string        `json:"animalId"`
	Direction     string        `json:"direction"`
	Liked         bool          `json:"liked"`
	MatchScore    *int          `json:"matchScore,omitempty"`
	MatchTier     matching.Tier `json:"matchTier,omitempty"`
	ShelterID     string        `json:"shelterId,omitempty"`
	NotifyShelter bool          `json:"notifyShelter"`
	SwipedAt      time.Time     `json:"swipedAt"`
}
