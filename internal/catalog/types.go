// internal/catalog/types.go
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Direction is the way an adopter swiped on an animal.
type Direction string

const (
	DirectionLike Direction = "like"
	DirectionPass Direction = "pass"
)

func (d Direction) Valid() bool {
	return d == DirectionLike || d == DirectionPass
}

// Shelter is the organisation that listed an animal.
type Shelter struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// Swipe is one stored decision. Score is set for likes only.
type Swipe struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	AnimalID  string    `json:"animalId"`
	Direction Direction `json:"direction"`
	Score     *int      `json:"score,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSwipe stamps a swipe with a fresh id.
func NewSwipe(userID, animalID string, direction Direction, score *int, now time.Time) Swipe {
	return Swipe{
		ID:        uuid.New(),
		UserID:    userID,
		AnimalID:  animalID,
		Direction: direction,
		Score:     score,
		CreatedAt: now.UTC(),
	}
}
