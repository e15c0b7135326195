// internal/workers/notification/notify-shelter/models.go
package notifyshelter

import (
	"fmt"
	"time"

	"pawmatch-workers/internal/catalog"
	"pawmatch-workers/pkg/matching"
)

type Input struct {
	UserID     string           `json:"userId"`
	AnimalID   string           `json:"animalId"`
	Animal     *matching.Animal `json:"animal,omitempty"`
	ShelterID  string           `json:"shelterId,omitempty"`
	MatchScore int              `json:"matchScore"`
	MatchTier  matching.Tier    `json:"matchTier,omitempty"`
}

type Output struct {
	NotificationID string    `json:"notificationId"`
	ShelterID      string    `json:"shelterId"`
	EmailSent      bool      `json:"emailSent"`
	SMSSent        bool      `json:"smsSent"`
	Skipped        []string  `json:"skipped,omitempty"`
	SentAt         time.Time `json:"sentAt"`
}

// message is the rendered notification for one shelter.
type message struct {
	Subject string
	Body    string
	SMS     string
}

func render(shelter *catalog.Shelter, animal *matching.Animal, input *Input) message {
	tier := input.MatchTier
	if tier == "" {
		tier = matching.TierForScore(input.MatchScore)
	}

	m := message{Subject: fmt.Sprintf("Someone liked %s on PawMatch", animal.Name)}
	body := fmt.Sprintf("Hi %s,\n\nAn adopter just liked %s with a %d%% match (%s).\n",
		shelter.Name, animal.Name, input.MatchScore, tier)
	if matching.NeedsWaitingNote(*animal) {
		body += fmt.Sprintf("%s has been with you for %d days.\n", animal.Name, animal.DaysInShelter)
		m.SMS = fmt.Sprintf("PawMatch: %s (%d days in shelter) was just liked, %d%% match.",
			animal.Name, animal.DaysInShelter, input.MatchScore)
	}
	m.Body = body + "\nSign in to PawMatch to follow up.\n"
	return m
}
