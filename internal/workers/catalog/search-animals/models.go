// internal/workers/catalog/search-animals/models.go
package searchanimals

import "pawmatch-workers/pkg/matching"

// Input is a catalog query. When UserProfile is present every hit also
// carries its match score, and HDB households only see HDB-approved animals.
type Input struct {
	Query       string                `json:"query,omitempty"`
	Species     string                `json:"species,omitempty"`
	Breed       string                `json:"breed,omitempty"`
	HDBOnly     bool                  `json:"hdbOnly,omitempty"`
	From        int                   `json:"from,omitempty"`
	Size        int                   `json:"size,omitempty"`
	UserProfile *matching.UserProfile `json:"userProfile,omitempty"`
}

type Result struct {
	AnimalID   string          `json:"animalId"`
	Relevance  float64         `json:"relevance"`
	MatchScore *int            `json:"matchScore,omitempty"`
	Animal     matching.Animal `json:"animal"`
}

type Output struct {
	TotalHits int      `json:"totalHits"`
	AnimalIDs []string `json:"animalIds"`
	Results   []Result `json:"results"`
}
