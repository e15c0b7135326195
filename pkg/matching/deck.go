// pkg/matching/deck.go
package matching

// FilterEligible drops animals the adopter cannot take home. HDB flats only
// accept HDB-approved animals; other living spaces accept everything.
func FilterEligible(animals []Animal, profile *UserProfile) []Animal {
	out := make([]Animal, 0, len(animals))
	for _, a := range animals {
		if profile != nil && profile.LivingSpace == LivingHDB && !a.HDBApproved {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Deck is the swipe history of one adopter. It is a value: Like and Pass
// return an updated copy and leave the receiver alone.
type Deck struct {
	Liked  []ScoredAnimal `json:"liked"`
	Passed []string       `json:"passed"`
}

// Swiped reports whether id was already liked or passed.
func (d Deck) Swiped(id string) bool {
	for _, l := range d.Liked {
		if l.ID == id {
			return true
		}
	}
	for _, p := range d.Passed {
		if p == id {
			return true
		}
	}
	return false
}

// Available returns the eligible, ranked part of catalog that has not been
// swiped yet.
func (d Deck) Available(catalog []Animal, profile *UserProfile) []ScoredAnimal {
	eligible := FilterEligible(catalog, profile)
	fresh := eligible[:0]
	for _, a := range eligible {
		if !d.Swiped(a.ID) {
			fresh = append(fresh, a)
		}
	}
	return RankAnimals(fresh, profile)
}

// Like records a like with the score at the time of the swipe.
func (d Deck) Like(profile *UserProfile, animal Animal) (Deck, ScoredAnimal) {
	scored := ScoredAnimal{Animal: animal, Score: ComputeMatchScore(profile, &animal)}
	next := Deck{
		Liked:  append(append(make([]ScoredAnimal, 0, len(d.Liked)+1), d.Liked...), scored),
		Passed: d.Passed,
	}
	return next, scored
}

func (d Deck) Pass(id string) Deck {
	return Deck{
		Liked:  d.Liked,
		Passed: append(append(make([]string, 0, len(d.Passed)+1), d.Passed...), id),
	}
}
