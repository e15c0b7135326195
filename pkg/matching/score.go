// pkg/matching/score.go
package matching

import "math"

const (
	mbtiPointsPerDimension = 12.5
	energyMaxPoints        = 25.0
	energyPenaltyPerStep   = 6.25
	specialCaseBonus       = 10.0
	specialCaseThreshold   = 60.0
	seniorAge              = 7
	maxScore               = 100

	neutralEnergy = 3
	minEnergy     = 1
	maxEnergy     = 5
)

// experiencePoints is indexed by the adopter's experience, then by what the
// animal needs. Pairs missing from the table score 0.
var experiencePoints = map[Experience]map[ExperienceNeeded]float64{
	ExperienceFirstTimer: {
		NeedsBeginner:     15,
		NeedsIntermediate: 5,
		NeedsExperienced:  0,
	},
	ExperienceSome: {
		NeedsBeginner:     10,
		NeedsIntermediate: 15,
		NeedsExperienced:  5,
	},
	ExperienceVeryExperienced: {
		NeedsBeginner:     8,
		NeedsIntermediate: 12,
		NeedsExperienced:  15,
	},
}

// Breakdown holds the points contributed by each scoring stage before
// rounding. Total is the final rounded and clamped score.
type Breakdown struct {
	MBTI       float64 `json:"mbti"`
	Energy     float64 `json:"energy"`
	Experience float64 `json:"experience"`
	Bonus      float64 `json:"bonus"`
	Total      int     `json:"total"`
}

// ComputeMatchScore returns the 0–100 compatibility score between profile
// and animal. Either argument being nil yields 0.
func ComputeMatchScore(profile *UserProfile, animal *Animal) int {
	return ScoreBreakdown(profile, animal).Total
}

// ScoreBreakdown runs the additive scoring stages. Stage points are kept as
// real numbers and rounded once at the end.
func ScoreBreakdown(profile *UserProfile, animal *Animal) Breakdown {
	if profile == nil || animal == nil {
		return Breakdown{}
	}

	var b Breakdown
	b.MBTI = mbtiPoints(profile.MBTI, animal.MBTIType)
	b.Energy = energyPoints(profile.ActivityLevel, animal.EnergyLevel)
	b.Experience = experienceFit(profile.Experience, animal.ExperienceLevelNeeded)

	running := b.MBTI + b.Energy + b.Experience
	if isHardToPlace(animal) && running > specialCaseThreshold {
		b.Bonus = specialCaseBonus
	}

	total := int(math.Round(running + b.Bonus))
	if total > maxScore {
		total = maxScore
	}
	b.Total = total
	return b
}

// MatchingDimensions counts the positions at which both codes agree, ignoring
// case. Absent or malformed codes match nothing.
func MatchingDimensions(user, animal MBTI) int {
	if !user.Valid() || !animal.Valid() {
		return 0
	}
	user, animal = user.Canonical(), animal.Canonical()
	n := 0
	for i := 0; i < 4; i++ {
		if user[i] == animal[i] {
			n++
		}
	}
	return n
}

func mbtiPoints(user, animal MBTI) float64 {
	return float64(MatchingDimensions(user, animal)) * mbtiPointsPerDimension
}

func energyPoints(level ActivityLevel, animalEnergy int) float64 {
	d := energyDistance(level, animalEnergy)
	return math.Max(0, energyMaxPoints-energyPenaltyPerStep*float64(d))
}

func energyDistance(level ActivityLevel, animalEnergy int) int {
	d := level.Energy() - clampEnergy(animalEnergy)
	if d < 0 {
		d = -d
	}
	return d
}

// clampEnergy pulls out-of-range catalog values back onto the 1–5 scale.
func clampEnergy(e int) int {
	if e < minEnergy {
		return minEnergy
	}
	if e > maxEnergy {
		return maxEnergy
	}
	return e
}

func experienceFit(user Experience, needed ExperienceNeeded) float64 {
	row, ok := experiencePoints[user]
	if !ok {
		return 0
	}
	return row[needed]
}

func isHardToPlace(a *Animal) bool {
	return a.Age >= seniorAge || a.SpecialNeeds
}
