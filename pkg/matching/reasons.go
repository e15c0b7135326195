// pkg/matching/reasons.go
package matching

import "fmt"

const (
	bulletCount      = 3
	longStayDays     = 90
	maxEnergyGapNote = 1
)

// dimensionPhrases holds, per MBTI position, the phrasing used when both
// sides share the first or the second letter of that position.
var dimensionPhrases = [4]map[byte]string{
	{
		'E': "You both recharge in similar ways — social energy and shared adventures",
		'I': "You both recharge in similar ways — quiet evenings and meaningful one-on-one time",
	},
	{
		'S': "You share the same approach to the world — grounded in routine and the present moment",
		'N': "You share the same approach to the world — curious, adaptable, and always exploring",
	},
	{
		'T': "Your bonding style aligns — built on trust and respect rather than constant reassurance",
		'F': "Your bonding style aligns — deep emotional attunement and loyalty",
	},
	{
		'J': "Your lifestyle fits — you both thrive with structure and predictability",
		'P': "Your lifestyle fits — you both love spontaneity and going wherever the day takes you",
	},
}

// EnergyLabel describes a point on the 1–5 energy scale.
func EnergyLabel(energy int) string {
	switch energy {
	case 1:
		return "relaxed"
	case 2:
		return "gentle"
	case 3:
		return "balanced"
	case 4:
		return "active"
	case 5:
		return "high-energy"
	default:
		return "balanced"
	}
}

// experienceAligned reports the diagonal pairs of the experience table.
func experienceAligned(user Experience, needed ExperienceNeeded) bool {
	switch user {
	case ExperienceFirstTimer:
		return needed == NeedsBeginner
	case ExperienceSome:
		return needed == NeedsIntermediate
	case ExperienceVeryExperienced:
		return needed == NeedsExperienced
	default:
		return false
	}
}

// GenerateMatchReasons explains a match in exactly three bullets, plus a
// waiting note for long-stay or special-needs animals. Nil arguments are
// treated as empty values.
func GenerateMatchReasons(profile *UserProfile, animal *Animal) Explanation {
	var p UserProfile
	if profile != nil {
		p = *profile
	}
	var a Animal
	if animal != nil {
		a = *animal
	}

	candidates := mbtiBullets(p.MBTI, a.MBTIType)

	if len(candidates) < bulletCount {
		userEnergy := p.ActivityLevel.Energy()
		if energyDistance(p.ActivityLevel, a.EnergyLevel) <= maxEnergyGapNote {
			candidates = append(candidates, fmt.Sprintf(
				"Your %s lifestyle is a perfect fit for %s's energy level",
				EnergyLabel(userEnergy), a.Name,
			))
		}
	}

	if len(candidates) < bulletCount && experienceAligned(p.Experience, a.ExperienceLevelNeeded) {
		candidates = append(candidates, fmt.Sprintf(
			"%s's care needs align perfectly with your experience level", a.Name,
		))
	}

	for _, generic := range genericBullets(a.Name) {
		if len(candidates) >= bulletCount {
			break
		}
		candidates = append(candidates, generic)
	}

	return Explanation{
		Bullets:     candidates[:bulletCount],
		WaitingNote: waitingNote(a),
	}
}

// mbtiBullets returns one bullet per matching position, in position order.
func mbtiBullets(user, animal MBTI) []string {
	bullets := make([]string, 0, 4)
	if !user.Valid() || !animal.Valid() {
		return bullets
	}
	user, animal = user.Canonical(), animal.Canonical()
	for i := 0; i < 4; i++ {
		if user[i] == animal[i] {
			bullets = append(bullets, dimensionPhrases[i][user[i]])
		}
	}
	return bullets
}

func genericBullets(name string) []string {
	return []string{
		fmt.Sprintf("%s's personality complements yours in a meaningful way", name),
		fmt.Sprintf("You have the lifestyle that %s needs to truly thrive", name),
		fmt.Sprintf("%s has been waiting for someone just like you", name),
	}
}

func waitingNote(a Animal) string {
	if a.DaysInShelter <= longStayDays && !a.SpecialNeeds {
		return ""
	}
	return fmt.Sprintf(
		"%s has been waiting %d days. You might be exactly who they've been hoping for.",
		a.Name, a.DaysInShelter,
	)
}

// NeedsWaitingNote reports whether an animal qualifies for the waiting note.
func NeedsWaitingNote(a Animal) bool {
	return a.DaysInShelter > longStayDays || a.SpecialNeeds
}
