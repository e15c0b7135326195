// pkg/matching/tier.go
package matching

// Tier buckets a score for display.
type Tier string

const (
	TierStrong Tier = "strong"
	TierGood   Tier = "good"
	TierLow    Tier = "low"
)

const (
	strongTierMin = 80
	goodTierMin   = 60
)

func TierForScore(score int) Tier {
	switch {
	case score >= strongTierMin:
		return TierStrong
	case score >= goodTierMin:
		return TierGood
	default:
		return TierLow
	}
}
