// pkg/matching/labels_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMBTILabel(t *testing.T) {
	assert.Equal(t, "The Campaigner", MBTILabel("ENFP"))
	assert.Equal(t, "The Architect", MBTILabel("INTJ"))
	assert.Equal(t, "The Unique One", MBTILabel("XXXX"))
	assert.Equal(t, "The Unique One", MBTILabel(""))
	assert.Equal(t, "The Unique One", MBTILabel("enfp"))
	assert.Equal(t, "The Logistician", MBTI("ISTJ").Label())
	assert.Len(t, mbtiLabels, 16)
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierStrong},
		{80, TierStrong},
		{79, TierGood},
		{60, TierGood},
		{59, TierLow},
		{0, TierLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %d", tt.score)
	}
}
