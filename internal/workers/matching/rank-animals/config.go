// internal/workers/matching/rank-animals/config.go
package rankanimals

import (
	"time"

	"pawmatch-workers/internal/common/config"
)

type Config struct {
	Timeout          time.Duration
	MaxRankedItems   int
	StrictValidation bool
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: 15 * time.Second, MaxRankedItems: 50}
	if cfg != nil {
		if d := config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(); d > 0 {
			c.Timeout = d
		}
		if cfg.Matching.MaxRankedItems > 0 {
			c.MaxRankedItems = cfg.Matching.MaxRankedItems
		}
		c.StrictValidation = cfg.Matching.ValidateInputs
	}
	return c
}
