// internal/workers/matching/calculate-match-score/config.go
package calculatematchscore

import (
	"time"

	"pawmatch-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// StrictValidation rejects malformed profiles and animals instead of
	// scoring them with neutral defaults.
	StrictValidation bool
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: 10 * time.Second}
	if cfg != nil {
		if d := config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(); d > 0 {
			c.Timeout = d
		}
		c.StrictValidation = cfg.Matching.ValidateInputs
	}
	return c
}
