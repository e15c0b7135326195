// internal/workers/catalog/search-animals/config.go
package searchanimals

import (
	"time"

	"pawmatch-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: 10 * time.Second}
	if cfg != nil {
		if d := config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(); d > 0 {
			c.Timeout = d
		}
	}
	return c
}
