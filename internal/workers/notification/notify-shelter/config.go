// internal/workers/notification/notify-shelter/config.go
package notifyshelter

import (
	"time"

	"pawmatch-workers/internal/common/config"
)

type Config struct {
	EmailEnabled     bool
	SMSEnabled       bool
	FromEmail        string
	Timeout          time.Duration
	StrictValidation bool
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		EmailEnabled: true,
		FromEmail:    "matches@pawmatch.sg",
		Timeout:      15 * time.Second,
	}
	if cfg == nil {
		return c
	}
	if d := config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(); d > 0 {
		c.Timeout = d
	}
	c.EmailEnabled = cfg.Notifications.Email.Enabled
	c.SMSEnabled = cfg.Notifications.SMS.Enabled
	if cfg.Notifications.Email.FromEmail != "" {
		c.FromEmail = cfg.Notifications.Email.FromEmail
	}
	c.StrictValidation = cfg.Matching.ValidateInputs
	return c
}
