// internal/workers/recommendation/recommend-tech-stack/config.go
package recommendtechstack

import (
	"time"

	"stack-advisor/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	MaxJobsActive int
	CacheEnabled  bool
}

func LoadConfig(cfg *config.Config) *Config {
	w := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:       config.GetDuration(w.Timeout),
		MaxJobsActive: w.MaxJobsActive,
		CacheEnabled:  cfg.Cache.Enabled,
	}
}
