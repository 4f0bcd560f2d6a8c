package aggregate

import (
	"go.uber.org/zap"
)

type Config struct {
	workers int
	logger  *zap.Logger
}

// NewConfig returns an aggregation config. workers <= 0 uses one worker per
// CPU and a nil logger discards everything.
func NewConfig(workers int, logger *zap.Logger) *Config {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Config{
		workers: workers,
		logger:  logger,
	}
}

func (c *Config) Workers() int {
	return c.workers
}

func (c *Config) Logger() *zap.Logger {
	return c.logger
}
