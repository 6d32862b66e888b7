package script

import "log/slog"

type loadConfig struct {
	maxSteps uint64
	logger   *slog.Logger
}

// Option configures Load.
type Option func(*loadConfig)

// WithMaxSteps bounds the Starlark computation steps of module execution
// and of each function call. Zero means unbounded.
func WithMaxSteps(n uint64) Option {
	return func(c *loadConfig) {
		c.maxSteps = n
	}
}

// WithLogger sets the logger that receives print() output.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}
