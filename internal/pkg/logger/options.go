package logger

// Option adjusts a Config before the logger is built.
type Option func(*Config)

// WithLevel sets the minimum level.
func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

// WithFormat selects json or console encoding.
func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

// WithOutput selects console, stderr, file or both.
func WithOutput(output string) Option {
	return func(c *Config) { c.Output = output }
}

// WithFile writes to filename with the default rotation settings.
func WithFile(filename string) Option {
	return func(c *Config) { c.File.Filename = filename }
}

// WithCaller toggles caller annotation.
func WithCaller(enabled bool) Option {
	return func(c *Config) { c.EnableCaller = enabled }
}

// NewWithOptions builds a logger from a copy of base (DefaultConfig when nil)
// with opts applied. base itself is left untouched.
func NewWithOptions(base *Config, opts ...Option) (*Logger, error) {
	if base == nil {
		base = DefaultConfig()
	}
	cfg := *base
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(&cfg)
}

// CLI builds a human-readable stderr logger for command-line tools, keeping
// stdout free for program output. Only the level is taken from base.
func CLI(base *Config) (*Logger, error) {
	return NewWithOptions(base,
		WithFormat("console"),
		WithOutput("stderr"),
		WithCaller(false),
		func(c *Config) { c.EnableStacktrace = false },
	)
}
