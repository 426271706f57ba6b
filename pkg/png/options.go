package png

import (
	"io"
	"log/slog"
	"time"
)

type config struct {
	logger   *slog.Logger
	strict   bool
	now      func() time.Time
	software string
}

func defaultConfig() config {
	return config{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		software: DefaultSoftware,
	}
}

// Option configures a Reader or a Writer.
type Option func(*config)

// WithLogger sets the logger receiving parse and compose diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrict makes Writer.Append reject frames that fail to decode instead
// of silently dropping them.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithClock overrides the clock used for the creation time text chunk.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSoftware overrides the producer identifier written by the Writer.
func WithSoftware(software string) Option {
	return func(c *config) {
		c.software = software
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
