package mvcc

import (
	"log/slog"
	"os"
)

// config mirrors the teacher's functional-options struct: every knob the
// database exposes lives here, defaulted in defaultConfig and overridden
// by Option values passed to NewDatabase.
type config struct {
	defaultIsolation IsolationLevel
	logger           *slog.Logger
}

func defaultConfig() config {
	return config{
		defaultIsolation: Serializable,
		logger:           slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

// Option configures a Database at construction time.
type Option func(*config)

// WithDefaultIsolation sets the isolation level applied to every
// subsequent Begin. It can also be changed later via
// Database.SetDefaultIsolation.
func WithDefaultIsolation(level IsolationLevel) Option {
	return func(c *config) { c.defaultIsolation = level }
}

// WithLogger installs a custom slog.Logger for commit/abort/conflict
// events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
