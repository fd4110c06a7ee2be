package scheduler

import "go.uber.org/zap"

type options struct {
	logger  *zap.SugaredLogger
	verbose bool
	name    string
}

// Option configures a Manager, a Pool or a Task.
type Option func(*options)

// WithLogger sets the parent logger. Defaults to zap.S().Named("scheduler").
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithVerbose enables debug logging of task creation and timings.
func WithVerbose(v bool) Option {
	return func(o *options) {
		o.verbose = v
	}
}

// WithName names the manager in logs, or describes a task.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.S().Named("scheduler")
	}
	return o
}
