package fuzzgo

import "github.com/hupe1980/fuzzgo/notify"

type options struct {
	workers       int
	chunkSize     int
	maxItemLength int
	logger        *Logger
	metrics       MetricsCollector
	notifier      notify.Notifier
}

// Option configures Finder construction.
type Option func(*options)

// WithWorkers sets the number of scoring workers. The default is hardware
// parallelism capped at 8.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkSize sets the byte capacity of the item store's first chunk.
// Capacity doubles per chunk from there.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithMaxItemLength caps the length of a single item; longer pushes fail
// with ErrItemTooLarge. The default is 1 MiB.
func WithMaxItemLength(n int) Option {
	return func(o *options) {
		o.maxItemLength = n
	}
}

// WithLogger sets the logger. The default discards all output, since a
// finder usually owns the terminal.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithNotifier overrides the wake-up notifier, mainly for tests. The
// default is the platform notifier from the notify package.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}
