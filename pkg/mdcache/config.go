package mdcache

// config.go defines Cache's internal configuration object and the
// functional options that can be passed to Create, in the same shape as
// the arena-cache ancestor this package descends from: all fields get
// sensible defaults, options only capture pointers to external objects
// (a registry, a logger, a clock), and the struct itself never escapes the
// package.
//
// © 2025 mdcache authors. MIT License.

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/voskan/mdcache/internal/primesize"
)

type config struct {
	sizeHint int
	logger   *zap.Logger
	registry *prometheus.Registry
	clock    func() time.Time
}

// Option configures a Cache at Create time.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		sizeHint: primesize.Default,
		logger:   zap.NewNop(),
		clock:    time.Now,
	}
}

// WithSizeHint overrides the slot-table size hint (rounded up to the next
// prime). Values <= 0 are ignored in favour of primesize.Default.
func WithSizeHint(hint int) Option {
	return func(c *config) {
		if hint > 0 {
			c.sizeHint = hint
		}
	}
}

// WithLogger plugs an external zap.Logger. The cache never logs a plain hit
// or miss; it emits warnings for failed load and flush callbacks and an
// error for each fatal invariant violation.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection, labelled by entry
// kind. Passing nil (the default) disables metrics and the hot path does
// not pay for metric updates.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithClock overrides the time source stored on the Cache. No operation or
// diagnostic reads it: the cache's counters and Debug report carry no
// timestamps.
func WithClock(fn func() time.Time) Option {
	return func(c *config) {
		if fn != nil {
			c.clock = fn
		}
	}
}
