package dispatch

import (
	"github.com/rs/zerolog"

	"signalkit/pkg/signal"
)

// config holds everything a Dispatcher can be constructed with. Defaults:
// a no-op logger, every owner considered alive, no interceptors.
type config struct {
	logger       zerolog.Logger
	alive        signal.LivenessFunc
	interceptors []Interceptor
}

// Option configures a Dispatcher at construction time.
type Option func(*config)

func defaultConfig() *config {
	return &config{logger: zerolog.Nop()}
}

// WithLogger sets the logger dispatch events are traced to at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithLiveness installs the predicate consulted before each listener fires.
// Owners it reports dead are skipped and their bindings purged.
func WithLiveness(alive signal.LivenessFunc) Option {
	return func(c *config) {
		c.alive = alive
	}
}

// WithInterceptor appends interceptors to the invoke chain. They wrap the
// fan-out in the order given, first interceptor outermost.
func WithInterceptor(is ...Interceptor) Option {
	return func(c *config) {
		c.interceptors = append(c.interceptors, is...)
	}
}
