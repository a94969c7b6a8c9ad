package edgepart

import "github.com/nats-io/nats.go/jetstream"

// Option configures a Runner with optional dependencies.
type Option func(*runnerOptions)

// runnerOptions holds optional Runner configuration.
type runnerOptions struct {
	logger     Logger
	metrics    MetricsCollector
	rng        Rand
	hooks      *Hooks
	manifestKV jetstream.KeyValue
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewRunner
//
// Example:
//
//	runner, err := edgepart.NewRunner(&cfg, edgepart.WithLogger(logging.NewSlogDefault()))
func WithLogger(logger Logger) Option {
	return func(o *runnerOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewRunner
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *runnerOptions) {
		o.metrics = metrics
	}
}

// WithRand sets the random source for Generate when the request has no seed.
//
// Parameters:
//   - rng: Random source, e.g. rand.New(rand.NewPCG(1, 2))
//
// Returns:
//   - Option: Functional option for NewRunner
func WithRand(rng Rand) Option {
	return func(o *runnerOptions) {
		o.rng = rng
	}
}

// WithHooks sets run event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewRunner
func WithHooks(hooks *Hooks) Option {
	return func(o *runnerOptions) {
		o.hooks = hooks
	}
}

// WithManifestKV enables manifest publishing to a JetStream KV bucket.
//
// After the worker files are written, one WorkerManifest per worker is put
// under "{Config.KV.KeyPrefix}.worker-{n}".
//
// Parameters:
//   - kv: Manifest bucket, e.g. from kvutil.Connect
//
// Returns:
//   - Option: Functional option for NewRunner
func WithManifestKV(kv jetstream.KeyValue) Option {
	return func(o *runnerOptions) {
		o.manifestKV = kv
	}
}
