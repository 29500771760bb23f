package strmetrics

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_string_metrics/internal/adapters/logger"
	"github.com/baditaflorin/go_string_metrics/internal/cache"
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/core/engine"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
	"github.com/baditaflorin/go_string_metrics/internal/ports"
	"github.com/baditaflorin/go_string_metrics/internal/registry"
)

// Result is the per-pair outcome envelope.
type Result = domain.Result

// Outcome is the raw unit of computation a metric produces for one pair.
type Outcome = domain.Outcome

// Metric is the contract every similarity algorithm implements; custom
// metrics registered on an Engine satisfy this interface.
type Metric = ports.Metric

// Input is a scalar text or ordered sequence operand.
type Input = domain.Input

// Mode selects the execution mode of a run.
type Mode = engine.Mode

// Execution modes.
const (
	ModeDefault  = engine.ModeDefault
	ModeBatch    = engine.ModeBatch
	ModePairwise = engine.ModePairwise
)

// Error taxonomy of the engine.
var (
	ErrInvalidMode    = domain.ErrInvalidMode
	ErrLengthMismatch = domain.ErrLengthMismatch
	ErrNotRun         = domain.ErrNotRun
	ErrUnknownMetric  = registry.ErrUnknownMetric
)

// ParseMode maps a mode identifier ("", "default", "batch", "pairwise") to a
// Mode. Unrecognized identifiers fail with ErrInvalidMode.
func ParseMode(s string) (Mode, error) { return engine.ParseMode(s) }

// Text wraps a single scalar text as an Input.
func Text(s string) Input { return domain.Text(s) }

// Sequence wraps an ordered sequence of texts as an Input.
func Sequence(values ...string) Input { return domain.Sequence(values...) }

// Engine resolves metrics by identifier and executes comparisons against a
// shared scratch pool and memoization cache. An Engine is not safe for
// concurrent use without external synchronization.
type Engine struct {
	registry *registry.Registry
	pool     *pool.Pool
	cache    *cache.Memo
	logger   ports.Logger
	timing   bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*engineConfig)

type engineConfig struct {
	Pool   *pool.Pool
	Cache  *cache.Memo
	Logger ports.Logger
	Timing bool
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *engineConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPool injects an isolated scratch pool instead of the process-wide one.
func WithPool(p *pool.Pool) Option {
	return func(cfg *engineConfig) {
		cfg.Pool = p
	}
}

// WithCache injects an isolated memoization cache instead of the process-wide
// one.
func WithCache(c *cache.Memo) Option {
	return func(cfg *engineConfig) {
		cfg.Cache = c
	}
}

// WithTiming enables per-pair timing capture on result envelopes.
func WithTiming() Option {
	return func(cfg *engineConfig) {
		cfg.Timing = true
	}
}

// New creates an Engine with every built-in metric registered. If no logger
// is provided, a default logger is created; if no pool or cache is injected,
// the process-wide singletons are used.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{
		Pool:  pool.Default,
		Cache: cache.Default,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	reg, err := registry.Default(cfg.Pool)
	if err != nil {
		return nil, err
	}

	return &Engine{
		registry: reg,
		pool:     cfg.Pool,
		cache:    cfg.Cache,
		logger:   cfg.Logger,
		timing:   cfg.Timing,
	}, nil
}

// Register adds a custom metric to the engine's registry, replacing any
// previous registration under the same name.
func (e *Engine) Register(m ports.Metric) error {
	return e.registry.Register(m)
}

// Metrics returns the registered metric identifiers in sorted order.
func (e *Engine) Metrics() []string {
	return e.registry.Names()
}

// Comparator constructs a comparator for the named metric over two inputs,
// wired to the engine's cache, logger and timing configuration.
func (e *Engine) Comparator(metric string, a, b Input) (*engine.Comparator, error) {
	m, err := e.registry.Get(metric)
	if err != nil {
		e.logger.Error("Metric lookup failed", "metric", metric, "error", err)
		return nil, err
	}
	opts := []engine.Option{
		engine.WithCache(e.cache),
		engine.WithLogger(e.logger),
	}
	if e.timing {
		opts = append(opts, engine.WithTiming())
	}
	return engine.New(m, a, b, opts...), nil
}

// Compare computes the score for a single pair of texts. The context is
// consulted once before computing; cancellation is not supported
// mid-computation since every metric is a deterministic pure function.
func (e *Engine) Compare(ctx context.Context, metric, source, target string) (Result, error) {
	results, err := e.run(ctx, metric, Text(source), Text(target), ModeDefault)
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

// Batch computes the full |A|x|B| cross product in row-major order, outer
// loop over sources.
func (e *Engine) Batch(ctx context.Context, metric string, sources, targets []string) ([]Result, error) {
	return e.run(ctx, metric, Sequence(sources...), Sequence(targets...), ModeBatch)
}

// Pairwise computes index-aligned results and requires equal cardinality.
func (e *Engine) Pairwise(ctx context.Context, metric string, sources, targets []string) ([]Result, error) {
	return e.run(ctx, metric, Sequence(sources...), Sequence(targets...), ModePairwise)
}

// Stream is the asynchronous mirror of Batch/Pairwise: results arrive on the
// returned channel in the same order the synchronous run would produce them.
func (e *Engine) Stream(ctx context.Context, metric string, a, b Input, mode Mode) (<-chan engine.Item, error) {
	cmp, err := e.Comparator(metric, a, b)
	if err != nil {
		return nil, err
	}
	return cmp.Stream(ctx, mode)
}

func (e *Engine) run(ctx context.Context, metric string, a, b Input, mode Mode) ([]Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	cmp, err := e.Comparator(metric, a, b)
	if err != nil {
		return nil, err
	}
	if err := cmp.Run(mode); err != nil {
		return nil, err
	}
	return cmp.Results()
}

// ClearCache removes every memoized outcome. This is the only removal path;
// long-running processes should call it periodically.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// ResetPool drops the scratch-buffer free lists.
func (e *Engine) ResetPool() {
	e.pool.Reset()
}

// CacheStats returns hit/miss counters of the memoization cache.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// PoolStats returns acquire/release counters of the scratch pool.
func (e *Engine) PoolStats() pool.Stats {
	return e.pool.Stats()
}
