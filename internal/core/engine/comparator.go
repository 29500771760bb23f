// Package engine wraps a single metric with input coercion, execution-mode
// dispatch, memoization and result-envelope construction. Concrete metrics
// never see batching, caching or modes.
package engine

import (
	"time"

	"github.com/baditaflorin/go_string_metrics/internal/cache"
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/ports"
)

// Mode selects how the comparator walks its input sequences.
type Mode int

const (
	// ModeDefault resolves to single when both sequences hold exactly one
	// element, batch otherwise.
	ModeDefault Mode = iota
	// ModeBatch produces the |A|x|B| cross product in row-major order.
	ModeBatch
	// ModePairwise produces |A| index-aligned results and requires
	// |A| = |B|.
	ModePairwise

	modeUnset Mode = -1
)

// ParseMode maps a mode identifier to a Mode. Unrecognized identifiers fail
// with ErrInvalidMode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "default":
		return ModeDefault, nil
	case "batch":
		return ModeBatch, nil
	case "pairwise":
		return ModePairwise, nil
	default:
		return ModeDefault, domain.ErrInvalidMode
	}
}

// String returns the mode identifier.
func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeBatch:
		return "batch"
	case ModePairwise:
		return "pairwise"
	default:
		return "invalid"
	}
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithCache injects the memoization table consulted before every metric
// invocation. Without it the comparator always computes.
func WithCache(c *cache.Memo) Option {
	return func(cmp *Comparator) { cmp.cache = c }
}

// WithLogger sets a structured logger for execution tracing.
func WithLogger(l ports.Logger) Option {
	return func(cmp *Comparator) { cmp.logger = l }
}

// WithTiming enables per-pair timing capture on the result envelopes.
func WithTiming() Option {
	return func(cmp *Comparator) { cmp.timing = true }
}

// WithModeOverride forces Run(ModeDefault) to resolve to the given mode.
func WithModeOverride(m Mode) Option {
	return func(cmp *Comparator) { cmp.override = m }
}

// Comparator executes one metric across two coerced input sequences. Each Run
// discards the previous results; a Comparator is not safe for concurrent use.
type Comparator struct {
	metric   ports.Metric
	a        []string
	b        []string
	cache    *cache.Memo
	logger   ports.Logger
	timing   bool
	override Mode

	results []domain.Result
	ran     bool
}

// New constructs a comparator for one metric and two inputs. Both inputs are
// coerced to ordered sequences; the engine assumes non-empty sequences, the
// emptiness guard belongs to the orchestration layer.
func New(metric ports.Metric, a, b domain.Input, opts ...Option) *Comparator {
	cmp := &Comparator{
		metric:   metric,
		a:        a.Values(),
		b:        b.Values(),
		override: modeUnset,
	}
	for _, opt := range opts {
		opt(cmp)
	}
	if cmp.logger == nil {
		cmp.logger = nopLogger{}
	}
	return cmp
}

// IsSingle reports whether both sequences hold exactly one element.
func (c *Comparator) IsSingle() bool {
	return len(c.a) == 1 && len(c.b) == 1
}

// IsBatch reports whether either sequence holds more than one element.
func (c *Comparator) IsBatch() bool {
	return !c.IsSingle()
}

// IsPairwise reports whether the sequences can be compared index-aligned.
func (c *Comparator) IsPairwise() bool {
	return len(c.a) == len(c.b)
}

// Run executes the comparison in the given mode. Any previous results are
// discarded before computing; results never accumulate across calls.
func (c *Comparator) Run(mode Mode) error {
	c.results = nil
	c.ran = false

	resolved, err := c.resolve(mode)
	if err != nil {
		c.logger.Error("Invalid execution mode", "metric", c.metric.Name(), "mode", int(mode))
		return err
	}

	c.logger.Debug("Starting comparison run",
		"metric", c.metric.Name(),
		"mode", resolved.String(),
		"len_a", len(c.a),
		"len_b", len(c.b),
	)

	var results []domain.Result
	switch resolved {
	case ModePairwise:
		if len(c.a) != len(c.b) {
			c.logger.Error("Pairwise cardinality mismatch", "len_a", len(c.a), "len_b", len(c.b))
			return domain.ErrLengthMismatch
		}
		results = make([]domain.Result, 0, len(c.a))
		for i := range c.a {
			r, err := c.evaluate(c.a[i], c.b[i])
			if err != nil {
				return err
			}
			results = append(results, r)
		}
	default: // batch covers single: one A, one B, one result
		results = make([]domain.Result, 0, len(c.a)*len(c.b))
		for _, src := range c.a {
			for _, tgt := range c.b {
				r, err := c.evaluate(src, tgt)
				if err != nil {
					return err
				}
				results = append(results, r)
			}
		}
	}

	c.results = results
	c.ran = true
	c.logger.Debug("Comparison run complete", "metric", c.metric.Name(), "results", len(results))
	return nil
}

// Results returns the results of the last successful Run, in the mode's fixed
// order. Fails with ErrNotRun before execution.
func (c *Comparator) Results() ([]domain.Result, error) {
	if !c.ran {
		return nil, domain.ErrNotRun
	}
	return c.results, nil
}

// resolve maps the requested mode to the effective one, honoring the
// override.
func (c *Comparator) resolve(mode Mode) (Mode, error) {
	if mode == ModeDefault && c.override != modeUnset {
		mode = c.override
	}
	switch mode {
	case ModeDefault:
		return ModeBatch, nil // single is the 1x1 batch
	case ModeBatch, ModePairwise:
		return mode, nil
	default:
		return mode, domain.ErrInvalidMode
	}
}

// evaluate computes one pair, consulting the cache before invoking the
// metric and storing the raw outcome after.
func (c *Comparator) evaluate(src, tgt string) (domain.Result, error) {
	var start time.Time
	if c.timing {
		start = time.Now()
	}

	out, err := c.outcome(src, tgt)
	if err != nil {
		return domain.Result{}, err
	}

	r := domain.Result{
		Metric: c.metric.Name(),
		Source: src,
		Target: tgt,
		Score:  domain.Clamp01(out.Score),
		Raw:    out.Raw,
	}
	if c.timing {
		r.Elapsed = time.Since(start)
	}
	return r, nil
}

func (c *Comparator) outcome(src, tgt string) (domain.Outcome, error) {
	if c.cache == nil {
		return c.metric.Compute(src, tgt)
	}
	key := cache.Key(c.metric.Name(), c.metric.Symmetric(), src, tgt)
	if out, ok := c.cache.Get(key); ok {
		return out, nil
	}
	out, err := c.metric.Compute(src, tgt)
	if err != nil {
		return domain.Outcome{}, err
	}
	c.cache.Set(key, out)
	return out, nil
}

// nopLogger discards all log events.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
