// Package registry provides name-based lookup of similarity metrics, letting
// callers select or register algorithms by identifier.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/baditaflorin/go_string_metrics/internal/core/metrics"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
	"github.com/baditaflorin/go_string_metrics/internal/ports"
)

// ErrUnknownMetric indicates a lookup for an identifier no metric was
// registered under.
var ErrUnknownMetric = errors.New("strmetrics: unknown metric")

// Registry maps metric identifiers to algorithm instances.
type Registry struct {
	metrics map[string]ports.Metric
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{metrics: make(map[string]ports.Metric)}
}

// Default creates a registry carrying every built-in metric, all drawing
// scratch from p (nil selects the process-wide pool).
func Default(p *pool.Pool) (*Registry, error) {
	nw, err := metrics.NewNeedlemanWunsch(p)
	if err != nil {
		return nil, err
	}
	sw, err := metrics.NewSmithWaterman(p)
	if err != nil {
		return nil, err
	}
	cos, err := metrics.NewCosine(p)
	if err != nil {
		return nil, err
	}

	r := New()
	for _, m := range []ports.Metric{
		metrics.NewLevenshtein(p),
		metrics.NewDamerauLevenshtein(p),
		nw,
		sw,
		metrics.NewLCS(p),
		metrics.NewDice(p),
		metrics.NewJaccard(p),
		cos,
		metrics.NewHamming(p),
		metrics.NewJaroWinkler(p),
	} {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a metric under its own name, replacing any previous
// registration of the same identifier.
func (r *Registry) Register(m ports.Metric) error {
	if m == nil {
		return errors.New("strmetrics: cannot register nil metric")
	}
	if m.Name() == "" {
		return errors.New("strmetrics: cannot register metric with empty name")
	}
	r.metrics[m.Name()] = m
	return nil
}

// Get returns the metric registered under name.
func (r *Registry) Get(name string) (ports.Metric, error) {
	m, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return m, nil
}

// Names returns the registered identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
