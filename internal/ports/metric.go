package ports

import "github.com/baditaflorin/go_string_metrics/internal/core/domain"

// Metric is the contract every similarity algorithm implements. A metric
// computes exactly one pair; batching, caching, mode dispatch and score
// clamping are handled by the engine wrapping it.
type Metric interface {
	// Name returns the stable identifier used for registry lookup and
	// cache keys.
	Name() string

	// Symmetric reports whether Compute(a, b) and Compute(b, a) are
	// guaranteed to produce the same outcome. Symmetric metrics share one
	// cache entry for both argument orders.
	Symmetric() bool

	// Compute produces the raw outcome for a single pair of strings.
	Compute(a, b string) (domain.Outcome, error)
}
