// Package metrics contains the concrete similarity algorithms. Every metric
// is a pure function of its two inputs and options: scratch state is acquired
// from the pool and released on every exit path, never retained between
// invocations. Metrics compute exactly one pair; batching, memoization and
// mode dispatch belong to the engine.
package metrics

import (
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// scratchPool resolves the injected pool, falling back to the process-wide
// default.
func scratchPool(p *pool.Pool) *pool.Pool {
	if p == nil {
		return pool.Default
	}
	return p
}

// decodeRunes decodes s into a pooled rune buffer. len(s) in bytes is an
// upper bound on the rune count, so the buffer never regrows.
func decodeRunes(p *pool.Pool, s string) []rune {
	buf := p.Runes(len(s))
	for _, r := range s {
		buf = append(buf, r)
	}
	return buf
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
