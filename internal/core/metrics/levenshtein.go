package metrics

import (
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// EditPayload is the raw payload of the edit-distance family.
type EditPayload struct {
	Distance int
}

// Levenshtein computes the classic edit distance with a rolling two-row DP
// table. The shorter string drives the row dimension, so space is
// O(min(m,n)).
type Levenshtein struct {
	pool *pool.Pool
}

// NewLevenshtein creates a Levenshtein metric drawing scratch rows from p.
func NewLevenshtein(p *pool.Pool) *Levenshtein {
	return &Levenshtein{pool: scratchPool(p)}
}

// Name returns the registry identifier.
func (m *Levenshtein) Name() string { return "levenshtein" }

// Symmetric reports cache-key symmetry. Edit distance is symmetric in value,
// but only the set-overlap family opts into shared cache entries.
func (m *Levenshtein) Symmetric() bool { return false }

// Compute returns score = 1 - distance/max(m,n).
func (m *Levenshtein) Compute(a, b string) (domain.Outcome, error) {
	if a == b {
		return domain.Outcome{Score: 1, Raw: EditPayload{Distance: 0}}, nil
	}

	p := m.pool
	ra := decodeRunes(p, a)
	rb := decodeRunes(p, b)
	defer p.ReleaseRunes(ra, rb)

	// One empty input short-circuits to the other's length.
	if len(ra) == 0 || len(rb) == 0 {
		dist := maxInt(len(ra), len(rb))
		return domain.Outcome{Score: 0, Raw: EditPayload{Distance: dist}}, nil
	}

	// Shorter string spans the columns.
	long, short := ra, rb
	if len(short) > len(long) {
		long, short = short, long
	}

	rows := p.IntRows(len(short)+1, len(short)+1)
	prev, curr := rows[0], rows[1]
	defer p.ReleaseInts(prev, curr)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(long); i++ {
		curr[0] = i
		for j := 1; j <= len(short); j++ {
			cost := 1
			if long[i-1] == short[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}

	dist := prev[len(short)]
	score := 1 - float64(dist)/float64(len(long))
	return domain.Outcome{Score: score, Raw: EditPayload{Distance: dist}}, nil
}
