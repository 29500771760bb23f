package metrics

import (
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// DamerauLevenshtein extends Levenshtein with adjacent-character
// transpositions as single-cost operations, using a third rolling row to
// reach back two steps.
type DamerauLevenshtein struct {
	pool *pool.Pool
}

// NewDamerauLevenshtein creates a Damerau-Levenshtein metric drawing scratch
// rows from p.
func NewDamerauLevenshtein(p *pool.Pool) *DamerauLevenshtein {
	return &DamerauLevenshtein{pool: scratchPool(p)}
}

// Name returns the registry identifier.
func (m *DamerauLevenshtein) Name() string { return "damerau-levenshtein" }

// Symmetric reports cache-key symmetry.
func (m *DamerauLevenshtein) Symmetric() bool { return false }

// Compute returns score = 1 - distance/max(m,n). A transposition is
// recognized when a[i-1]=b[j-2] and a[i-2]=b[j-1].
func (m *DamerauLevenshtein) Compute(a, b string) (domain.Outcome, error) {
	if a == b {
		return domain.Outcome{Score: 1, Raw: EditPayload{Distance: 0}}, nil
	}

	p := m.pool
	ra := decodeRunes(p, a)
	rb := decodeRunes(p, b)
	defer p.ReleaseRunes(ra, rb)

	if len(ra) == 0 || len(rb) == 0 {
		dist := maxInt(len(ra), len(rb))
		return domain.Outcome{Score: 0, Raw: EditPayload{Distance: dist}}, nil
	}

	long, short := ra, rb
	if len(short) > len(long) {
		long, short = short, long
	}

	rows := p.IntRows(len(short)+1, len(short)+1, len(short)+1)
	prevPrev, prev, curr := rows[0], rows[1], rows[2]
	defer p.ReleaseInts(prevPrev, prev, curr)

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
			if i > 1 && j > 1 && long[i-1] == short[j-2] && long[i-2] == short[j-1] {
				if t := prevPrev[j-2] + 1; t < best {
					best = t
				}
			}
			curr[j] = best
		}
		prevPrev, prev, curr = prev, curr, prevPrev
	}

	dist := prev[len(short)]
	score := 1 - float64(dist)/float64(len(long))
	return domain.Outcome{Score: score, Raw: EditPayload{Distance: dist}}, nil
}
