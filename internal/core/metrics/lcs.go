package metrics

import (
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// LCSPayload is the raw payload of the longest-common-subsequence metric.
type LCSPayload struct {
	Length int
}

// LCS computes the longest common subsequence length with two rolling rows,
// comparing character codes to avoid per-cell allocation.
type LCS struct {
	pool *pool.Pool
}

// NewLCS creates a longest-common-subsequence metric.
func NewLCS(p *pool.Pool) *LCS {
	return &LCS{pool: scratchPool(p)}
}

// Name returns the registry identifier.
func (m *LCS) Name() string { return "lcs" }

// Symmetric reports cache-key symmetry.
func (m *LCS) Symmetric() bool { return false }

// Compute returns score = lcsLength/max(m,n).
func (m *LCS) Compute(a, b string) (domain.Outcome, error) {
	if a == b {
		return domain.Outcome{Score: 1, Raw: LCSPayload{Length: len([]rune(a))}}, nil
	}

	p := m.pool
	ra := decodeRunes(p, a)
	rb := decodeRunes(p, b)
	defer p.ReleaseRunes(ra, rb)

	if len(ra) == 0 || len(rb) == 0 {
		return domain.Outcome{Score: 0, Raw: LCSPayload{Length: 0}}, nil
	}

	long, short := ra, rb
	if len(short) > len(long) {
		long, short = short, long
	}

	rows := p.IntRows(len(short)+1, len(short)+1)
	prev, curr := rows[0], rows[1]
	defer p.ReleaseInts(prev, curr)

	for i := 1; i <= len(long); i++ {
		curr[0] = 0
		for j := 1; j <= len(short); j++ {
			if long[i-1] == short[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	length := prev[len(short)]
	score := float64(length) / float64(len(long))
	return domain.Outcome{Score: score, Raw: LCSPayload{Length: length}}, nil
}
