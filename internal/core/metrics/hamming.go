package metrics

import (
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// HammingPayload is the raw payload of the positional metric.
type HammingPayload struct {
	Mismatches int
	Length     int
}

// HammingOption configures the Hamming metric.
type HammingOption func(*Hamming)

// WithPadding enables the pad-to-equal-length policy: the shorter string is
// padded with r before comparison. Without a pad policy, unequal lengths fail
// with ErrLengthMismatch.
func WithPadding(r rune) HammingOption {
	return func(m *Hamming) {
		m.pad = r
		m.padded = true
	}
}

// Hamming counts position-wise character inequalities.
type Hamming struct {
	pad    rune
	padded bool
	pool   *pool.Pool
}

// NewHamming creates a positional Hamming metric. Strict by default: lengths
// must match unless a pad policy is configured.
func NewHamming(p *pool.Pool, opts ...HammingOption) *Hamming {
	m := &Hamming{pool: scratchPool(p)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the registry identifier.
func (m *Hamming) Name() string { return "hamming" }

// Symmetric reports cache-key symmetry.
func (m *Hamming) Symmetric() bool { return false }

// Compute returns score = 1 - mismatches/length over the (possibly padded)
// common length.
func (m *Hamming) Compute(a, b string) (domain.Outcome, error) {
	p := m.pool
	ra := decodeRunes(p, a)
	rb := decodeRunes(p, b)
	defer p.ReleaseRunes(ra, rb)

	if len(ra) != len(rb) {
		if !m.padded {
			return domain.Outcome{}, domain.ErrLengthMismatch
		}
		for len(ra) < len(rb) {
			ra = append(ra, m.pad)
		}
		for len(rb) < len(ra) {
			rb = append(rb, m.pad)
		}
	}

	length := len(ra)
	if length == 0 {
		return domain.Outcome{Score: 1, Raw: HammingPayload{}}, nil
	}

	mismatches := 0
	for i := 0; i < length; i++ {
		if ra[i] != rb[i] {
			mismatches++
		}
	}

	score := 1 - float64(mismatches)/float64(length)
	payload := HammingPayload{Mismatches: mismatches, Length: length}
	return domain.Outcome{Score: score, Raw: payload}, nil
}
