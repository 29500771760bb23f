package metrics

import (
	"errors"
	"math"
	"strings"

	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// CosinePayload is the raw payload of the term-frequency cosine metric.
type CosinePayload struct {
	Dot        float64
	MagnitudeA float64
	MagnitudeB float64
}

// CosineOption configures the cosine metric.
type CosineOption func(*Cosine)

// WithDelimiter sets the term delimiter used to split inputs into terms.
func WithDelimiter(d string) CosineOption {
	return func(m *Cosine) { m.delimiter = d }
}

// Cosine compares term-frequency vectors built over a configurable delimiter.
// Dot product and magnitudes are computed per side without materializing a
// union-of-terms set.
type Cosine struct {
	delimiter string
	pool      *pool.Pool
}

// NewCosine creates a term-frequency cosine metric. The default delimiter is
// a single space.
func NewCosine(p *pool.Pool, opts ...CosineOption) (*Cosine, error) {
	m := &Cosine{delimiter: " ", pool: scratchPool(p)}
	for _, opt := range opts {
		opt(m)
	}
	if m.delimiter == "" {
		return nil, errors.New("delimiter must not be empty")
	}
	return m, nil
}

// Name returns the registry identifier.
func (m *Cosine) Name() string { return "cosine" }

// Symmetric reports cache-key symmetry; both argument orders share one cache
// entry.
func (m *Cosine) Symmetric() bool { return true }

// Compute returns the cosine of the two term-frequency vectors, 0 if either
// magnitude is 0.
func (m *Cosine) Compute(a, b string) (domain.Outcome, error) {
	p := m.pool
	tfA := p.TermFreq()
	tfB := p.TermFreq()
	defer p.ReleaseTermFreq(tfA, tfB)

	for _, t := range strings.Split(a, m.delimiter) {
		tfA[t]++
	}
	for _, t := range strings.Split(b, m.delimiter) {
		tfB[t]++
	}

	var sumA, sumB float64
	for _, n := range tfA {
		sumA += float64(n) * float64(n)
	}
	for _, n := range tfB {
		sumB += float64(n) * float64(n)
	}
	magA := math.Sqrt(sumA)
	magB := math.Sqrt(sumB)

	small, large := tfA, tfB
	if len(small) > len(large) {
		small, large = large, small
	}
	var dot float64
	for t, n := range small {
		if k, ok := large[t]; ok {
			dot += float64(n) * float64(k)
		}
	}

	payload := CosinePayload{Dot: dot, MagnitudeA: magA, MagnitudeB: magB}
	if magA == 0 || magB == 0 {
		return domain.Outcome{Score: 0, Raw: payload}, nil
	}
	// sqrt(sumA*sumB) rather than magA*magB: identical vectors then divide
	// exactly, so identity scores 1.0 instead of 1-ulp.
	score := dot / math.Sqrt(sumA*sumB)
	return domain.Outcome{Score: score, Raw: payload}, nil
}
