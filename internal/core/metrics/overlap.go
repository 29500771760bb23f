package metrics

import (
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// OverlapPayload is the raw payload of the set-overlap family.
type OverlapPayload struct {
	Intersection int
	SizeA        int
	SizeB        int
}

// Jaccard computes character-set intersection over union.
type Jaccard struct {
	pool *pool.Pool
}

// NewJaccard creates a Jaccard character-set metric.
func NewJaccard(p *pool.Pool) *Jaccard {
	return &Jaccard{pool: scratchPool(p)}
}

// Name returns the registry identifier.
func (m *Jaccard) Name() string { return "jaccard" }

// Symmetric reports cache-key symmetry; both argument orders share one cache
// entry.
func (m *Jaccard) Symmetric() bool { return true }

// Compute returns score = |A∩B| / |A∪B|. An empty union scores 1 by
// convention.
func (m *Jaccard) Compute(a, b string) (domain.Outcome, error) {
	p := m.pool
	setA := p.RuneSet()
	setB := p.RuneSet()
	defer p.ReleaseRuneSet(setA, setB)

	for _, r := range a {
		setA[r] = struct{}{}
	}
	for _, r := range b {
		setB[r] = struct{}{}
	}

	small, large := setA, setB
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for r := range small {
		if _, ok := large[r]; ok {
			inter++
		}
	}

	union := len(setA) + len(setB) - inter
	payload := OverlapPayload{Intersection: inter, SizeA: len(setA), SizeB: len(setB)}
	if union == 0 {
		return domain.Outcome{Score: 1, Raw: payload}, nil
	}
	score := float64(inter) / float64(union)
	return domain.Outcome{Score: score, Raw: payload}, nil
}

// Dice computes the Dice-Sørensen coefficient over bigram sets, iterating the
// smaller set for the intersection.
type Dice struct {
	pool *pool.Pool
}

// NewDice creates a Dice-Sørensen bigram metric.
func NewDice(p *pool.Pool) *Dice {
	return &Dice{pool: scratchPool(p)}
}

// Name returns the registry identifier.
func (m *Dice) Name() string { return "dice" }

// Symmetric reports cache-key symmetry; both argument orders share one cache
// entry.
func (m *Dice) Symmetric() bool { return true }

// Compute returns score = 2*|A∩B| / (|A|+|B|) over bigram sets. Inputs
// shorter than two characters are a defined edge case, not an error: equal
// strings score 1, anything else 0.
func (m *Dice) Compute(a, b string) (domain.Outcome, error) {
	p := m.pool
	ra := decodeRunes(p, a)
	rb := decodeRunes(p, b)
	defer p.ReleaseRunes(ra, rb)

	if len(ra) < 2 || len(rb) < 2 {
		score := 0.0
		if a == b {
			score = 1.0
		}
		return domain.Outcome{Score: score, Raw: OverlapPayload{}}, nil
	}

	setA := p.StringSet()
	setB := p.StringSet()
	defer p.ReleaseStringSet(setA, setB)

	for i := 0; i+1 < len(ra); i++ {
		setA[string(ra[i:i+2])] = struct{}{}
	}
	for i := 0; i+1 < len(rb); i++ {
		setB[string(rb[i:i+2])] = struct{}{}
	}

	small, large := setA, setB
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for g := range small {
		if _, ok := large[g]; ok {
			inter++
		}
	}

	score := 2 * float64(inter) / float64(len(setA)+len(setB))
	payload := OverlapPayload{Intersection: inter, SizeA: len(setA), SizeB: len(setB)}
	return domain.Outcome{Score: score, Raw: payload}, nil
}
