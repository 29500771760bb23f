package metrics

import (
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

const (
	// jwPrefixScale is the common-prefix boost factor.
	jwPrefixScale = 0.1
	// jwMaxPrefix caps the boosted common prefix length.
	jwMaxPrefix = 4
)

// JaroPayload is the raw payload of the weighted-prefix metric.
type JaroPayload struct {
	Matches        int
	Transpositions int
	Prefix         int
}

// JaroWinkler computes the Jaro similarity with a sliding match window of
// floor(max(m,n)/2)-1, then boosts it by the common prefix capped at four
// characters.
type JaroWinkler struct {
	pool *pool.Pool
}

// NewJaroWinkler creates a Jaro-Winkler metric.
func NewJaroWinkler(p *pool.Pool) *JaroWinkler {
	return &JaroWinkler{pool: scratchPool(p)}
}

// Name returns the registry identifier.
func (m *JaroWinkler) Name() string { return "jaro-winkler" }

// Symmetric reports cache-key symmetry.
func (m *JaroWinkler) Symmetric() bool { return false }

// Compute returns the Jaro-Winkler similarity, 0 if no characters match at
// all.
func (m *JaroWinkler) Compute(a, b string) (domain.Outcome, error) {
	if a == b {
		n := len([]rune(a))
		return domain.Outcome{Score: 1, Raw: JaroPayload{Matches: n, Prefix: minInt(n, jwMaxPrefix)}}, nil
	}

	p := m.pool
	ra := decodeRunes(p, a)
	rb := decodeRunes(p, b)
	defer p.ReleaseRunes(ra, rb)

	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return domain.Outcome{Score: 0, Raw: JaroPayload{}}, nil
	}

	window := maxInt(la, lb)/2 - 1
	if window < 0 {
		window = 0
	}

	// Match flags, zeroed by the pool on acquire.
	rows := p.IntRows(la, lb)
	flagsA, flagsB := rows[0], rows[1]
	defer p.ReleaseInts(flagsA, flagsB)

	matches := 0
	for i := 0; i < la; i++ {
		lo := maxInt(0, i-window)
		hi := minInt(lb-1, i+window)
		for j := lo; j <= hi; j++ {
			if flagsB[j] == 0 && ra[i] == rb[j] {
				flagsA[i] = 1
				flagsB[j] = 1
				matches++
				break
			}
		}
	}

	if matches == 0 {
		return domain.Outcome{Score: 0, Raw: JaroPayload{}}, nil
	}

	// Transposition count over the matched pairs in order.
	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if flagsA[i] == 0 {
			continue
		}
		for flagsB[j] == 0 {
			j++
		}
		if ra[i] != rb[j] {
			transpositions++
		}
		j++
	}
	transpositions /= 2

	fm := float64(matches)
	jaro := (fm/float64(la) + fm/float64(lb) + (fm-float64(transpositions))/fm) / 3

	prefix := 0
	for i := 0; i < minInt(minInt(la, lb), jwMaxPrefix); i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}

	score := jaro + float64(prefix)*jwPrefixScale*(1-jaro)
	payload := JaroPayload{Matches: matches, Transpositions: transpositions, Prefix: prefix}
	return domain.Outcome{Score: score, Raw: payload}, nil
}
