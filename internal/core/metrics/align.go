package metrics

import (
	"errors"

	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// AlignPayload is the raw payload of the alignment family: the unnormalized
// alignment score.
type AlignPayload struct {
	Score float64
}

// AlignConfig holds the scoring scheme shared by the alignment metrics.
type AlignConfig struct {
	Match    float64
	Mismatch float64
	Gap      float64
}

// DefaultAlignConfig returns the default scoring scheme.
func DefaultAlignConfig() AlignConfig {
	return AlignConfig{Match: 1, Mismatch: -1, Gap: -2}
}

// Validate checks if the scoring scheme is usable. Match must be positive
// because normalization divides by it.
func (c AlignConfig) Validate() error {
	if c.Match <= 0 {
		return errors.New("match score must be greater than 0")
	}
	if c.Mismatch > 0 {
		return errors.New("mismatch score must not be positive")
	}
	if c.Gap > 0 {
		return errors.New("gap cost must not be positive")
	}
	return nil
}

// AlignOption configures an alignment metric.
type AlignOption func(*AlignConfig)

// WithMatchScore sets the score awarded for matching characters.
func WithMatchScore(s float64) AlignOption {
	return func(c *AlignConfig) { c.Match = s }
}

// WithMismatchScore sets the penalty for mismatching characters.
func WithMismatchScore(s float64) AlignOption {
	return func(c *AlignConfig) { c.Mismatch = s }
}

// WithGapCost sets the penalty for a gap.
func WithGapCost(s float64) AlignOption {
	return func(c *AlignConfig) { c.Gap = s }
}

// NeedlemanWunsch computes a global alignment score with boundary rows
// initialized by cumulative gap cost. The normalized score is
// raw/(maxLen*match); the engine clamps it into [0,1].
type NeedlemanWunsch struct {
	config AlignConfig
	pool   *pool.Pool
}

// NewNeedlemanWunsch creates a global-alignment metric.
func NewNeedlemanWunsch(p *pool.Pool, opts ...AlignOption) (*NeedlemanWunsch, error) {
	cfg := DefaultAlignConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &NeedlemanWunsch{config: cfg, pool: scratchPool(p)}, nil
}

// Name returns the registry identifier.
func (m *NeedlemanWunsch) Name() string { return "needleman-wunsch" }

// Symmetric reports cache-key symmetry.
func (m *NeedlemanWunsch) Symmetric() bool { return false }

// Compute runs the global alignment DP over two rolling rows.
func (m *NeedlemanWunsch) Compute(a, b string) (domain.Outcome, error) {
	if a == b {
		raw := float64(len([]rune(a))) * m.config.Match
		return domain.Outcome{Score: 1, Raw: AlignPayload{Score: raw}}, nil
	}

	p := m.pool
	ra := decodeRunes(p, a)
	rb := decodeRunes(p, b)
	defer p.ReleaseRunes(ra, rb)

	long, short := ra, rb
	if len(short) > len(long) {
		long, short = short, long
	}

	rows := p.FloatRows(len(short)+1, len(short)+1)
	prev, curr := rows[0], rows[1]
	defer p.ReleaseFloats(prev, curr)

	for j := 0; j <= len(short); j++ {
		prev[j] = float64(j) * m.config.Gap
	}

	for i := 1; i <= len(long); i++ {
		curr[0] = float64(i) * m.config.Gap
		for j := 1; j <= len(short); j++ {
			sub := m.config.Mismatch
			if long[i-1] == short[j-1] {
				sub = m.config.Match
			}
			best := prev[j-1] + sub
			if up := prev[j] + m.config.Gap; up > best {
				best = up
			}
			if left := curr[j-1] + m.config.Gap; left > best {
				best = left
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}

	raw := prev[len(short)]
	score := raw / (float64(len(long)) * m.config.Match)
	return domain.Outcome{Score: score, Raw: AlignPayload{Score: raw}}, nil
}

// SmithWaterman computes a local alignment score: cell values floor at zero
// and the best score is a running matrix-wide maximum. Normalization divides
// by min(m,n)*match, reflecting local rather than global semantics.
type SmithWaterman struct {
	config AlignConfig
	pool   *pool.Pool
}

// NewSmithWaterman creates a local-alignment metric.
func NewSmithWaterman(p *pool.Pool, opts ...AlignOption) (*SmithWaterman, error) {
	cfg := DefaultAlignConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SmithWaterman{config: cfg, pool: scratchPool(p)}, nil
}

// Name returns the registry identifier.
func (m *SmithWaterman) Name() string { return "smith-waterman" }

// Symmetric reports cache-key symmetry.
func (m *SmithWaterman) Symmetric() bool { return false }

// Compute runs the local alignment DP over two rolling rows.
func (m *SmithWaterman) Compute(a, b string) (domain.Outcome, error) {
	if a == b {
		raw := float64(len([]rune(a))) * m.config.Match
		return domain.Outcome{Score: 1, Raw: AlignPayload{Score: raw}}, nil
	}

	p := m.pool
	ra := decodeRunes(p, a)
	rb := decodeRunes(p, b)
	defer p.ReleaseRunes(ra, rb)

	if len(ra) == 0 || len(rb) == 0 {
		return domain.Outcome{Score: 0, Raw: AlignPayload{Score: 0}}, nil
	}

	long, short := ra, rb
	if len(short) > len(long) {
		long, short = short, long
	}

	rows := p.FloatRows(len(short)+1, len(short)+1)
	prev, curr := rows[0], rows[1]
	defer p.ReleaseFloats(prev, curr)

	var best float64
	for i := 1; i <= len(long); i++ {
		curr[0] = 0
		for j := 1; j <= len(short); j++ {
			sub := m.config.Mismatch
			if long[i-1] == short[j-1] {
				sub = m.config.Match
			}
			cell := prev[j-1] + sub
			if up := prev[j] + m.config.Gap; up > cell {
				cell = up
			}
			if left := curr[j-1] + m.config.Gap; left > cell {
				cell = left
			}
			if cell < 0 {
				cell = 0
			}
			curr[j] = cell
			if cell > best {
				best = cell
			}
		}
		prev, curr = curr, prev
	}

	score := best / (float64(len(short)) * m.config.Match)
	return domain.Outcome{Score: score, Raw: AlignPayload{Score: best}}, nil
}
