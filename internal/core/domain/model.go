package domain

import "time"

// Input is a text operand for a comparison: either a single scalar text or an
// ordered sequence of texts. The engine always works on the coerced sequence
// form and never mutates it.
type Input struct {
	values []string
}

// Text wraps a single scalar text as an Input.
func Text(s string) Input {
	return Input{values: []string{s}}
}

// Sequence wraps an ordered sequence of texts as an Input.
func Sequence(values ...string) Input {
	vs := make([]string, len(values))
	copy(vs, values)
	return Input{values: vs}
}

// Values returns the coerced ordered sequence backing this Input.
func (in Input) Values() []string {
	return in.values
}

// Len returns the cardinality of the coerced sequence.
func (in Input) Len() int {
	return len(in.values)
}

// Outcome is the raw unit of computation produced by a metric for exactly one
// pair of strings. Score is the metric's own scale, not yet clamped to [0,1];
// clamping is a presentation concern applied when the Result envelope is
// built, so cached outcomes stay valid when presentation options change.
type Outcome struct {
	Score float64
	Raw   interface{}
}

// Result holds the outcome of a similarity computation for one pair.
type Result struct {
	// Metric is the identifier of the algorithm that produced the score.
	Metric string
	// Source and Target are the exact compared strings.
	Source string
	Target string
	// Score is the similarity score clamped to [0,1].
	Score float64
	// Raw holds the algorithm-specific payload (edit distance, alignment
	// score, set sizes, ...). Nil in summary form.
	Raw interface{}
	// Elapsed is the per-pair computation time when timing capture is
	// enabled, zero otherwise.
	Elapsed time.Duration
}

// Summary returns a copy of the result without the algorithm-specific
// payload, exposing only source, target and score.
func (r Result) Summary() Result {
	r.Raw = nil
	return r
}

// Clamp01 clamps a raw metric score to the [0,1] similarity range.
func Clamp01(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
