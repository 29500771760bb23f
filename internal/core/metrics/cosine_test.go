package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

func TestCosineCompute(t *testing.T) {
	m, err := NewCosine(pool.New())
	require.NoError(t, err)

	// tf("a b a") = {a:2, b:1}, tf("a b") = {a:1, b:1}: dot 3, |A|=sqrt5,
	// |B|=sqrt2.
	out, err := m.Compute("a b a", "a b")
	require.NoError(t, err)
	assert.InDelta(t, 3/math.Sqrt(10), out.Score, 1e-12)

	payload := out.Raw.(CosinePayload)
	assert.InDelta(t, 3, payload.Dot, 1e-12)
	assert.InDelta(t, math.Sqrt(5), payload.MagnitudeA, 1e-12)
	assert.InDelta(t, math.Sqrt(2), payload.MagnitudeB, 1e-12)
}

func TestCosineIdenticalTexts(t *testing.T) {
	m, err := NewCosine(pool.New())
	require.NoError(t, err)

	out, err := m.Compute("the quick brown fox", "the quick brown fox")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.Score, 1e-12)
}

func TestCosineDisjointTerms(t *testing.T) {
	m, err := NewCosine(pool.New())
	require.NoError(t, err)

	out, err := m.Compute("alpha beta", "gamma delta")
	require.NoError(t, err)
	assert.Zero(t, out.Score)
}

func TestCosineCustomDelimiter(t *testing.T) {
	m, err := NewCosine(pool.New(), WithDelimiter(","))
	require.NoError(t, err)

	out, err := m.Compute("red,green,blue", "green,red,blue")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.Score, 1e-12)
}

func TestCosineEmptyDelimiterRejected(t *testing.T) {
	_, err := NewCosine(pool.New(), WithDelimiter(""))
	require.Error(t, err)
}

func TestCosineSymmetricOutcomes(t *testing.T) {
	m, err := NewCosine(pool.New())
	require.NoError(t, err)

	ab, err := m.Compute("one two three", "two three four")
	require.NoError(t, err)
	ba, err := m.Compute("two three four", "one two three")
	require.NoError(t, err)
	assert.InDelta(t, ab.Score, ba.Score, 1e-12)
}
