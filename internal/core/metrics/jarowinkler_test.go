package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

func TestJaroWinklerCompute(t *testing.T) {
	m := NewJaroWinkler(pool.New())

	tests := []struct {
		name  string
		a, b  string
		score float64
	}{
		{name: "classic martha marhta", a: "martha", b: "marhta", score: 0.9611111111},
		{name: "classic dixon dicksonx", a: "dixon", b: "dicksonx", score: 0.8133333333},
		{name: "classic dwayne duane", a: "DWAYNE", b: "DUANE", score: 0.84},
		{name: "equal strings", a: "match", b: "match", score: 1},
		{name: "no matching characters", a: "abc", b: "xyz", score: 0},
		{name: "empty side", a: "", b: "abc", score: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := m.Compute(tc.a, tc.b)
			require.NoError(t, err)
			assert.InDelta(t, tc.score, out.Score, 1e-9)
		})
	}
}

func TestJaroWinklerPayload(t *testing.T) {
	m := NewJaroWinkler(pool.New())

	out, err := m.Compute("martha", "marhta")
	require.NoError(t, err)
	payload := out.Raw.(JaroPayload)
	assert.Equal(t, 6, payload.Matches)
	assert.Equal(t, 1, payload.Transpositions)
	assert.Equal(t, 3, payload.Prefix)
}

func TestJaroWinklerPrefixCap(t *testing.T) {
	m := NewJaroWinkler(pool.New())

	// Six shared prefix characters; the boost only counts four.
	out, err := m.Compute("prefixab", "prefixba")
	require.NoError(t, err)
	assert.Equal(t, 4, out.Raw.(JaroPayload).Prefix)
}

func TestJaroWinklerIndependentOfBufferHistory(t *testing.T) {
	p := pool.New()
	m := NewJaroWinkler(p)

	fresh, err := m.Compute("dixon", "dicksonx")
	require.NoError(t, err)

	// The match-flag rows must come back zeroed from the free list.
	_, err = m.Compute("aaaaaaaaaaaa", "aaaaaaaaaaab")
	require.NoError(t, err)

	recycled, err := m.Compute("dixon", "dicksonx")
	require.NoError(t, err)
	assert.Equal(t, fresh, recycled)
}
