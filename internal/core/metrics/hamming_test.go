package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

func TestHammingCompute(t *testing.T) {
	m := NewHamming(pool.New())

	out, err := m.Compute("karolin", "kathrin")
	require.NoError(t, err)
	assert.Equal(t, HammingPayload{Mismatches: 3, Length: 7}, out.Raw)
	assert.InDelta(t, 1-3.0/7, out.Score, 1e-12)
}

func TestHammingStrictLengthMismatch(t *testing.T) {
	m := NewHamming(pool.New())

	_, err := m.Compute("abc", "ab")
	require.ErrorIs(t, err, domain.ErrLengthMismatch)
}

func TestHammingPadPolicy(t *testing.T) {
	m := NewHamming(pool.New(), WithPadding('*'))

	out, err := m.Compute("abc", "ab")
	require.NoError(t, err)
	// Pad extends "ab" to "ab*": one positional mismatch over three.
	assert.Equal(t, HammingPayload{Mismatches: 1, Length: 3}, out.Raw)
	assert.InDelta(t, 1-1.0/3, out.Score, 1e-12)
}

func TestHammingEqualStrings(t *testing.T) {
	m := NewHamming(pool.New())

	out, err := m.Compute("same", "same")
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.Score)
}

func TestHammingBothEmpty(t *testing.T) {
	m := NewHamming(pool.New())

	out, err := m.Compute("", "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.Score)
}
