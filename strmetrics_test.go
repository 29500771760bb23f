package strmetrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	strmetrics "github.com/baditaflorin/go_string_metrics"
	"github.com/baditaflorin/go_string_metrics/internal/cache"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

func newEngine(t *testing.T, opts ...strmetrics.Option) *strmetrics.Engine {
	t.Helper()
	opts = append([]strmetrics.Option{
		strmetrics.WithPool(pool.New()),
		strmetrics.WithCache(cache.New()),
	}, opts...)
	eng, err := strmetrics.New(opts...)
	require.NoError(t, err)
	return eng
}

func TestParseModeIdentifiers(t *testing.T) {
	for s, want := range map[string]strmetrics.Mode{
		"":         strmetrics.ModeDefault,
		"default":  strmetrics.ModeDefault,
		"batch":    strmetrics.ModeBatch,
		"pairwise": strmetrics.ModePairwise,
	} {
		got, err := strmetrics.ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := strmetrics.ParseMode("rowwise")
	assert.ErrorIs(t, err, strmetrics.ErrInvalidMode)
}

func TestCompareLevenshtein(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Compare(context.Background(), "levenshtein", "kitten", "sitting")
	require.NoError(t, err)
	assert.InDelta(t, 0.5714285714, res.Score, 1e-9)
	assert.Equal(t, "kitten", res.Source)
	assert.Equal(t, "sitting", res.Target)
}

func TestCompareUnknownMetric(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Compare(context.Background(), "metaphone", "a", "b")
	assert.ErrorIs(t, err, strmetrics.ErrUnknownMetric)
}

func TestCompareCancelledContext(t *testing.T) {
	eng := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Compare(ctx, "levenshtein", "a", "b")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIdenticalTextsScoreOne(t *testing.T) {
	eng := newEngine(t)

	for _, metric := range eng.Metrics() {
		res, err := eng.Compare(context.Background(), metric, "identical input", "identical input")
		require.NoError(t, err, metric)
		assert.Equal(t, 1.0, res.Score, metric)
	}
}

func TestScoresStayInUnitInterval(t *testing.T) {
	eng := newEngine(t)

	pairs := [][2]string{
		{"kitten", "sitting"},
		{"GATTACA", "GTCGACGCA"},
		{"night", "nacht"},
		{"", ""},
		{"a", "completely different phrase"},
	}

	for _, metric := range eng.Metrics() {
		for _, pair := range pairs {
			res, err := eng.Compare(context.Background(), metric, pair[0], pair[1])
			if metric == "hamming" && len(pair[0]) != len(pair[1]) {
				assert.ErrorIs(t, err, strmetrics.ErrLengthMismatch)
				continue
			}
			require.NoError(t, err, "%s %q/%q", metric, pair[0], pair[1])
			assert.GreaterOrEqual(t, res.Score, 0.0, "%s %q/%q", metric, pair[0], pair[1])
			assert.LessOrEqual(t, res.Score, 1.0, "%s %q/%q", metric, pair[0], pair[1])
		}
	}
}

func TestAlignmentScoreClampedAtZero(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Compare(context.Background(), "needleman-wunsch", "GATTACA", "GTCGACGCA")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
}

func TestBatchCrossProduct(t *testing.T) {
	eng := newEngine(t)

	results, err := eng.Batch(context.Background(), "jaccard",
		[]string{"alpha", "beta"},
		[]string{"gamma", "delta", "epsilon"},
	)
	require.NoError(t, err)
	require.Len(t, results, 6)
	// Row-major: the outer loop walks sources.
	assert.Equal(t, "alpha", results[0].Source)
	assert.Equal(t, "gamma", results[0].Target)
	assert.Equal(t, "alpha", results[2].Source)
	assert.Equal(t, "epsilon", results[2].Target)
	assert.Equal(t, "beta", results[3].Source)
}

func TestPairwiseRequiresEqualCardinality(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Pairwise(context.Background(), "dice",
		[]string{"a", "b", "c"},
		[]string{"x", "y"},
	)
	assert.ErrorIs(t, err, strmetrics.ErrLengthMismatch)
}

func TestPairwiseAlignment(t *testing.T) {
	eng := newEngine(t)

	results, err := eng.Pairwise(context.Background(), "levenshtein",
		[]string{"kitten", "night"},
		[]string{"sitting", "nacht"},
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "night", results[1].Source)
	assert.Equal(t, "nacht", results[1].Target)
}

func TestRepeatedRunsAreDeterministic(t *testing.T) {
	eng := newEngine(t)

	first, err := eng.Batch(context.Background(), "jaro-winkler",
		[]string{"martha", "dixon", "DWAYNE"},
		[]string{"marhta", "dicksonx"},
	)
	require.NoError(t, err)

	// Scratch buffers cycle through the free list between runs; outcomes must
	// not depend on buffer history.
	for i := 0; i < 5; i++ {
		again, err := eng.Batch(context.Background(), "jaro-winkler",
			[]string{"martha", "dixon", "DWAYNE"},
			[]string{"marhta", "dicksonx"},
		)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestStreamMirrorsBatch(t *testing.T) {
	eng := newEngine(t)

	want, err := eng.Batch(context.Background(), "lcs",
		[]string{"AGCAT", "banana"},
		[]string{"GAC", "bandana"},
	)
	require.NoError(t, err)

	items, err := eng.Stream(context.Background(), "lcs",
		strmetrics.Sequence("AGCAT", "banana"),
		strmetrics.Sequence("GAC", "bandana"),
		strmetrics.ModeBatch,
	)
	require.NoError(t, err)

	var got []strmetrics.Result
	for item := range items {
		require.NoError(t, item.Err)
		got = append(got, item.Result)
	}
	assert.Equal(t, want, got)
}

type reverseEqual struct{}

func (reverseEqual) Name() string    { return "reverse-equal" }
func (reverseEqual) Symmetric() bool { return false }
func (reverseEqual) Compute(a, b string) (strmetrics.Outcome, error) {
	ra := []rune(a)
	for i, j := 0, len(ra)-1; i < j; i, j = i+1, j-1 {
		ra[i], ra[j] = ra[j], ra[i]
	}
	if string(ra) == b {
		return strmetrics.Outcome{Score: 1}, nil
	}
	return strmetrics.Outcome{Score: 0}, nil
}

func TestRegisterCustomMetric(t *testing.T) {
	eng := newEngine(t)
	require.NoError(t, eng.Register(reverseEqual{}))
	assert.Contains(t, eng.Metrics(), "reverse-equal")

	res, err := eng.Compare(context.Background(), "reverse-equal", "stressed", "desserts")
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Score)
}

func TestCacheLifecycle(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Compare(context.Background(), "dice", "night", "nacht")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), eng.CacheStats().Misses)

	_, err = eng.Compare(context.Background(), "dice", "night", "nacht")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), eng.CacheStats().Hits)

	// Dice declares symmetry, so the swapped order hits the same entry.
	_, err = eng.Compare(context.Background(), "dice", "nacht", "night")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), eng.CacheStats().Hits)

	// Clear drops entries and zeroes the counters.
	eng.ClearCache()
	_, err = eng.Compare(context.Background(), "dice", "night", "nacht")
	require.NoError(t, err)
	stats := eng.CacheStats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, 1, stats.Entries)
}

func TestTimingToggle(t *testing.T) {
	timed := newEngine(t, strmetrics.WithTiming())
	res, err := timed.Compare(context.Background(), "levenshtein", "kitten", "sitting")
	require.NoError(t, err)
	assert.Positive(t, res.Elapsed)

	plain := newEngine(t)
	res, err = plain.Compare(context.Background(), "levenshtein", "kitten", "sitting")
	require.NoError(t, err)
	assert.Zero(t, res.Elapsed)
}

func TestPoolStatsAccumulate(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Compare(context.Background(), "levenshtein", "kitten", "sitting")
	require.NoError(t, err)

	stats := eng.PoolStats()
	assert.Positive(t, stats.Acquires)
	assert.Equal(t, stats.Acquires, stats.Releases)

	eng.ResetPool()
	_, err = eng.Compare(context.Background(), "levenshtein", "kitten", "sitting")
	require.NoError(t, err)
}

func TestResultSummary(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Compare(context.Background(), "levenshtein", "kitten", "sitting")
	require.NoError(t, err)
	require.NotNil(t, res.Raw)

	summary := res.Summary()
	assert.Nil(t, summary.Raw)
	assert.Equal(t, res.Metric, summary.Metric)
	assert.Equal(t, res.Score, summary.Score)
	assert.Equal(t, res.Source, summary.Source)
	assert.Equal(t, res.Target, summary.Target)
}
