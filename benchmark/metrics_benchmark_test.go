package benchmark

import (
	"context"
	"strings"
	"testing"

	strmetrics "github.com/baditaflorin/go_string_metrics"
	"github.com/baditaflorin/go_string_metrics/internal/adapters/normalizer"
	"github.com/baditaflorin/go_string_metrics/internal/cache"
	"github.com/baditaflorin/go_string_metrics/internal/core/metrics"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
)

// generateText creates a text of the specified size by repeating a sample text
func generateText(size int) string {
	if size <= 0 {
		return ""
	}

	sample := "The quick brown fox jumps over the lazy dog. This sentence contains all letters of the English alphabet and is commonly used for testing text processing algorithms and systems."
	var sb strings.Builder
	sb.Grow(size)

	for sb.Len() < size {
		sb.WriteString(sample)
		sb.WriteString(" ")
	}

	if sb.Len() > size {
		return sb.String()[:size]
	}
	return sb.String()
}

// BenchmarkMetrics measures every built-in metric over a shared word-sized pair.
func BenchmarkMetrics(b *testing.B) {
	eng, err := strmetrics.New(
		strmetrics.WithPool(pool.New()),
		strmetrics.WithCache(cache.New()),
	)
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	source := "performance measurement"
	target := "performance assessment"

	for _, metric := range eng.Metrics() {
		if metric == "hamming" {
			// Strict mode rejects these unequal lengths; measured separately.
			continue
		}
		b.Run(metric, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				eng.ClearCache()
				if _, err := eng.Compare(ctx, metric, source, target); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkLevenshteinSizes measures the edit-distance rows across input sizes.
func BenchmarkLevenshteinSizes(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"100B", 100},
		{"1KB", 1000},
		{"10KB", 10000},
	}

	p := pool.New()
	m := metrics.NewLevenshtein(p)

	for _, sz := range sizes {
		a := generateText(sz.size)
		c := strings.Replace(a, "the", "a", 10)

		b.Run(sz.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(a)))
			for i := 0; i < b.N; i++ {
				if _, err := m.Compute(a, c); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkPoolReuse contrasts a warm free list against a fresh pool per run.
func BenchmarkPoolReuse(b *testing.B) {
	a := generateText(1000)
	c := strings.Replace(a, "the", "a", 5)

	b.Run("WarmPool", func(b *testing.B) {
		m := metrics.NewJaroWinkler(pool.New())
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := m.Compute(a, c); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("FreshPool", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			m := metrics.NewJaroWinkler(pool.New())
			if _, err := m.Compute(a, c); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkMemoization contrasts cold computes against memoized lookups.
func BenchmarkMemoization(b *testing.B) {
	ctx := context.Background()
	source := generateText(2000)
	target := strings.Replace(source, "fox", "cat", 5)

	b.Run("Cold", func(b *testing.B) {
		eng, err := strmetrics.New(
			strmetrics.WithPool(pool.New()),
			strmetrics.WithCache(cache.New()),
		)
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			eng.ClearCache()
			if _, err := eng.Compare(ctx, "damerau-levenshtein", source, target); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Memoized", func(b *testing.B) {
		eng, err := strmetrics.New(
			strmetrics.WithPool(pool.New()),
			strmetrics.WithCache(cache.New()),
		)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := eng.Compare(ctx, "damerau-levenshtein", source, target); err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := eng.Compare(ctx, "damerau-levenshtein", source, target); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkBatch measures the cross-product path end to end.
func BenchmarkBatch(b *testing.B) {
	eng, err := strmetrics.New(
		strmetrics.WithPool(pool.New()),
		strmetrics.WithCache(cache.New()),
	)
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	sources := []string{"kitten", "martha", "night", "GATTACA"}
	targets := []string{"sitting", "marhta", "nacht", "GTCGACGCA"}

	b.Run("Jaccard-4x4", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			eng.ClearCache()
			if _, err := eng.Batch(ctx, "jaccard", sources, targets); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkNormalizer measures the flag normalizer across input sizes.
func BenchmarkNormalizer(b *testing.B) {
	n, err := normalizer.ForFlags("lwp")
	if err != nil {
		b.Fatal(err)
	}

	sizes := []struct {
		name string
		size int
	}{
		{"Small-100B", 100},
		{"Medium-10KB", 10000},
		{"Large-100KB", 100000},
	}

	for _, sz := range sizes {
		input := generateText(sz.size)
		b.Run(sz.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(input)))
			for i := 0; i < b.N; i++ {
				_ = n.Normalize(input)
			}
		})
	}
}
