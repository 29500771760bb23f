// Package warmup exercises the metric engine ahead of traffic so pools,
// caches and branch predictors start warm.
package warmup

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_string_metrics/internal/cache"
	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
	"github.com/baditaflorin/go_string_metrics/internal/core/engine"
	"github.com/baditaflorin/go_string_metrics/internal/pool"
	"github.com/baditaflorin/go_string_metrics/internal/ports"
	"github.com/baditaflorin/go_string_metrics/internal/registry"
)

// Config defines configuration for warming up the system.
type Config struct {
	// Number of concurrent warmup workers.
	Concurrency int
	// Number of iterations per worker.
	Iterations int
	// Sample text size for warmup.
	SampleTextSize int
	// Warmup duration (0 means no time limit).
	Duration time.Duration
	// Whether to perform GC after warmup.
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 1000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager runs the warmup. The pool and cache carry no internal locking, so
// every worker builds its own isolated pool, cache and registry instead of
// sharing the process-wide singletons.
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{logger: logger, config: config}
}

// RegisterNormalizer adds a normalizer to be warmed up alongside the metrics.
func (wm *Manager) RegisterNormalizer(n ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, n)
}

// WarmUp exercises every built-in metric across single, batch and pairwise
// runs on each worker.
func (wm *Manager) WarmUp(ctx context.Context) error {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < wm.config.Concurrency; w++ {
		g.Go(func() error {
			return wm.work(ctx)
		})
	}
	if err := g.Wait(); err != nil {
		wm.logger.Warn("Warmup ended early", "error", err)
	}

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed", "duration", time.Since(startTime))
	return nil
}

func (wm *Manager) work(ctx context.Context) error {
	p := pool.New()
	memo := cache.New()
	reg, err := registry.Default(p)
	if err != nil {
		return err
	}

	original := generateSampleText(wm.config.SampleTextSize)
	similar := generateSimilarText(original, 0.1)
	different := generateSimilarText(original, 0.5)

	for i := 0; i < wm.config.Iterations; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		for _, n := range wm.normalizers {
			_ = n.Normalize(original)
		}

		for _, name := range reg.Names() {
			m, err := reg.Get(name)
			if err != nil {
				return err
			}
			pair := similar
			if i%3 == 0 {
				pair = original
			} else if i%3 == 2 {
				pair = different
			}
			cmp := engine.New(m, domain.Sequence(original, pair), domain.Sequence(pair, original),
				engine.WithCache(memo))
			// Strict Hamming rejects unequal lengths; that path is warm enough.
			if err := cmp.Run(engine.ModePairwise); err != nil && !errors.Is(err, domain.ErrLengthMismatch) {
				return err
			}
		}
	}
	return nil
}

// generateSampleText creates sample text of the specified size.
func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet",
	}

	var sb strings.Builder
	for sb.Len() < size {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(words[sb.Len()%len(words)])
	}

	result := sb.String()
	if len(result) > size {
		return result[:size]
	}
	return result
}

// generateSimilarText replaces a share of the words in the original.
func generateSimilarText(original string, diffRatio float64) string {
	words := strings.Fields(original)
	changeCount := int(float64(len(words)) * diffRatio)

	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
	}

	newWords := make([]string, len(words))
	copy(newWords, words)
	for i := 0; i < changeCount && i < len(newWords); i++ {
		newWords[i] = replacements[i%len(replacements)]
	}
	return strings.Join(newWords, " ")
}
