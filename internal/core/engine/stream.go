package engine

import (
	"context"

	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
)

// Item is one unit of a streamed comparison: a result or the error that ended
// the stream.
type Item struct {
	Result domain.Result
	Err    error
}

// Stream is the asynchronous mirror of Run. It executes the same units in the
// same order, but hands each result off through a channel so large batches do
// not block the caller between units. Every unit runs to completion before
// the next begins; suspension happens only at the hand-off boundaries, never
// mid-metric, so result ordering is identical to the synchronous Run.
//
// Mid-batch cancellation is not supported: the context is consulted only
// between units, and a caller that stops consuming simply abandons the rest.
// The first per-unit error ends the stream after being delivered.
func (c *Comparator) Stream(ctx context.Context, mode Mode) (<-chan Item, error) {
	resolved, err := c.resolve(mode)
	if err != nil {
		return nil, err
	}
	if resolved == ModePairwise && len(c.a) != len(c.b) {
		return nil, domain.ErrLengthMismatch
	}

	out := make(chan Item)
	go func() {
		defer close(out)
		emit := func(src, tgt string) bool {
			r, err := c.evaluate(src, tgt)
			item := Item{Result: r, Err: err}
			select {
			case out <- item:
			case <-ctx.Done():
				return false
			}
			return err == nil
		}

		if resolved == ModePairwise {
			for i := range c.a {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if !emit(c.a[i], c.b[i]) {
					return
				}
			}
			return
		}
		for _, src := range c.a {
			for _, tgt := range c.b {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if !emit(src, tgt) {
					return
				}
			}
		}
	}()
	return out, nil
}
