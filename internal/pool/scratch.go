// Package pool provides typed, reusable scratch buffers for the metric
// engine. Buffers are kept on free lists bucketed by kind, so the tight
// dynamic-programming loops of the metrics allocate rows once and recycle
// them across invocations.
//
// The pool is correctness-safe only under the engine's single-threaded
// cooperative model: there is no internal locking, and adapting it to
// parallel callers requires external synchronization around every
// acquire/release.
package pool

// Stats holds counters describing pool behavior since creation or the last
// Reset.
type Stats struct {
	Acquires uint64
	Releases uint64
	Hits     uint64
	Misses   uint64
}

// Pool is a free-list arena of scratch buffers. The zero value is not usable;
// create instances with New. A process-wide Default instance exists for
// callers that do not inject their own.
type Pool struct {
	intRows   [][]int
	floatRows [][]float64
	runeBufs  [][]rune
	runeSets  []map[rune]struct{}
	strSets   []map[string]struct{}
	termFreqs []map[string]int

	stats Stats
}

// Default is the process-wide pool used when no instance is injected.
var Default = New()

// New creates an empty scratch pool.
func New() *Pool {
	return &Pool{}
}

// nextCap rounds a requested capacity up to the next power of two, so
// recycled buffers serve a range of nearby request sizes.
func nextCap(n int) int {
	c := 8
	for c < n {
		c <<= 1
	}
	return c
}

// Ints acquires an int row with exactly n usable slots, zeroed. The backing
// capacity may exceed n; prior contents never survive into the returned
// slice.
func (p *Pool) Ints(n int) []int {
	p.stats.Acquires++
	for i, b := range p.intRows {
		if cap(b) >= n {
			p.intRows[i] = p.intRows[len(p.intRows)-1]
			p.intRows = p.intRows[:len(p.intRows)-1]
			b = b[:n]
			for j := range b {
				b[j] = 0
			}
			p.stats.Hits++
			return b
		}
	}
	p.stats.Misses++
	return make([]int, n, nextCap(n))
}

// IntRows acquires one int row per requested size in a single call, for
// algorithms that need multiple rolling rows.
func (p *Pool) IntRows(sizes ...int) [][]int {
	rows := make([][]int, len(sizes))
	for i, n := range sizes {
		rows[i] = p.Ints(n)
	}
	return rows
}

// ReleaseInts returns int rows to the free list. Releasing a buffer that was
// not acquired from this pool is a caller error; the pool validates shape,
// not provenance.
func (p *Pool) ReleaseInts(rows ...[]int) {
	for _, b := range rows {
		if cap(b) == 0 {
			continue
		}
		p.stats.Releases++
		p.intRows = append(p.intRows, b[:0])
	}
}

// Floats acquires a float64 row with exactly n usable slots, zeroed.
func (p *Pool) Floats(n int) []float64 {
	p.stats.Acquires++
	for i, b := range p.floatRows {
		if cap(b) >= n {
			p.floatRows[i] = p.floatRows[len(p.floatRows)-1]
			p.floatRows = p.floatRows[:len(p.floatRows)-1]
			b = b[:n]
			for j := range b {
				b[j] = 0
			}
			p.stats.Hits++
			return b
		}
	}
	p.stats.Misses++
	return make([]float64, n, nextCap(n))
}

// FloatRows acquires one float64 row per requested size in a single call.
func (p *Pool) FloatRows(sizes ...int) [][]float64 {
	rows := make([][]float64, len(sizes))
	for i, n := range sizes {
		rows[i] = p.Floats(n)
	}
	return rows
}

// ReleaseFloats returns float64 rows to the free list.
func (p *Pool) ReleaseFloats(rows ...[]float64) {
	for _, b := range rows {
		if cap(b) == 0 {
			continue
		}
		p.stats.Releases++
		p.floatRows = append(p.floatRows, b[:0])
	}
}

// Runes acquires an empty rune buffer with capacity for at least n runes,
// for decoding a string once per computation.
func (p *Pool) Runes(n int) []rune {
	p.stats.Acquires++
	for i, b := range p.runeBufs {
		if cap(b) >= n {
			p.runeBufs[i] = p.runeBufs[len(p.runeBufs)-1]
			p.runeBufs = p.runeBufs[:len(p.runeBufs)-1]
			p.stats.Hits++
			return b[:0]
		}
	}
	p.stats.Misses++
	return make([]rune, 0, nextCap(n))
}

// ReleaseRunes returns rune buffers to the free list.
func (p *Pool) ReleaseRunes(bufs ...[]rune) {
	for _, b := range bufs {
		if cap(b) == 0 {
			continue
		}
		p.stats.Releases++
		p.runeBufs = append(p.runeBufs, b[:0])
	}
}

// RuneSet acquires an empty rune set.
func (p *Pool) RuneSet() map[rune]struct{} {
	p.stats.Acquires++
	if n := len(p.runeSets); n > 0 {
		s := p.runeSets[n-1]
		p.runeSets = p.runeSets[:n-1]
		p.stats.Hits++
		return s
	}
	p.stats.Misses++
	return make(map[rune]struct{})
}

// ReleaseRuneSet clears a rune set and returns it to the free list.
func (p *Pool) ReleaseRuneSet(sets ...map[rune]struct{}) {
	for _, s := range sets {
		if s == nil {
			continue
		}
		clear(s)
		p.stats.Releases++
		p.runeSets = append(p.runeSets, s)
	}
}

// StringSet acquires an empty string set, used for bigram membership.
func (p *Pool) StringSet() map[string]struct{} {
	p.stats.Acquires++
	if n := len(p.strSets); n > 0 {
		s := p.strSets[n-1]
		p.strSets = p.strSets[:n-1]
		p.stats.Hits++
		return s
	}
	p.stats.Misses++
	return make(map[string]struct{})
}

// ReleaseStringSet clears string sets and returns them to the free list.
func (p *Pool) ReleaseStringSet(sets ...map[string]struct{}) {
	for _, s := range sets {
		if s == nil {
			continue
		}
		clear(s)
		p.stats.Releases++
		p.strSets = append(p.strSets, s)
	}
}

// TermFreq acquires an empty term-frequency map.
func (p *Pool) TermFreq() map[string]int {
	p.stats.Acquires++
	if n := len(p.termFreqs); n > 0 {
		m := p.termFreqs[n-1]
		p.termFreqs = p.termFreqs[:n-1]
		p.stats.Hits++
		return m
	}
	p.stats.Misses++
	return make(map[string]int)
}

// ReleaseTermFreq clears term-frequency maps and returns them to the free
// list.
func (p *Pool) ReleaseTermFreq(maps ...map[string]int) {
	for _, m := range maps {
		if m == nil {
			continue
		}
		clear(m)
		p.stats.Releases++
		p.termFreqs = append(p.termFreqs, m)
	}
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	return p.stats
}

// Reset drops every free list and zeroes the counters. The pool grows without
// bound otherwise; long-running processes should Reset periodically.
func (p *Pool) Reset() {
	p.intRows = nil
	p.floatRows = nil
	p.runeBufs = nil
	p.runeSets = nil
	p.strSets = nil
	p.termFreqs = nil
	p.stats = Stats{}
}
