// Package cache provides the memoization table mapping an algorithm identity
// plus an exact input pair to its previously computed raw outcome.
//
// Keys are 64-bit xxhash digests of the metric name and both strings,
// length-prefixed so concatenation boundaries cannot collide structurally.
// Hash collisions against adversarial input are an accepted tradeoff, not a
// guarantee. Entries live until an explicit Clear; there is no eviction and
// no TTL, so long-running processes must Clear periodically.
//
// Like the scratch pool, the cache has no internal locking and relies on the
// engine's single-threaded cooperative model.
package cache

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/baditaflorin/go_string_metrics/internal/core/domain"
)

// Stats holds hit/miss counters since creation or the last Clear.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Memo maps composite keys to raw computed outcomes. Create instances with
// New; a process-wide Default exists for callers that do not inject their
// own.
type Memo struct {
	entries map[uint64]domain.Outcome
	hits    uint64
	misses  uint64
}

// Default is the process-wide memoization table.
var Default = New()

// New creates an empty memoization table.
func New() *Memo {
	return &Memo{entries: make(map[uint64]domain.Outcome)}
}

// Key derives the deterministic composite key for a metric and input pair.
// Symmetric metrics map both argument orders to one key by hashing the pair
// in lexicographic order.
func Key(metric string, symmetric bool, a, b string) uint64 {
	if symmetric && a > b {
		a, b = b, a
	}
	var d xxhash.Digest
	d.Reset()
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(metric)))
	_, _ = d.Write(lenBuf[:])
	_, _ = d.WriteString(metric)
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(a)))
	_, _ = d.Write(lenBuf[:])
	_, _ = d.WriteString(a)
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(b)))
	_, _ = d.Write(lenBuf[:])
	_, _ = d.WriteString(b)
	return d.Sum64()
}

// Get returns the memoized outcome for a key.
func (m *Memo) Get(key uint64) (domain.Outcome, bool) {
	out, ok := m.entries[key]
	if ok {
		m.hits++
	} else {
		m.misses++
	}
	return out, ok
}

// Set stores the raw outcome for a key. The stored value is the unclamped
// computation payload; presentation options never require invalidation.
func (m *Memo) Set(key uint64, out domain.Outcome) {
	m.entries[key] = out
}

// Len returns the number of memoized entries.
func (m *Memo) Len() int {
	return len(m.entries)
}

// Stats returns a snapshot of the cache counters.
func (m *Memo) Stats() Stats {
	return Stats{Hits: m.hits, Misses: m.misses, Entries: len(m.entries)}
}

// Clear removes every entry and zeroes the counters. This is the only removal
// path; there is no automatic eviction.
func (m *Memo) Clear() {
	m.entries = make(map[uint64]domain.Outcome)
	m.hits = 0
	m.misses = 0
}
