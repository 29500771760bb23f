// Package normalizer provides the flag-driven text normalization adapter
// consumed by orchestration ahead of the metric engine.
package normalizer

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_string_metrics/internal/ports"
)

// Flag codes form a closed set of single-character normalization steps,
// composed deterministically regardless of the order they are given in.
const (
	// FlagLower folds the text to lower case.
	FlagLower = 'l'
	// FlagUnicode applies Unicode normalization form NFC.
	FlagUnicode = 'u'
	// FlagWhitespace collapses runs of whitespace into single spaces and
	// trims the ends.
	FlagWhitespace = 'w'
	// FlagPunct strips punctuation characters.
	FlagPunct = 'p'
	// FlagDigits strips digit characters.
	FlagDigits = 'd'
)

// instances caches one normalizer per canonical flag combination. Unlike the
// engine core, this cache is shared across request goroutines, so it carries
// its own lock.
var (
	instancesMu sync.RWMutex
	instances   = make(map[string]*FlagNormalizer)
)

// FlagNormalizer applies a fixed combination of normalization steps.
type FlagNormalizer struct {
	flags     string
	lower     bool
	unicodeNF bool
	collapse  bool
	punct     bool
	digits    bool
}

// Canonical returns the canonical form of a flag combination: sorted and
// deduplicated.
func Canonical(flags string) string {
	seen := make(map[rune]bool, len(flags))
	var set []rune
	for _, f := range flags {
		if !seen[f] {
			seen[f] = true
			set = append(set, f)
		}
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return string(set)
}

// ForFlags returns the cached normalizer for a flag combination, creating it
// on first use. Unknown flag codes are rejected.
func ForFlags(flags string) (*FlagNormalizer, error) {
	canonical := Canonical(flags)
	instancesMu.RLock()
	n, ok := instances[canonical]
	instancesMu.RUnlock()
	if ok {
		return n, nil
	}

	n = &FlagNormalizer{flags: canonical}
	for _, f := range canonical {
		switch f {
		case FlagLower:
			n.lower = true
		case FlagUnicode:
			n.unicodeNF = true
		case FlagWhitespace:
			n.collapse = true
		case FlagPunct:
			n.punct = true
		case FlagDigits:
			n.digits = true
		default:
			return nil, fmt.Errorf("unknown normalization flag %q", f)
		}
	}

	instancesMu.Lock()
	defer instancesMu.Unlock()
	if existing, ok := instances[canonical]; ok {
		return existing, nil
	}
	instances[canonical] = n
	return n, nil
}

// NewDefault returns the normalizer for the common lower-case, whitespace and
// punctuation combination.
func NewDefault() ports.Normalizer {
	n, _ := ForFlags(string([]rune{FlagLower, FlagWhitespace, FlagPunct}))
	return n
}

// Flags returns the canonical flag combination of this normalizer.
func (n *FlagNormalizer) Flags() string {
	return n.flags
}

// Normalize applies the configured steps. Steps compose in a fixed order:
// Unicode form first, then per-rune folding and stripping, whitespace
// collapsing last.
func (n *FlagNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	if n.unicodeNF {
		text = norm.NFC.String(text)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	lastWasSpace := true
	var scratch [utf8.UTFMax]byte
	for _, r := range text {
		switch {
		case n.punct && unicode.IsPunct(r):
			continue
		case n.digits && unicode.IsDigit(r):
			continue
		case n.collapse && unicode.IsSpace(r):
			if !lastWasSpace {
				_ = buf.WriteByte(' ')
				lastWasSpace = true
			}
			continue
		}
		if n.lower {
			r = unicode.ToLower(r)
		}
		w := utf8.EncodeRune(scratch[:], r)
		_, _ = buf.Write(scratch[:w])
		lastWasSpace = false
	}

	out := buf.String()
	if n.collapse {
		out = strings.TrimRight(out, " ")
	}
	return out
}

// Pipeline chains filters after a normalizer, applied left to right.
type Pipeline struct {
	normalizer ports.Normalizer
	filters    []ports.Filter
}

// NewPipeline composes a normalizer with post-normalization filter hooks.
func NewPipeline(n ports.Normalizer, filters ...ports.Filter) *Pipeline {
	return &Pipeline{normalizer: n, filters: filters}
}

// Normalize runs the normalizer, then every filter in order.
func (p *Pipeline) Normalize(text string) string {
	if p.normalizer != nil {
		text = p.normalizer.Normalize(text)
	}
	for _, f := range p.filters {
		text = f(text)
	}
	return text
}
