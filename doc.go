// Package strmetrics computes quantitative similarity scores between pairs of
// text sequences through a uniform contract that lets many distinct
// algorithms be selected interchangeably.
//
// The engine executes a chosen algorithm across three cardinalities (a
// single pair, a full cross-product batch, or an index-aligned pairwise
// batch) with deterministic result ordering. Scratch memory for the
// dynamic-programming loops is reused across invocations through a typed
// buffer pool, and raw outcomes are memoized keyed by algorithm identity and
// the exact input pair.
//
// Ten algorithms ship built in: levenshtein, damerau-levenshtein,
// needleman-wunsch, smith-waterman, lcs, dice, jaccard, cosine, hamming and
// jaro-winkler. Callers select them by identifier and may register their own.
//
// The core is single-threaded and cooperative: pool and cache carry no
// internal locking. Callers that share an Engine across goroutines must
// serialize access externally.
package strmetrics
