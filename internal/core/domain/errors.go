package domain

import "errors"

var (
	// ErrInvalidMode indicates an unrecognized execution mode.
	ErrInvalidMode = errors.New("strmetrics: invalid execution mode")

	// ErrLengthMismatch indicates a pairwise run over sequences of unequal
	// cardinality, or a strict Hamming comparison of strings with different
	// lengths and no pad policy configured.
	ErrLengthMismatch = errors.New("strmetrics: input lengths do not match")

	// ErrNotRun indicates that results were requested before a successful
	// Run.
	ErrNotRun = errors.New("strmetrics: results requested before run")
)
