// Package queue implements an ordered-bucket priority queue: a totally
// ordered key maps to a FIFO sequence of values, and PopFirstBack always
// returns the front value of the smallest non-empty key's sequence.
//
// The router pushes many routes that share the same priority score; a
// monotonic key plus FIFO-within-key ordering is what makes routing
// reproducible across runs given the same seed and config.
package queue
