// Package analytics computes alignment statistics from behavior logs.
//
// The engine holds no persistent state of its own: every result is a pure
// function of the behavior logs read from the store at call time. Dates
// with zero logs are omitted from all per-day sequences, never reported as
// zero scores, so sparse days cannot distort a mean.
package analytics
