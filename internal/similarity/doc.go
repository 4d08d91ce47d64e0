// Package similarity scores how well a candidate catalog title matches a
// normalized query title.
//
// The score blends whole-string edit distance with greedy word-level
// alignment, an order bonus, and length penalties. The greedy first-match
// word alignment is deliberate: its bias is part of the calibrated behavior
// the tier thresholds were tuned against, so it must not be replaced with an
// optimal assignment without re-deriving every threshold.
//
// Scoring is pure and deterministic; there is no I/O anywhere in the package.
package similarity
