// Package queryparse turns noisy, free-text media queries into a clean title
// plus extracted metadata.
//
// Users phrase requests conversationally ("watch Inception (2010)", "find
// something by Christopher Nolan"); the parser strips conversational frames,
// pulls out an explicit year and creator reference, and flags TV-only
// signals so the caller can route the lookup. Parsing is pure: no I/O, no
// error conditions, absent signals simply yield zero values.
package queryparse
