// Package batchinfer derives shared characteristics from a batch of titles
// submitted for resolution together.
//
// A batch of related titles carries signal no single title has: a likely
// release window, a language, a media type. The inferencer asks the semantic
// classifier first and falls back to statistical aggregation over quick
// catalog lookups when the classifier is unavailable or answers garbage.
//
// The resulting Context is a plain value threaded through the per-title
// validation calls of one batch. It is never stored or shared between
// batches, which is what keeps sequential resolutions from observing each
// other's context.
package batchinfer
