// Package classify calls the external semantic classification service to
// describe what a batch of titles has in common.
//
// It is the primary inference path for batch context; its unavailability is
// an ordinary condition the caller handles by falling back to statistical
// aggregation, so every failure is tagged with an upstream sentinel rather
// than surfaced raw.
package classify
