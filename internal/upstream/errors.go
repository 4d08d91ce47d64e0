// Package upstream defines the shared failure taxonomy for external
// collaborators (the media catalog and the semantic classifier).
//
// Callers branch on the sentinels with errors.Is: ErrUnavailable means the
// service could not be reached or answered outside 2xx, ErrMalformed means it
// answered with something that could not be decoded. Both are recoverable at
// the call site wherever a degradation path exists; neither should surface to
// library consumers as anything other than a degraded result.
package upstream

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable marks network errors, timeouts, and non-2xx responses.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrMalformed marks responses that arrived but could not be decoded.
	ErrMalformed = errors.New("malformed upstream response")
)

// Wrap tags err with the provided marker and operation context. The marker
// should be one of the exported sentinels above.
func Wrap(marker error, op string, err error) error {
	op = strings.TrimSpace(op)
	if marker == nil {
		marker = ErrUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, op, err)
	}
	return fmt.Errorf("%w: %s", marker, op)
}
