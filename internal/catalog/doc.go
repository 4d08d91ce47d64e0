// Package catalog provides access to the external media catalog API (TMDB
// wire shape) for text searches, credits, and image lookups.
//
// Every response is decoded into explicit typed records at this boundary so
// scoring code never sees raw maps or missing fields. Transport failures and
// non-2xx statuses are tagged upstream.ErrUnavailable; transient statuses are
// retried with bounded backoff before the error is surfaced.
package catalog
