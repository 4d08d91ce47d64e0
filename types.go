package mediaresolve

import (
	"mediaresolve/internal/upstream"
)

// Sentinel errors callers can branch on with errors.Is. A nil result with a
// nil error always means "no match", never a failure.
var (
	// ErrUnavailable marks transport failures against the external catalog.
	ErrUnavailable = upstream.ErrUnavailable
	// ErrMalformed marks upstream payloads that could not be decoded.
	ErrMalformed = upstream.ErrMalformed
)

// MatchMethod records how the accepted candidate was matched.
type MatchMethod string

const (
	// MatchExact means the normalized titles were identical.
	MatchExact MatchMethod = "exact"
	// MatchFuzzy means the candidate cleared the similarity gates without an
	// exact title match.
	MatchFuzzy MatchMethod = "fuzzy"
	// MatchBatchContext means year consistency was established from the
	// inferred batch context rather than an explicit hint.
	MatchBatchContext MatchMethod = "batch_context"
)

// Result is the accepted canonical record for a resolved query.
type Result struct {
	CatalogID   int64
	MediaType   string
	Title       string
	Year        int
	Rating      float64
	VoteCount   int64
	Genres      []string
	PosterURL   string
	BackdropURL string
	// MatchConfidence is a 0-100 score derived from the accepted candidate's
	// title similarity, for downstream trust decisions.
	MatchConfidence int
	MatchMethod     MatchMethod
}

// ScoredCandidate is one option in a disambiguation ranking.
type ScoredCandidate struct {
	CatalogID  int64
	MediaType  string
	Title      string
	Year       int
	Popularity float64
	VoteCount  int64
	Confidence float64
	// Level bands Confidence: "high" (>= 0.85), "medium" (>= 0.65), "low".
	Level string
}

// CandidateSet is the outcome of ResolveWithCandidates.
type CandidateSet struct {
	BestMatch  *ScoredCandidate
	Candidates []ScoredCandidate
	// NeedsUserConfirmation is set when the best candidate is not high
	// confidence or the runner-up is a near tie.
	NeedsUserConfirmation bool
}
