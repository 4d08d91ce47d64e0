package validate

import (
	"context"
	"log/slog"
	"strings"

	"mediaresolve/internal/batchinfer"
	"mediaresolve/internal/catalog"
	"mediaresolve/internal/langutil"
	"mediaresolve/internal/logging"
	"mediaresolve/internal/similarity"
)

// Query carries the normalized query signals the tiers gate on.
type Query struct {
	CleanTitle string
	Year       int
	Director   string
	Actor      string
	// TVPath marks queries routed to the TV search, which enables the
	// language-consistency tier.
	TVPath bool
}

// HasCreator reports whether any creator hint was extracted.
func (q Query) HasCreator() bool {
	return q.Director != "" || q.Actor != ""
}

// Match is an accepted candidate together with the evidence that accepted it.
type Match struct {
	Candidate  catalog.Candidate
	Similarity float64
	// UsedBatchContext is set when Tier 2 passage relied on the inferred
	// batch year rather than an explicit query hint.
	UsedBatchContext bool
}

// CreditsFetcher resolves the credited director and cast for a candidate.
// It is invoked lazily, only when a creator hint must be verified.
type CreditsFetcher func(ctx context.Context, id int64, mediaType string) (*catalog.Credits, error)

// Validator applies the tier sequence to candidate lists.
type Validator struct {
	thresholds   Thresholds
	fetchCredits CreditsFetcher
	logger       *slog.Logger
}

// New constructs a Validator. fetchCredits may be nil when the caller never
// supplies creator hints (every creator-hinted query then fails Tier 4, since
// an unverifiable creator claim must not silently succeed).
func New(thresholds Thresholds, fetchCredits CreditsFetcher, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Validator{
		thresholds:   thresholds,
		fetchCredits: fetchCredits,
		logger:       logging.NewComponentLogger(logger, "validate"),
	}
}

// Validate returns the first candidate surviving every applicable tier, or
// nil when none does. Candidates are assumed pre-sorted by the catalog's own
// relevance; evaluation stops at the first pass.
func (v *Validator) Validate(ctx context.Context, query Query, batch batchinfer.Context, candidates []catalog.Candidate) *Match {
	fragment := protectedFragment(query.CleanTitle)
	credits := newCreditsCache(v.fetchCredits)

	for idx := range candidates {
		candidate := candidates[idx]
		match, tier := v.evaluate(ctx, query, batch, fragment, credits, candidate)
		if match != nil {
			v.logger.Debug("candidate accepted",
				logging.Int("rank", idx),
				logging.Int64("catalog_id", candidate.ID),
				logging.String("title", candidate.PrimaryTitle()),
				logging.Float64("similarity", match.Similarity),
				logging.Bool("used_batch_context", match.UsedBatchContext))
			return match
		}
		v.logger.Debug("candidate rejected",
			logging.Int("rank", idx),
			logging.Int64("catalog_id", candidate.ID),
			logging.String("title", candidate.PrimaryTitle()),
			logging.String("tier", tier))
	}
	return nil
}

// evaluate runs one candidate through the tiers. It returns the match, or
// nil and the name of the tier that rejected.
func (v *Validator) evaluate(ctx context.Context, query Query, batch batchinfer.Context, fragment string, credits *creditsCache, candidate catalog.Candidate) (*Match, string) {
	t := v.thresholds

	// Tier 1: title similarity floor against both title forms.
	sim := bestSimilarity(query.CleanTitle, candidate)
	if sim < t.MinTitleSimilarity {
		return nil, "title_similarity"
	}

	// Tier 2: year consistency. An explicit hint (query or single trusted
	// batch year) gates hard; an inferred batch range gates only at high
	// batch confidence and never gates classics.
	usedBatchContext := false
	yearHint := query.Year
	if yearHint == 0 && batch.CanGate() && batch.Year > 0 {
		yearHint = batch.Year
		usedBatchContext = true
	}
	candidateYear := candidate.Year()
	switch {
	case yearHint > 0:
		if candidateYear == 0 || absInt(candidateYear-yearHint) > t.YearTolerance {
			return nil, "year"
		}
	case batch.CanGate() && batch.HasYearRange():
		classic := batch.IsClassic ||
			(candidateYear > 0 && candidateYear < t.ClassicCutoffYear && candidate.VoteCount > t.ClassicVoteFloor)
		if !classic && candidateYear > 0 {
			if candidateYear < batch.YearMin-t.BatchRangeBefore || candidateYear > batch.YearMax+t.BatchRangeAfter {
				return nil, "year_range"
			}
			usedBatchContext = true
		}
	}

	// Tier 3: engagement floor against spam and placeholder records.
	if candidate.Popularity < t.MinPopularity && candidate.VoteCount < t.MinVoteCount {
		return nil, "engagement"
	}

	// Tier 3.5: protected franchise names get a stricter gate.
	if fragment != "" {
		if !containsFragment(candidate.PrimaryTitle(), fragment) && !containsFragment(candidate.NativeTitle(), fragment) {
			return nil, "protected_fragment"
		}
		if sim < t.ProtectedSimilarity {
			return nil, "protected_similarity"
		}
		if candidate.Popularity < t.ProtectedPopularity && candidate.VoteCount < t.ProtectedVoteCount {
			return nil, "protected_engagement"
		}
	}

	// Tier 4: creator verification, only when a hint was extracted. A failed
	// credits fetch fails the tier: the claim cannot be verified.
	if query.HasCreator() {
		fetched, err := credits.get(ctx, candidate.ID, mediaTypeOf(candidate))
		if err != nil || fetched == nil {
			return nil, "creator_unverifiable"
		}
		if query.Director != "" && !matchesDirector(fetched, query.Director) {
			return nil, "creator_director"
		}
		if query.Actor != "" && !matchesCast(fetched, query.Actor, t.TopCastDepth) {
			return nil, "creator_actor"
		}
	}

	// TV path: language consistency with the batch's inferred region.
	if query.TVPath && batch.CanGate() && batch.Region != "" && batch.Language != "" {
		if !langutil.Match(batch.Language, candidate.OriginalLanguage) && sim < t.TVLanguageOverride {
			return nil, "language"
		}
	}

	return &Match{
		Candidate:        candidate,
		Similarity:       sim,
		UsedBatchContext: usedBatchContext,
	}, ""
}

// bestSimilarity scores against both the display and original title and takes
// the max.
func bestSimilarity(cleanTitle string, candidate catalog.Candidate) float64 {
	score := similarity.Score(cleanTitle, candidate.PrimaryTitle())
	if native := similarity.Score(cleanTitle, candidate.NativeTitle()); native > score {
		score = native
	}
	return score
}

func mediaTypeOf(candidate catalog.Candidate) string {
	if candidate.MediaType == catalog.MediaTypeTV {
		return catalog.MediaTypeTV
	}
	return catalog.MediaTypeMovie
}

func matchesDirector(credits *catalog.Credits, hint string) bool {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return false
	}
	for _, name := range credits.Directors() {
		if strings.Contains(strings.ToLower(name), hint) {
			return true
		}
	}
	return false
}

func matchesCast(credits *catalog.Credits, hint string, depth int) bool {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return false
	}
	for _, name := range credits.TopCast(depth) {
		if strings.Contains(strings.ToLower(name), hint) {
			return true
		}
	}
	return false
}

// creditsCache memoizes credits lookups per candidate within one validation
// call, so ranking and validation never fetch the same entity twice.
type creditsCache struct {
	fetch   CreditsFetcher
	entries map[int64]creditsEntry
}

type creditsEntry struct {
	credits *catalog.Credits
	err     error
}

func newCreditsCache(fetch CreditsFetcher) *creditsCache {
	return &creditsCache{fetch: fetch, entries: map[int64]creditsEntry{}}
}

func (c *creditsCache) get(ctx context.Context, id int64, mediaType string) (*catalog.Credits, error) {
	if entry, ok := c.entries[id]; ok {
		return entry.credits, entry.err
	}
	if c.fetch == nil {
		c.entries[id] = creditsEntry{}
		return nil, nil
	}
	credits, err := c.fetch(ctx, id, mediaType)
	c.entries[id] = creditsEntry{credits: credits, err: err}
	return credits, err
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
