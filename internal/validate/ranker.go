package validate

import (
	"context"
	"sort"

	"mediaresolve/internal/catalog"
	"mediaresolve/internal/logging"
)

// ConfidenceLevel bands a ranked candidate's confidence for presentation.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

const (
	highConfidenceFloor   = 0.85
	mediumConfidenceFloor = 0.65
	// nearTieMargin is the gap at or under which the two best candidates
	// are too close to auto-pick.
	nearTieMargin = 0.15

	yearExactBonus      = 0.20
	yearCloseBonus      = 0.10
	yearMismatchPenalty = 0.15
	popularityBonus     = 0.05
	popularityFloor     = 20.0
	obscurityPenalty    = 0.10
	voteCountBonus      = 0.05
	voteCountFloor      = 1000
	creatorBonus        = 0.25
	creatorPenalty      = 0.30

	// DefaultRankLimit is how many candidates a ranking returns when the
	// caller does not say.
	DefaultRankLimit = 5
)

// Ranked is one scored candidate in a disambiguation ranking.
type Ranked struct {
	Candidate  catalog.Candidate
	Confidence float64
	Level      ConfidenceLevel
}

// Ranking is the ordered outcome of disambiguation scoring.
type Ranking struct {
	Best       *Ranked
	Candidates []Ranked
	// NeedsConfirmation is set when the best candidate is not high
	// confidence, or when the runner-up is a near tie.
	NeedsConfirmation bool
}

// Rank scores every candidate instead of accepting the first passing one,
// for callers that present options to the user.
func (v *Validator) Rank(ctx context.Context, query Query, candidates []catalog.Candidate, limit int) Ranking {
	if limit <= 0 {
		limit = DefaultRankLimit
	}
	credits := newCreditsCache(v.fetchCredits)

	ranked := make([]Ranked, 0, len(candidates))
	for idx := range candidates {
		candidate := candidates[idx]
		confidence := v.rankScore(ctx, query, credits, candidate)
		ranked = append(ranked, Ranked{
			Candidate:  candidate,
			Confidence: confidence,
			Level:      bandConfidence(confidence),
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Confidence > ranked[b].Confidence
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := Ranking{Candidates: ranked}
	if len(ranked) > 0 {
		result.Best = &ranked[0]
		result.NeedsConfirmation = ranked[0].Level != ConfidenceHigh
		if len(ranked) > 1 && nearTie(ranked[0].Confidence, ranked[1].Confidence) {
			result.NeedsConfirmation = true
		}
		v.logger.Debug("ranking complete",
			logging.Int("candidates", len(ranked)),
			logging.Float64("best_confidence", ranked[0].Confidence),
			logging.Bool("needs_confirmation", result.NeedsConfirmation))
	}
	return result
}

func (v *Validator) rankScore(ctx context.Context, query Query, credits *creditsCache, candidate catalog.Candidate) float64 {
	t := v.thresholds
	confidence := bestSimilarity(query.CleanTitle, candidate)

	if query.Year > 0 {
		switch distance := absInt(candidate.Year() - query.Year); {
		case candidate.Year() > 0 && distance == 0:
			confidence += yearExactBonus
		case candidate.Year() > 0 && distance <= t.YearTolerance:
			confidence += yearCloseBonus
		default:
			confidence -= yearMismatchPenalty
		}
	}

	if candidate.Popularity >= popularityFloor {
		confidence += popularityBonus
	} else if candidate.Popularity < t.MinPopularity {
		confidence -= obscurityPenalty
	}
	if candidate.VoteCount >= voteCountFloor {
		confidence += voteCountBonus
	}

	if query.HasCreator() {
		fetched, err := credits.get(ctx, candidate.ID, mediaTypeOf(candidate))
		switch {
		case err != nil || fetched == nil:
			// Cannot verify either way; leave the score alone.
		case creatorVerified(query, fetched, t.TopCastDepth):
			confidence += creatorBonus
		default:
			confidence -= creatorPenalty
		}
	}

	return clampUnit(confidence)
}

func creatorVerified(query Query, credits *catalog.Credits, depth int) bool {
	if query.Director != "" && !matchesDirector(credits, query.Director) {
		return false
	}
	if query.Actor != "" && !matchesCast(credits, query.Actor, depth) {
		return false
	}
	return true
}

// nearTie reports whether the runner-up is within the margin of the best,
// boundary included.
func nearTie(best, runnerUp float64) bool {
	return best-runnerUp <= nearTieMargin
}

func bandConfidence(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= highConfidenceFloor:
		return ConfidenceHigh
	case confidence >= mediumConfidenceFloor:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
