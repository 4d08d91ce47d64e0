package validate

// Thresholds collects every tunable constant of the validation tiers. The
// defaults are calibrated against the similarity scorer's behavior; adjusting
// one usually requires re-checking the others.
type Thresholds struct {
	// MinTitleSimilarity is the Tier 1 floor.
	MinTitleSimilarity float64
	// YearTolerance is the allowed distance from an explicit year hint.
	YearTolerance int
	// BatchRangeBefore and BatchRangeAfter pad the inferred batch year range
	// on each side before it gates.
	BatchRangeBefore int
	BatchRangeAfter  int
	// MinPopularity and MinVoteCount form the Tier 3 engagement floor; a
	// candidate failing both is treated as a spam or placeholder entry.
	MinPopularity float64
	MinVoteCount  int64
	// ProtectedSimilarity, ProtectedPopularity, and ProtectedVoteCount apply
	// to queries matching a protected franchise fragment.
	ProtectedSimilarity float64
	ProtectedPopularity float64
	ProtectedVoteCount  int64
	// ClassicCutoffYear and ClassicVoteFloor identify high-engagement
	// classics that skip the batch year-range gate. The boundary is inherited
	// behavior, kept overridable rather than re-derived: it moves the
	// accept/reject outcome for borderline classics.
	ClassicCutoffYear int
	ClassicVoteFloor  int64
	// TVLanguageOverride is the similarity at which a TV candidate survives a
	// batch language mismatch anyway.
	TVLanguageOverride float64
	// TopCastDepth is how many billed cast members an actor hint is checked
	// against.
	TopCastDepth int
}

// DefaultThresholds returns the calibrated defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinTitleSimilarity:  0.80,
		YearTolerance:       1,
		BatchRangeBefore:    3,
		BatchRangeAfter:     1,
		MinPopularity:       2,
		MinVoteCount:        15,
		ProtectedSimilarity: 0.90,
		ProtectedPopularity: 10,
		ProtectedVoteCount:  100,
		ClassicCutoffYear:   2010,
		ClassicVoteFloor:    500,
		TVLanguageOverride:  0.85,
		TopCastDepth:        10,
	}
}
