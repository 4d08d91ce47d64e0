package batchinfer

// gateConfidence is the floor above which batch context may reject
// candidates on year, region, or language grounds. Below it the context can
// still inform scoring but must never gate.
const gateConfidence = 0.5

// Context captures what a batch of titles has in common. The zero value is
// the neutral context: nothing inferred, confidence zero, gates disabled.
type Context struct {
	Year        int
	YearMin     int
	YearMax     int
	Language    string
	Region      string
	MediaType   string
	Genre       string
	Description string
	IsUpcoming  bool
	IsClassic   bool
	Confidence  float64
}

// Empty reports whether nothing was inferred.
func (c Context) Empty() bool {
	return c.Confidence == 0
}

// CanGate reports whether the context is trusted enough to reject candidates
// on year, region, or language grounds.
func (c Context) CanGate() bool {
	return c.Confidence > gateConfidence
}

// HasYearRange reports whether a usable inferred year window exists.
func (c Context) HasYearRange() bool {
	return c.YearMin > 0 && c.YearMax >= c.YearMin
}
