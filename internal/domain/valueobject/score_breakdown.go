package valueobject

// ScoreBreakdown holds the capped per-category sub-scores for one lead. The
// fixed shape makes the 100-point invariant checkable: each field is capped
// at its category maximum before assignment, and the caps sum to 100.
type ScoreBreakdown struct {
	Contact    int `json:"contact"`
	Duplicate  int `json:"duplicate"`
	Geographic int `json:"geographic"`
	Timing     int `json:"timing"`
	Quality    int `json:"quality"`
}

// Total returns the sum of all category sub-scores.
func (b ScoreBreakdown) Total() int {
	return b.Contact + b.Duplicate + b.Geographic + b.Timing + b.Quality
}

// CategoryNames returns the fixed category order used when concatenating
// reasons across categories.
func CategoryNames() []string {
	return []string{"contact", "duplicate", "geographic", "timing", "quality"}
}
