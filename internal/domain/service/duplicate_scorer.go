package service

import "fmt"

// DuplicateScorer scores the duplicate category from the detector's flags.
// Exact and near duplicates are mutually exclusive, with exact taking
// precedence; repeated-contact points stack on top before capping.
type DuplicateScorer struct {
	rules DuplicateRules
}

// NewDuplicateScorer creates a scorer for the given rules.
func NewDuplicateScorer(rules DuplicateRules) *DuplicateScorer {
	return &DuplicateScorer{rules: rules}
}

// Score returns the pre-cap duplicate sub-score and its reasons.
func (s *DuplicateScorer) Score(flags DuplicateFlags) (int, []string) {
	score := 0
	reasons := make([]string, 0, 2)

	switch {
	case flags.IsExactDuplicate:
		score += s.rules.ExactDuplicate
		reasons = append(reasons, fmt.Sprintf("%s %s", ReasonExactDuplicatePrefix, flags.DuplicateOf))
	case flags.IsFuzzyDuplicate:
		score += s.rules.NearDuplicate
		reasons = append(reasons, fmt.Sprintf("%s %s (similarity %.0f)", ReasonNearDuplicatePrefix, flags.DuplicateOf, flags.Similarity))
	}

	if flags.RepeatedPhone {
		score += s.rules.RepeatedPhone
		reasons = append(reasons, ReasonRepeatedPhoneBatch)
	}
	if flags.RepeatedEmail {
		score += s.rules.RepeatedEmail
		reasons = append(reasons, ReasonRepeatedEmailBatch)
	}

	return score, reasons
}
