package service

import (
	"strings"
	"unicode"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
)

// QualityScorer scores the data-quality category: name plausibility and
// missing critical fields. Missing fields count once regardless of how many
// are absent, since the contact category already penalizes each gap.
type QualityScorer struct {
	rules QualityRules
}

// NewQualityScorer creates a scorer for the given rules.
func NewQualityScorer(rules QualityRules) *QualityScorer {
	return &QualityScorer{rules: rules}
}

// Score returns the pre-cap quality sub-score and its reasons.
func (s *QualityScorer) Score(lead *model.Lead) (int, []string) {
	score := 0
	reasons := make([]string, 0, 2)

	name := lead.NormalizedName()
	if len(name) < 2 {
		score += s.rules.InvalidName
		reasons = append(reasons, ReasonInvalidName)
	} else {
		if s.isGibberish(name) {
			score += s.rules.GibberishName
			reasons = append(reasons, ReasonGibberishName)
		}
		if containsDigit(name) {
			score += s.rules.NameWithDigits
			reasons = append(reasons, ReasonNameWithDigits)
		}
	}

	if name == "" || lead.Email == "" || lead.Phone == "" {
		score += s.rules.MissingFields
		reasons = append(reasons, ReasonMissingFields)
	}

	return score, reasons
}

func (s *QualityScorer) isGibberish(normalizedName string) bool {
	for _, pattern := range s.rules.GibberishNames {
		if strings.Contains(normalizedName, pattern) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
