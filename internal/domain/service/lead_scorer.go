package service

import (
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

// LeadScorer composes the five category scorers into one 0..100 fraud score
// per lead. It is a pure function of the lead, its verdicts and the batch
// context: identical inputs always produce an identical score, reasons and
// breakdown.
type LeadScorer struct {
	rules      ScoringRules
	contact    *ContactScorer
	duplicate  *DuplicateScorer
	geographic *GeographicScorer
	timing     *TimingScorer
	quality    *QualityScorer
}

// NewLeadScorer creates a scorer from validated rules.
func NewLeadScorer(rules ScoringRules) *LeadScorer {
	return &LeadScorer{
		rules:      rules,
		contact:    NewContactScorer(rules.Contact),
		duplicate:  NewDuplicateScorer(rules.Duplicate),
		geographic: NewGeographicScorer(rules.Geographic),
		timing:     NewTimingScorer(rules.Timing),
		quality:    NewQualityScorer(rules.Quality),
	}
}

// ScoreLead scores one lead against the precomputed batch context. Category
// sub-scores are capped after summation; reasons for clamped-away points are
// kept, since every triggered rule stays auditable.
func (s *LeadScorer) ScoreLead(lead *model.Lead, verdicts port.Verdicts, ctx *BatchContext) (*model.LeadFraudResult, error) {
	var dupFlags DuplicateFlags
	var timeFlags TimingFlags
	if ctx != nil {
		dupFlags = ctx.Duplicates[lead.ID]
		timeFlags = ctx.Timing[lead.ID]
	}

	contactScore, contactReasons := s.contact.Score(lead, verdicts, dupFlags, ctx)
	dupScore, dupReasons := s.duplicate.Score(dupFlags)
	geoScore, geoReasons := s.geographic.Score(lead, verdicts)
	timingScore, timingReasons := s.timing.Score(timeFlags)
	qualityScore, qualityReasons := s.quality.Score(lead)

	breakdown := valueobject.ScoreBreakdown{
		Contact:    capped(contactScore, s.rules.Contact.Cap),
		Duplicate:  capped(dupScore, s.rules.Duplicate.Cap),
		Geographic: capped(geoScore, s.rules.Geographic.Cap),
		Timing:     capped(timingScore, s.rules.Timing.Cap),
		Quality:    capped(qualityScore, s.rules.Quality.Cap),
	}
	fraudScore := breakdown.Total()

	classification := valueobject.ClassificationFromScore(
		fraudScore,
		s.rules.Classification.SuspiciousMin,
		s.rules.Classification.FraudulentMin,
	)

	// Fixed category order, within-category order preserved, exact repeats
	// removed.
	reasons := dedupe(contactReasons, dupReasons, geoReasons, timingReasons, qualityReasons)

	return model.NewLeadFraudResult(*lead, fraudScore, classification, reasons, breakdown)
}

func capped(score, limit int) int {
	if score > limit {
		return limit
	}
	return score
}

func dedupe(groups ...[]string) []string {
	out := make([]string, 0, 8)
	seen := make(map[string]bool, 8)
	for _, group := range groups {
		for _, reason := range group {
			if seen[reason] {
				continue
			}
			seen[reason] = true
			out = append(out, reason)
		}
	}
	return out
}
