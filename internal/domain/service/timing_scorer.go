package service

// TimingScorer scores the timing category from the analyzer's batch-level
// flags. The patterns can co-occur; the caller caps the sum.
type TimingScorer struct {
	rules TimingRules
}

// NewTimingScorer creates a scorer for the given rules.
func NewTimingScorer(rules TimingRules) *TimingScorer {
	return &TimingScorer{rules: rules}
}

// Score returns the pre-cap timing sub-score and its reasons.
func (s *TimingScorer) Score(flags TimingFlags) (int, []string) {
	score := 0
	reasons := make([]string, 0, 1)

	if flags.BotPattern {
		score += s.rules.BotPattern
		reasons = append(reasons, ReasonBotPattern)
	}
	if flags.HighVelocity {
		score += s.rules.HighVelocity
		reasons = append(reasons, ReasonHighVelocity)
	}
	if flags.OvernightSpike {
		score += s.rules.OvernightSpike
		reasons = append(reasons, ReasonOvernightSpike)
	}

	return score, reasons
}
