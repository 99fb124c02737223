package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/errs"
)

func TestDefaultRules_Valid(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())

	// Caps 40 + 25 + 15 + 10 + 10 = 100
	sum := rules.Contact.Cap + rules.Duplicate.Cap + rules.Geographic.Cap +
		rules.Timing.Cap + rules.Quality.Cap
	assert.Equal(t, 100, sum)
}

func TestRulesValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *ScoringRules)
	}{
		{
			name:   "negative cap",
			mutate: func(r *ScoringRules) { r.Contact.Cap = -1 },
		},
		{
			name:   "caps exceed 100",
			mutate: func(r *ScoringRules) { r.Contact.Cap = 60 },
		},
		{
			name:   "negative point value",
			mutate: func(r *ScoringRules) { r.Duplicate.ExactDuplicate = -5 },
		},
		{
			name:   "similarity out of range",
			mutate: func(r *ScoringRules) { r.Duplicate.SimilarityThreshold = 150 },
		},
		{
			name:   "repeated contact threshold too low",
			mutate: func(r *ScoringRules) { r.Duplicate.RepeatedContactMin = 1 },
		},
		{
			name:   "empty expected country",
			mutate: func(r *ScoringRules) { r.Geographic.ExpectedCountry = "" },
		},
		{
			name:   "inverted overnight window",
			mutate: func(r *ScoringRules) { r.Timing.OvernightStartHour = 6; r.Timing.OvernightEndHour = 2 },
		},
		{
			name:   "suspicious above fraudulent",
			mutate: func(r *ScoringRules) { r.Classification.SuspiciousMin = 60 },
		},
		{
			name:   "partial refund bound above full",
			mutate: func(r *ScoringRules) { r.Refund.PartialMin = 30 },
		},
		{
			name:   "vendor thresholds not increasing",
			mutate: func(r *ScoringRules) { r.Vendor.Suspend = 10 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)

			err := rules.Validate()
			require.Error(t, err)
			assert.True(t, errs.IsConfigError(err))
		})
	}
}
