package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
)

func TestQualityScorer(t *testing.T) {
	scorer := NewQualityScorer(DefaultRules().Quality)

	tests := []struct {
		name        string
		lead        *model.Lead
		wantScore   int
		wantReasons []string
	}{
		{
			name:        "clean lead",
			lead:        &model.Lead{Name: "John Smith", Email: "john@example.com", Phone: "5551234567"},
			wantScore:   0,
			wantReasons: []string{},
		},
		{
			name:      "missing name",
			lead:      &model.Lead{Email: "john@example.com", Phone: "5551234567"},
			wantScore: 20, // invalid name 10 + missing fields 10
			wantReasons: []string{ReasonInvalidName, ReasonMissingFields},
		},
		{
			name:        "single character name",
			lead:        &model.Lead{Name: "J", Email: "john@example.com", Phone: "5551234567"},
			wantScore:   10,
			wantReasons: []string{ReasonInvalidName},
		},
		{
			name:        "gibberish name",
			lead:        &model.Lead{Name: "Test Test", Email: "john@example.com", Phone: "5551234567"},
			wantScore:   10,
			wantReasons: []string{ReasonGibberishName},
		},
		{
			name:      "name with digits",
			lead:      &model.Lead{Name: "John123", Email: "john@example.com", Phone: "5551234567"},
			wantScore: 18, // gibberish substring "123" 10 + digits 8
			wantReasons: []string{ReasonGibberishName, ReasonNameWithDigits},
		},
		{
			name:      "missing email only counts fields once",
			lead:      &model.Lead{Name: "John Smith", Phone: "5551234567"},
			wantScore: 10,
			wantReasons: []string{ReasonMissingFields},
		},
		{
			name:      "everything missing still counts fields once",
			lead:      &model.Lead{},
			wantScore: 20, // invalid name 10 + missing fields 10
			wantReasons: []string{ReasonInvalidName, ReasonMissingFields},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasons := scorer.Score(tt.lead)
			assert.Equal(t, tt.wantScore, score)
			assert.ElementsMatch(t, tt.wantReasons, reasons)
		})
	}
}
