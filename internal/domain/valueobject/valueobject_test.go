package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

func TestClassificationFromScore_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  valueobject.Classification
	}{
		{0, valueobject.ClassificationValid},
		{24, valueobject.ClassificationValid},
		{25, valueobject.ClassificationSuspicious},
		{49, valueobject.ClassificationSuspicious},
		{50, valueobject.ClassificationFraudulent},
		{100, valueobject.ClassificationFraudulent},
	}
	for _, tt := range tests {
		got := valueobject.ClassificationFromScore(tt.score, 25, 50)
		assert.True(t, got.Equal(tt.want), "score %d: got %s, want %s", tt.score, got, tt.want)
	}
}

func TestClassificationFromString_RejectsUnknown(t *testing.T) {
	_, err := valueobject.ClassificationFromString("BOGUS")
	require.Error(t, err)
}

func TestRefundStatusFromPercentage_Boundaries(t *testing.T) {
	tests := []struct {
		pct  float64
		want valueobject.RefundStatus
	}{
		{0, valueobject.RefundNone},
		{14.9, valueobject.RefundNone},
		{15, valueobject.RefundPartial},
		{24.9, valueobject.RefundPartial},
		{25, valueobject.RefundFull},
		{100, valueobject.RefundFull},
	}
	for _, tt := range tests {
		got := valueobject.RefundStatusFromPercentage(tt.pct, 15, 25)
		assert.True(t, got.Equal(tt.want), "pct %.1f: got %s, want %s", tt.pct, got, tt.want)
	}
}

func TestVendorStatusFromRate_Boundaries(t *testing.T) {
	thresholds := valueobject.DefaultStatusThresholds()
	tests := []struct {
		rate float64
		want valueobject.VendorStatus
	}{
		{0, valueobject.VendorActive},
		{19.9, valueobject.VendorActive},
		{20, valueobject.VendorWarning},
		{29.9, valueobject.VendorWarning},
		{30, valueobject.VendorSuspended},
		{39.9, valueobject.VendorSuspended},
		{40, valueobject.VendorBlacklisted},
		{95, valueobject.VendorBlacklisted},
	}
	for _, tt := range tests {
		got := valueobject.VendorStatusFromRate(tt.rate, thresholds)
		assert.True(t, got.Equal(tt.want), "rate %.1f: got %s, want %s", tt.rate, got, tt.want)
	}
}

func TestScoreBreakdownTotal(t *testing.T) {
	b := valueobject.ScoreBreakdown{Contact: 10, Duplicate: 15, Geographic: 8, Timing: 5, Quality: 10}
	assert.Equal(t, 48, b.Total())
}
