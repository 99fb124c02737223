package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

func makeResults(t *testing.T, total, fraudulent int) []*model.LeadFraudResult {
	t.Helper()
	require.LessOrEqual(t, fraudulent, total)

	results := make([]*model.LeadFraudResult, 0, total)
	for i := 0; i < total; i++ {
		score := 0
		classification := valueobject.ClassificationValid
		breakdown := valueobject.ScoreBreakdown{}
		if i < fraudulent {
			// Contact 40 + duplicate 15 = 55, safely FRAUDULENT
			score = 55
			classification = valueobject.ClassificationFraudulent
			breakdown = valueobject.ScoreBreakdown{Contact: 40, Duplicate: 15}
		}
		result, err := model.NewLeadFraudResult(
			model.Lead{Name: "Synthetic Lead"},
			score,
			classification,
			nil,
			breakdown,
		)
		require.NoError(t, err)
		results = append(results, result)
	}
	return results
}

func TestRefundCalculator_EmptyBatch(t *testing.T) {
	calc := NewRefundCalculator(DefaultRules().Refund)

	d := calc.Determine(nil, decimal.NewFromFloat(5))

	assert.Equal(t, 0, d.FraudulentCount)
	assert.Equal(t, 0.0, d.FraudPercentage)
	assert.True(t, d.Status.Equal(valueobject.RefundNone))
	assert.True(t, d.Amount.IsZero())
}

func TestRefundCalculator_FullRefund(t *testing.T) {
	calc := NewRefundCalculator(DefaultRules().Refund)
	results := makeResults(t, 200, 65)

	d := calc.Determine(results, decimal.NewFromFloat(5))

	// 65/200 = 32.5% ≥ 25% full-refund threshold
	assert.Equal(t, 65, d.FraudulentCount)
	assert.InDelta(t, 32.5, d.FraudPercentage, 1e-9)
	assert.True(t, d.Status.Equal(valueobject.RefundFull))
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(1000)), "got %s", d.Amount)
}

func TestRefundCalculator_PartialRefund(t *testing.T) {
	calc := NewRefundCalculator(DefaultRules().Refund)
	results := makeResults(t, 500, 95)

	d := calc.Determine(results, decimal.NewFromFloat(2))

	// 95/500 = 19.0%, pro-rata on a $1000 batch
	assert.InDelta(t, 19.0, d.FraudPercentage, 1e-9)
	assert.True(t, d.Status.Equal(valueobject.RefundPartial))
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(190)), "got %s", d.Amount)
}

func TestRefundCalculator_NoRefund(t *testing.T) {
	calc := NewRefundCalculator(DefaultRules().Refund)
	results := makeResults(t, 1000, 120)

	d := calc.Determine(results, decimal.NewFromFloat(3))

	// 12.0% < 15% partial threshold
	assert.InDelta(t, 12.0, d.FraudPercentage, 1e-9)
	assert.True(t, d.Status.Equal(valueobject.RefundNone))
	assert.True(t, d.Amount.IsZero())
}

func TestRefundCalculator_SuspiciousDoesNotCount(t *testing.T) {
	calc := NewRefundCalculator(DefaultRules().Refund)

	suspicious, err := model.NewLeadFraudResult(
		model.Lead{Name: "Borderline Lead"},
		30,
		valueobject.ClassificationSuspicious,
		nil,
		valueobject.ScoreBreakdown{Contact: 30},
	)
	require.NoError(t, err)

	d := calc.Determine([]*model.LeadFraudResult{suspicious}, decimal.NewFromFloat(5))

	assert.Equal(t, 0, d.FraudulentCount)
	assert.True(t, d.Status.Equal(valueobject.RefundNone))
}

func TestBuildIndicators(t *testing.T) {
	mk := func(reasons []string) *model.LeadFraudResult {
		result, err := model.NewLeadFraudResult(
			model.Lead{Name: "Synthetic Lead"},
			10,
			valueobject.ClassificationValid,
			reasons,
			valueobject.ScoreBreakdown{Contact: 10},
		)
		require.NoError(t, err)
		return result
	}

	results := []*model.LeadFraudResult{
		mk([]string{ReasonMissingPhone, ReasonDisposableEmail}),
		mk([]string{ReasonMissingPhone, "Exact duplicate of lead aaaa"}),
		mk([]string{ReasonMissingPhone, "Exact duplicate of lead bbbb"}),
		mk([]string{}),
	}

	indicators := BuildIndicators(results)
	require.Len(t, indicators, 3)

	// Ordered by affected-lead count, then name
	assert.Equal(t, ReasonMissingPhone, indicators[0].Name)
	assert.Equal(t, "contact", indicators[0].Category)
	assert.Equal(t, 3, indicators[0].AffectedLeads)
	assert.InDelta(t, 75.0, indicators[0].Percentage, 1e-9)

	// Per-lead duplicate references collapse into one indicator
	assert.Equal(t, ReasonExactDuplicatePrefix, indicators[1].Name)
	assert.Equal(t, "duplicate", indicators[1].Category)
	assert.Equal(t, 2, indicators[1].AffectedLeads)

	assert.Equal(t, ReasonDisposableEmail, indicators[2].Name)
	assert.Equal(t, 1, indicators[2].AffectedLeads)
}

func TestBuildIndicators_Empty(t *testing.T) {
	assert.Nil(t, BuildIndicators(nil))
}
