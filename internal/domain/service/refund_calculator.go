package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

// RefundDetermination is the batch-level outcome of the refund policy.
type RefundDetermination struct {
	FraudulentCount int
	FraudPercentage float64
	Status          valueobject.RefundStatus
	Amount          decimal.Decimal
}

// RefundCalculator applies the refund-threshold policy to a scored batch.
// Only FRAUDULENT leads count toward the fraud percentage; SUSPICIOUS is
// informational and never triggers refunds.
type RefundCalculator struct {
	rules RefundRules
}

// NewRefundCalculator creates a calculator for the given rules.
func NewRefundCalculator(rules RefundRules) *RefundCalculator {
	return &RefundCalculator{rules: rules}
}

// Determine computes the fraud percentage and refund for a batch. An empty
// batch yields zero percent and no refund.
func (c *RefundCalculator) Determine(results []*model.LeadFraudResult, costPerLead decimal.Decimal) RefundDetermination {
	total := len(results)
	fraudulent := 0
	for _, r := range results {
		if r.IsFraudulent() {
			fraudulent++
		}
	}

	pct := 0.0
	if total > 0 {
		pct = float64(fraudulent) / float64(total) * 100
	}

	status := valueobject.RefundStatusFromPercentage(pct, c.rules.PartialMin, c.rules.FullMin)
	totalCost := costPerLead.Mul(decimal.NewFromInt(int64(total)))

	var amount decimal.Decimal
	switch {
	case status.Equal(valueobject.RefundFull):
		amount = totalCost
	case status.Equal(valueobject.RefundPartial):
		amount = totalCost.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100))
	default:
		amount = decimal.Zero
	}

	return RefundDetermination{
		FraudulentCount: fraudulent,
		FraudPercentage: pct,
		Status:          status,
		Amount:          amount.Round(2),
	}
}

// BuildIndicators aggregates per-lead reasons into batch fraud indicators,
// ordered by affected-lead count descending, then name for stable output.
// Reasons that embed a lead reference group under their common prefix.
func BuildIndicators(results []*model.LeadFraudResult) []model.FraudIndicator {
	if len(results) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, r := range results {
		seen := make(map[string]bool)
		for _, reason := range r.Reasons() {
			name := IndicatorName(reason)
			if seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	total := float64(len(results))
	indicators := make([]model.FraudIndicator, 0, len(counts))
	for name, count := range counts {
		indicators = append(indicators, model.FraudIndicator{
			Name:          name,
			Category:      CategoryForReason(name),
			AffectedLeads: count,
			Percentage:    float64(count) / total * 100,
		})
	}
	sort.Slice(indicators, func(i, j int) bool {
		if indicators[i].AffectedLeads != indicators[j].AffectedLeads {
			return indicators[i].AffectedLeads > indicators[j].AffectedLeads
		}
		return indicators[i].Name < indicators[j].Name
	})
	return indicators
}
