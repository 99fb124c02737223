package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/event"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

func scoredResult(t *testing.T, score int, breakdown valueobject.ScoreBreakdown) *LeadFraudResult {
	t.Helper()
	classification := valueobject.ClassificationFromScore(score, 25, 50)
	result, err := NewLeadFraudResult(Lead{Name: "Synthetic Lead"}, score, classification, nil, breakdown)
	require.NoError(t, err)
	return result
}

func TestNewBatchResult(t *testing.T) {
	results := []*LeadFraudResult{
		scoredResult(t, 0, valueobject.ScoreBreakdown{}),
		scoredResult(t, 55, valueobject.ScoreBreakdown{Contact: 40, Duplicate: 15}),
	}

	batch, err := NewBatchResult(
		"acme-leads", "batch-001", "leads.csv",
		decimal.NewFromFloat(5),
		results,
		1, 50.0,
		valueobject.RefundFull,
		decimal.NewFromInt(10),
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, 2, batch.Total())
	assert.Equal(t, 1, batch.FraudulentCount())
	assert.Equal(t, 1, batch.ValidCount())
	assert.True(t, batch.TotalCost().Equal(decimal.NewFromInt(10)))

	avg := batch.Averages()
	assert.InDelta(t, 27.5, avg.FraudScore, 1e-9) // (0 + 55) / 2
	assert.InDelta(t, 20.0, avg.Contact, 1e-9)    // (0 + 40) / 2
	assert.InDelta(t, 7.5, avg.Duplicate, 1e-9)   // (0 + 15) / 2
}

func TestNewBatchResult_Events(t *testing.T) {
	t.Run("full refund raises high fraud alert", func(t *testing.T) {
		batch, err := NewBatchResult(
			"acme-leads", "batch-001", "leads.csv",
			decimal.NewFromFloat(5), nil,
			0, 30.0, valueobject.RefundFull, decimal.Zero, nil,
		)
		require.NoError(t, err)

		evts := batch.DomainEvents()
		require.Len(t, evts, 2)
		assert.Equal(t, event.EventTypeBatchAnalyzed, evts[0].EventType())
		assert.Equal(t, event.EventTypeHighFraudDetected, evts[1].EventType())

		// Events are cleared once collected
		assert.Empty(t, batch.DomainEvents())
	})

	t.Run("no refund raises analysis event only", func(t *testing.T) {
		batch, err := NewBatchResult(
			"acme-leads", "batch-002", "leads.csv",
			decimal.NewFromFloat(5), nil,
			0, 5.0, valueobject.RefundNone, decimal.Zero, nil,
		)
		require.NoError(t, err)

		evts := batch.DomainEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, event.EventTypeBatchAnalyzed, evts[0].EventType())
	})
}

func TestNewBatchResult_Validation(t *testing.T) {
	valid := func() (string, string, string, decimal.Decimal, []*LeadFraudResult, int, float64, valueobject.RefundStatus, decimal.Decimal, []FraudIndicator) {
		return "acme-leads", "batch-001", "leads.csv", decimal.NewFromFloat(5), nil, 0, 0.0, valueobject.RefundNone, decimal.Zero, nil
	}

	t.Run("missing vendor", func(t *testing.T) {
		_, id, file, cost, results, fc, pct, status, amount, ind := valid()
		_, err := NewBatchResult("", id, file, cost, results, fc, pct, status, amount, ind)
		assert.Error(t, err)
	})

	t.Run("missing identifier", func(t *testing.T) {
		vendor, _, file, cost, results, fc, pct, status, amount, ind := valid()
		_, err := NewBatchResult(vendor, "", file, cost, results, fc, pct, status, amount, ind)
		assert.Error(t, err)
	})

	t.Run("zero refund status", func(t *testing.T) {
		vendor, id, file, cost, results, fc, pct, _, amount, ind := valid()
		_, err := NewBatchResult(vendor, id, file, cost, results, fc, pct, valueobject.RefundStatus{}, amount, ind)
		assert.Error(t, err)
	})

	t.Run("percentage out of range", func(t *testing.T) {
		vendor, id, file, cost, results, fc, _, status, amount, ind := valid()
		_, err := NewBatchResult(vendor, id, file, cost, results, fc, 120.0, status, amount, ind)
		assert.Error(t, err)
	})

	t.Run("fraudulent count exceeds results", func(t *testing.T) {
		vendor, id, file, cost, results, _, pct, status, amount, ind := valid()
		_, err := NewBatchResult(vendor, id, file, cost, results, 3, pct, status, amount, ind)
		assert.Error(t, err)
	})

	t.Run("negative refund amount", func(t *testing.T) {
		vendor, id, file, cost, results, fc, pct, status, _, ind := valid()
		_, err := NewBatchResult(vendor, id, file, cost, results, fc, pct, status, decimal.NewFromInt(-1), ind)
		assert.Error(t, err)
	})
}
