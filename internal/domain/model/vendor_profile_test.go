package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/event"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

func batchWithRate(t *testing.T, vendor string, pct float64, refund decimal.Decimal) *BatchResult {
	t.Helper()
	status := valueobject.RefundStatusFromPercentage(pct, 15, 25)
	batch, err := NewBatchResult(vendor, "batch-x", "leads.csv", decimal.NewFromFloat(5), nil, 0, pct, status, refund, nil)
	require.NoError(t, err)
	batch.DomainEvents() // drain creation events
	return batch
}

func TestVendorProfile_FoldComputesBatchMeanRate(t *testing.T) {
	vendor, err := NewVendorProfile("acme-leads")
	require.NoError(t, err)
	thresholds := valueobject.DefaultStatusThresholds()

	for _, pct := range []float64{10, 15, 45} {
		require.NoError(t, vendor.Fold(batchWithRate(t, "acme-leads", pct, decimal.Zero), thresholds))
	}

	// (10 + 15 + 45) / 3 = 23.33, inside the warning band [20, 30)
	assert.Equal(t, 3, vendor.TotalBatches())
	assert.InDelta(t, 23.33, vendor.AverageFraudRate(), 0.01)
	assert.True(t, vendor.Status().Equal(valueobject.VendorWarning))
}

func TestVendorProfile_StatusTransitionEmitsEvent(t *testing.T) {
	vendor, err := NewVendorProfile("acme-leads")
	require.NoError(t, err)
	thresholds := valueobject.DefaultStatusThresholds()

	require.NoError(t, vendor.Fold(batchWithRate(t, "acme-leads", 50, decimal.NewFromInt(500)), thresholds))

	assert.True(t, vendor.Status().Equal(valueobject.VendorBlacklisted))
	evts := vendor.DomainEvents()
	require.Len(t, evts, 1)

	changed, ok := evts[0].(event.VendorStatusChanged)
	require.True(t, ok)
	assert.Equal(t, "active", changed.OldStatus)
	assert.Equal(t, "blacklisted", changed.NewStatus)
	assert.InDelta(t, 50.0, changed.AverageFraudRate, 1e-9)

	// A second fold at the same level does not re-announce the status
	require.NoError(t, vendor.Fold(batchWithRate(t, "acme-leads", 50, decimal.Zero), thresholds))
	assert.Empty(t, vendor.DomainEvents())
}

func TestVendorProfile_FoldAccumulatesRefunds(t *testing.T) {
	vendor, err := NewVendorProfile("acme-leads")
	require.NoError(t, err)
	thresholds := valueobject.DefaultStatusThresholds()

	require.NoError(t, vendor.Fold(batchWithRate(t, "acme-leads", 30, decimal.NewFromInt(300)), thresholds))
	require.NoError(t, vendor.Fold(batchWithRate(t, "acme-leads", 20, decimal.NewFromInt(150)), thresholds))

	assert.True(t, vendor.TotalRefunds().Equal(decimal.NewFromInt(450)))
}

func TestVendorProfile_UnfoldReversesFold(t *testing.T) {
	vendor, err := NewVendorProfile("acme-leads")
	require.NoError(t, err)
	thresholds := valueobject.DefaultStatusThresholds()

	first := batchWithRate(t, "acme-leads", 60, decimal.NewFromInt(300))
	require.NoError(t, vendor.Fold(batchWithRate(t, "acme-leads", 10, decimal.Zero), thresholds))
	require.NoError(t, vendor.Fold(first, thresholds))
	assert.True(t, vendor.Status().Equal(valueobject.VendorSuspended))
	vendor.DomainEvents()

	// Backing out the bad batch restores the earlier totals and re-derives
	// the status, announcing the transition back down
	require.NoError(t, vendor.Unfold(first, thresholds))

	assert.Equal(t, 1, vendor.TotalBatches())
	assert.InDelta(t, 10.0, vendor.AverageFraudRate(), 1e-9)
	assert.True(t, vendor.TotalRefunds().Equal(decimal.Zero))
	assert.True(t, vendor.Status().Equal(valueobject.VendorActive))
	assert.Len(t, vendor.DomainEvents(), 1)
}

func TestVendorProfile_UnfoldLastBatchZeroesRate(t *testing.T) {
	vendor, err := NewVendorProfile("acme-leads")
	require.NoError(t, err)
	thresholds := valueobject.DefaultStatusThresholds()

	batch := batchWithRate(t, "acme-leads", 30, decimal.NewFromInt(150))
	require.NoError(t, vendor.Fold(batch, thresholds))
	require.NoError(t, vendor.Unfold(batch, thresholds))

	assert.Equal(t, 0, vendor.TotalBatches())
	assert.Zero(t, vendor.AverageFraudRate())
	assert.True(t, vendor.Status().Equal(valueobject.VendorActive))

	// Nothing left to back out
	assert.Error(t, vendor.Unfold(batch, thresholds))
}

func TestVendorProfile_FoldRejectsForeignBatch(t *testing.T) {
	vendor, err := NewVendorProfile("acme-leads")
	require.NoError(t, err)

	other := batchWithRate(t, "other-vendor", 10, decimal.Zero)
	assert.Error(t, vendor.Fold(other, valueobject.DefaultStatusThresholds()))
	assert.Equal(t, 0, vendor.TotalBatches())
}

func TestNewVendorProfile_RequiresName(t *testing.T) {
	_, err := NewVendorProfile("")
	assert.Error(t, err)
}
