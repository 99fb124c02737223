package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/event"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/events"
)

// VendorProfile is the aggregate root tracking one lead vendor across all of
// its analyzed batches. The average fraud rate is the mean of per-batch fraud
// percentages, so a small batch counts as much as a large one.
type VendorProfile struct {
	id               uuid.UUID
	name             string
	totalBatches     int
	totalLeads       int
	fraudulentLeads  int
	rateSum          float64
	averageFraudRate float64
	totalRefunds     decimal.Decimal
	status           valueobject.VendorStatus
	createdAt        time.Time
	updatedAt        time.Time
	domainEvents     []events.DomainEvent
}

// NewVendorProfile creates a fresh vendor with no history and active status.
func NewVendorProfile(name string) (*VendorProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("vendor name is required")
	}
	now := time.Now().UTC()
	return &VendorProfile{
		id:           uuid.New(),
		name:         name,
		totalRefunds: decimal.Zero,
		status:       valueobject.VendorActive,
		createdAt:    now,
		updatedAt:    now,
		domainEvents: make([]events.DomainEvent, 0),
	}, nil
}

// ReconstructVendorProfile rebuilds a VendorProfile from persisted data.
func ReconstructVendorProfile(
	id uuid.UUID,
	name string,
	totalBatches int,
	totalLeads int,
	fraudulentLeads int,
	rateSum float64,
	averageFraudRate float64,
	totalRefunds decimal.Decimal,
	status valueobject.VendorStatus,
	createdAt time.Time,
	updatedAt time.Time,
) *VendorProfile {
	return &VendorProfile{
		id:               id,
		name:             name,
		totalBatches:     totalBatches,
		totalLeads:       totalLeads,
		fraudulentLeads:  fraudulentLeads,
		rateSum:          rateSum,
		averageFraudRate: averageFraudRate,
		totalRefunds:     totalRefunds,
		status:           status,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		domainEvents:     make([]events.DomainEvent, 0),
	}
}

// Fold incorporates a completed batch into the vendor's running totals,
// recomputes the batch-mean fraud rate and re-derives the status. A status
// transition raises a VendorStatusChanged event.
func (v *VendorProfile) Fold(batch *BatchResult, thresholds valueobject.StatusThresholds) error {
	if batch == nil {
		return fmt.Errorf("batch is required")
	}
	if batch.VendorName() != v.name {
		return fmt.Errorf("batch belongs to vendor %q, not %q", batch.VendorName(), v.name)
	}

	v.totalBatches++
	v.totalLeads += batch.Total()
	v.fraudulentLeads += batch.FraudulentCount()
	v.rateSum += batch.FraudPercentage()
	v.averageFraudRate = v.rateSum / float64(v.totalBatches)
	v.totalRefunds = v.totalRefunds.Add(batch.RefundAmount())
	v.updatedAt = time.Now().UTC()

	v.rederiveStatus(thresholds)
	return nil
}

// Unfold backs a previously folded batch out of the running totals. Used when
// a batch identifier is re-analyzed so its earlier result does not count
// twice.
func (v *VendorProfile) Unfold(batch *BatchResult, thresholds valueobject.StatusThresholds) error {
	if batch == nil {
		return fmt.Errorf("batch is required")
	}
	if batch.VendorName() != v.name {
		return fmt.Errorf("batch belongs to vendor %q, not %q", batch.VendorName(), v.name)
	}
	if v.totalBatches == 0 {
		return fmt.Errorf("vendor %q has no folded batches", v.name)
	}

	v.totalBatches--
	v.totalLeads -= batch.Total()
	v.fraudulentLeads -= batch.FraudulentCount()
	v.rateSum -= batch.FraudPercentage()
	if v.totalBatches == 0 {
		v.rateSum = 0
		v.averageFraudRate = 0
	} else {
		v.averageFraudRate = v.rateSum / float64(v.totalBatches)
	}
	v.totalRefunds = v.totalRefunds.Sub(batch.RefundAmount())
	v.updatedAt = time.Now().UTC()

	v.rederiveStatus(thresholds)
	return nil
}

func (v *VendorProfile) rederiveStatus(thresholds valueobject.StatusThresholds) {
	newStatus := valueobject.VendorStatusFromRate(v.averageFraudRate, thresholds)
	if newStatus.Equal(v.status) {
		return
	}
	v.domainEvents = append(v.domainEvents, event.VendorStatusChanged{
		VendorID:         v.id,
		VendorName:       v.name,
		OldStatus:        v.status.String(),
		NewStatus:        newStatus.String(),
		AverageFraudRate: v.averageFraudRate,
		ChangedAt:        v.updatedAt,
	})
	v.status = newStatus
}

// --- Accessors ---

func (v *VendorProfile) ID() uuid.UUID                      { return v.id }
func (v *VendorProfile) Name() string                       { return v.name }
func (v *VendorProfile) TotalBatches() int                  { return v.totalBatches }
func (v *VendorProfile) TotalLeads() int                    { return v.totalLeads }
func (v *VendorProfile) FraudulentLeads() int               { return v.fraudulentLeads }
func (v *VendorProfile) RateSum() float64                   { return v.rateSum }
func (v *VendorProfile) AverageFraudRate() float64          { return v.averageFraudRate }
func (v *VendorProfile) TotalRefunds() decimal.Decimal      { return v.totalRefunds }
func (v *VendorProfile) Status() valueobject.VendorStatus   { return v.status }
func (v *VendorProfile) CreatedAt() time.Time               { return v.createdAt }
func (v *VendorProfile) UpdatedAt() time.Time               { return v.updatedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (v *VendorProfile) DomainEvents() []events.DomainEvent {
	evts := v.domainEvents
	v.domainEvents = make([]events.DomainEvent, 0)
	return evts
}
