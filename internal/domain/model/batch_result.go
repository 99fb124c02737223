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

// FraudIndicator summarizes one triggered rule across a batch: how many
// leads it affected and what share of the batch that is.
type FraudIndicator struct {
	Name          string
	Category      string
	AffectedLeads int
	Percentage    float64
}

// CategoryAverages holds the mean fraud score and mean per-category
// sub-scores across a batch.
type CategoryAverages struct {
	FraudScore float64
	Contact    float64
	Duplicate  float64
	Geographic float64
	Timing     float64
	Quality    float64
}

// BatchResult is the aggregate root for one completed batch analysis. It is
// created from a finished set of LeadFraudResults and never mutated.
type BatchResult struct {
	id              uuid.UUID
	vendorName      string
	identifier      string
	inputFilename   string
	costPerLead     decimal.Decimal
	totalCost       decimal.Decimal
	results         []*LeadFraudResult
	total           int
	fraudulentCount int
	fraudPercentage float64
	refundStatus    valueobject.RefundStatus
	refundAmount    decimal.Decimal
	averages        CategoryAverages
	indicators      []FraudIndicator
	analyzedAt      time.Time
	domainEvents    []events.DomainEvent
}

// NewBatchResult creates a batch aggregate from scored leads and the refund
// determination computed by the batch aggregator.
func NewBatchResult(
	vendorName string,
	identifier string,
	inputFilename string,
	costPerLead decimal.Decimal,
	results []*LeadFraudResult,
	fraudulentCount int,
	fraudPercentage float64,
	refundStatus valueobject.RefundStatus,
	refundAmount decimal.Decimal,
	indicators []FraudIndicator,
) (*BatchResult, error) {
	if vendorName == "" {
		return nil, fmt.Errorf("vendor name is required")
	}
	if identifier == "" {
		return nil, fmt.Errorf("batch identifier is required")
	}
	if refundStatus.IsZero() {
		return nil, fmt.Errorf("refund status is required")
	}
	if fraudPercentage < 0 || fraudPercentage > 100 {
		return nil, fmt.Errorf("fraud percentage must be between 0 and 100, got %v", fraudPercentage)
	}
	if fraudulentCount < 0 || fraudulentCount > len(results) {
		return nil, fmt.Errorf("fraudulent count %d out of range for %d results", fraudulentCount, len(results))
	}
	if refundAmount.IsNegative() {
		return nil, fmt.Errorf("refund amount must not be negative")
	}
	if costPerLead.IsNegative() {
		return nil, fmt.Errorf("cost per lead must not be negative")
	}

	if results == nil {
		results = make([]*LeadFraudResult, 0)
	}
	if indicators == nil {
		indicators = make([]FraudIndicator, 0)
	}

	b := &BatchResult{
		id:              uuid.New(),
		vendorName:      vendorName,
		identifier:      identifier,
		inputFilename:   inputFilename,
		costPerLead:     costPerLead,
		totalCost:       costPerLead.Mul(decimal.NewFromInt(int64(len(results)))),
		results:         results,
		total:           len(results),
		fraudulentCount: fraudulentCount,
		fraudPercentage: fraudPercentage,
		refundStatus:    refundStatus,
		refundAmount:    refundAmount,
		averages:        computeAverages(results),
		indicators:      indicators,
		analyzedAt:      time.Now().UTC(),
	}

	b.domainEvents = append(b.domainEvents, event.BatchAnalyzed{
		BatchID:         b.id,
		BatchIdentifier: b.identifier,
		VendorName:      b.vendorName,
		TotalLeads:      len(b.results),
		FraudulentLeads: b.fraudulentCount,
		FraudPercentage: b.fraudPercentage,
		RefundStatus:    b.refundStatus.String(),
		RefundAmount:    b.refundAmount.String(),
		AnalyzedAt:      b.analyzedAt,
	})

	if b.refundStatus.Equal(valueobject.RefundFull) {
		b.domainEvents = append(b.domainEvents, event.HighFraudDetected{
			BatchID:         b.id,
			BatchIdentifier: b.identifier,
			VendorName:      b.vendorName,
			FraudPercentage: b.fraudPercentage,
			DetectedAt:      b.analyzedAt,
		})
	}

	return b, nil
}

// ReconstructBatchResult rebuilds a BatchResult from persisted data (no
// validation, no events).
func ReconstructBatchResult(
	id uuid.UUID,
	vendorName string,
	identifier string,
	inputFilename string,
	costPerLead decimal.Decimal,
	totalCost decimal.Decimal,
	results []*LeadFraudResult,
	totalLeads int,
	fraudulentCount int,
	fraudPercentage float64,
	refundStatus valueobject.RefundStatus,
	refundAmount decimal.Decimal,
	averages CategoryAverages,
	indicators []FraudIndicator,
	analyzedAt time.Time,
) *BatchResult {
	if results == nil {
		results = make([]*LeadFraudResult, 0)
	}
	if indicators == nil {
		indicators = make([]FraudIndicator, 0)
	}
	return &BatchResult{
		id:              id,
		vendorName:      vendorName,
		identifier:      identifier,
		inputFilename:   inputFilename,
		costPerLead:     costPerLead,
		totalCost:       totalCost,
		results:         results,
		total:           totalLeads,
		fraudulentCount: fraudulentCount,
		fraudPercentage: fraudPercentage,
		refundStatus:    refundStatus,
		refundAmount:    refundAmount,
		averages:        averages,
		indicators:      indicators,
		analyzedAt:      analyzedAt,
		domainEvents:    make([]events.DomainEvent, 0),
	}
}

func computeAverages(results []*LeadFraudResult) CategoryAverages {
	if len(results) == 0 {
		return CategoryAverages{}
	}

	var avg CategoryAverages
	for _, r := range results {
		avg.FraudScore += float64(r.FraudScore())
		b := r.Breakdown()
		avg.Contact += float64(b.Contact)
		avg.Duplicate += float64(b.Duplicate)
		avg.Geographic += float64(b.Geographic)
		avg.Timing += float64(b.Timing)
		avg.Quality += float64(b.Quality)
	}

	n := float64(len(results))
	avg.FraudScore /= n
	avg.Contact /= n
	avg.Duplicate /= n
	avg.Geographic /= n
	avg.Timing /= n
	avg.Quality /= n
	return avg
}

// --- Accessors ---

func (b *BatchResult) ID() uuid.UUID                         { return b.id }
func (b *BatchResult) VendorName() string                    { return b.vendorName }
func (b *BatchResult) Identifier() string                    { return b.identifier }
func (b *BatchResult) InputFilename() string                 { return b.inputFilename }
func (b *BatchResult) CostPerLead() decimal.Decimal          { return b.costPerLead }
func (b *BatchResult) TotalCost() decimal.Decimal            { return b.totalCost }
func (b *BatchResult) Total() int                            { return b.total }
func (b *BatchResult) FraudulentCount() int                  { return b.fraudulentCount }
func (b *BatchResult) ValidCount() int                       { return b.total - b.fraudulentCount }
func (b *BatchResult) FraudPercentage() float64              { return b.fraudPercentage }
func (b *BatchResult) RefundStatus() valueobject.RefundStatus { return b.refundStatus }
func (b *BatchResult) RefundAmount() decimal.Decimal         { return b.refundAmount }
func (b *BatchResult) Averages() CategoryAverages            { return b.averages }
func (b *BatchResult) AnalyzedAt() time.Time                 { return b.analyzedAt }

// Results returns the per-lead results in original batch order.
func (b *BatchResult) Results() []*LeadFraudResult {
	out := make([]*LeadFraudResult, len(b.results))
	copy(out, b.results)
	return out
}

// Indicators returns the batch fraud indicators, most affected leads first.
func (b *BatchResult) Indicators() []FraudIndicator {
	out := make([]FraudIndicator, len(b.indicators))
	copy(out, b.indicators)
	return out
}

// DomainEvents returns all accumulated domain events and clears them.
func (b *BatchResult) DomainEvents() []events.DomainEvent {
	evts := b.domainEvents
	b.domainEvents = make([]events.DomainEvent, 0)
	return evts
}
