package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeBatchAnalyzed is emitted when a batch finishes scoring.
	EventTypeBatchAnalyzed = "leads.batch.analyzed"

	// EventTypeHighFraudDetected is emitted when a batch crosses the full-refund threshold.
	EventTypeHighFraudDetected = "leads.high_fraud.detected"

	// EventTypeVendorStatusChanged is emitted when folding a batch moves a vendor
	// to a different status.
	EventTypeVendorStatusChanged = "leads.vendor.status_changed"
)

// BatchAnalyzed is published when fraud scoring has completed for a batch.
type BatchAnalyzed struct {
	BatchID         uuid.UUID `json:"batch_id"`
	BatchIdentifier string    `json:"batch_identifier"`
	VendorName      string    `json:"vendor_name"`
	TotalLeads      int       `json:"total_leads"`
	FraudulentLeads int       `json:"fraudulent_leads"`
	FraudPercentage float64   `json:"fraud_percentage"`
	RefundStatus    string    `json:"refund_status"`
	RefundAmount    string    `json:"refund_amount"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}

// EventType returns the event type identifier.
func (e BatchAnalyzed) EventType() string {
	return EventTypeBatchAnalyzed
}

// AggregateID returns the batch ID as the aggregate identifier.
func (e BatchAnalyzed) AggregateID() uuid.UUID {
	return e.BatchID
}

// HighFraudDetected is published when a batch is fraudulent enough to earn a
// full refund, so downstream systems can alert on the vendor.
type HighFraudDetected struct {
	BatchID         uuid.UUID `json:"batch_id"`
	BatchIdentifier string    `json:"batch_identifier"`
	VendorName      string    `json:"vendor_name"`
	FraudPercentage float64   `json:"fraud_percentage"`
	DetectedAt      time.Time `json:"detected_at"`
}

// EventType returns the event type identifier.
func (e HighFraudDetected) EventType() string {
	return EventTypeHighFraudDetected
}

// AggregateID returns the batch ID as the aggregate identifier.
func (e HighFraudDetected) AggregateID() uuid.UUID {
	return e.BatchID
}

// VendorStatusChanged is published when a vendor's derived status moves after
// folding in a new batch.
type VendorStatusChanged struct {
	VendorID         uuid.UUID `json:"vendor_id"`
	VendorName       string    `json:"vendor_name"`
	OldStatus        string    `json:"old_status"`
	NewStatus        string    `json:"new_status"`
	AverageFraudRate float64   `json:"average_fraud_rate"`
	ChangedAt        time.Time `json:"changed_at"`
}

// EventType returns the event type identifier.
func (e VendorStatusChanged) EventType() string {
	return EventTypeVendorStatusChanged
}

// AggregateID returns the vendor ID as the aggregate identifier.
func (e VendorStatusChanged) AggregateID() uuid.UUID {
	return e.VendorID
}
