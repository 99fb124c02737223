package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

// LeadFraudResult is the immutable scoring outcome for one lead within one
// batch run. Rerunning a batch produces new results; existing results are
// never mutated.
type LeadFraudResult struct {
	id             uuid.UUID
	lead           Lead
	fraudScore     int
	classification valueobject.Classification
	reasons        []string
	breakdown      valueobject.ScoreBreakdown
	scoredAt       time.Time
}

// NewLeadFraudResult creates a scored result for a lead. The score must be
// within [0,100] and consistent with the breakdown total.
func NewLeadFraudResult(
	lead Lead,
	fraudScore int,
	classification valueobject.Classification,
	reasons []string,
	breakdown valueobject.ScoreBreakdown,
) (*LeadFraudResult, error) {
	if fraudScore < 0 || fraudScore > 100 {
		return nil, fmt.Errorf("fraud score must be between 0 and 100, got %d", fraudScore)
	}
	if classification.IsZero() {
		return nil, fmt.Errorf("classification is required")
	}
	if total := breakdown.Total(); total != fraudScore {
		return nil, fmt.Errorf("breakdown total %d does not match fraud score %d", total, fraudScore)
	}

	if reasons == nil {
		reasons = make([]string, 0)
	}

	return &LeadFraudResult{
		id:             uuid.New(),
		lead:           lead,
		fraudScore:     fraudScore,
		classification: classification,
		reasons:        reasons,
		breakdown:      breakdown,
		scoredAt:       time.Now().UTC(),
	}, nil
}

// ReconstructLeadFraudResult rebuilds a LeadFraudResult from persisted data
// (no validation).
func ReconstructLeadFraudResult(
	id uuid.UUID,
	lead Lead,
	fraudScore int,
	classification valueobject.Classification,
	reasons []string,
	breakdown valueobject.ScoreBreakdown,
	scoredAt time.Time,
) *LeadFraudResult {
	if reasons == nil {
		reasons = make([]string, 0)
	}
	return &LeadFraudResult{
		id:             id,
		lead:           lead,
		fraudScore:     fraudScore,
		classification: classification,
		reasons:        reasons,
		breakdown:      breakdown,
		scoredAt:       scoredAt,
	}
}

// --- Accessors ---

func (r *LeadFraudResult) ID() uuid.UUID                              { return r.id }
func (r *LeadFraudResult) Lead() Lead                                 { return r.lead }
func (r *LeadFraudResult) FraudScore() int                            { return r.fraudScore }
func (r *LeadFraudResult) Classification() valueobject.Classification { return r.classification }
func (r *LeadFraudResult) Breakdown() valueobject.ScoreBreakdown      { return r.breakdown }
func (r *LeadFraudResult) ScoredAt() time.Time                        { return r.scoredAt }

// Reasons returns a copy of the triggered rule descriptions, in fixed
// category order.
func (r *LeadFraudResult) Reasons() []string {
	out := make([]string, len(r.reasons))
	copy(out, r.reasons)
	return out
}

// IsFraudulent reports whether the lead was classified FRAUDULENT.
func (r *LeadFraudResult) IsFraudulent() bool {
	return r.classification.IsFraudulent()
}
